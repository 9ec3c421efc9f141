package project

import "errors"

// File names inside the data directory.
const (
	ProjectsFileName = "project-manager.json"
	FoldersFileName  = "project-folders.json"
)

// Error variables for catalog operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataDirEmpty       = errors.New("data-dir cannot be empty")
	ErrInvalidLocale      = errors.New("invalid locale")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrIDRequired         = errors.New("project ID is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPathRequired       = errors.New("path is required")
	ErrFolderRequired     = errors.New("folder name is required")
	ErrProjectNotFound    = errors.New("project not found")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrDuplicatePath      = errors.New("project path already catalogued")
	ErrUnsupportedIcon    = errors.New("unsupported icon format")
	ErrIconNotFound       = errors.New("icon file not found")
	ErrIconCopy           = errors.New("cannot copy icon")
	ErrMalformedDocument  = errors.New("malformed document")
	ErrLoad               = errors.New("cannot load catalog")
	ErrSave               = errors.New("cannot save catalog")
	ErrNoEditorFound      = errors.New("no editor found (set config.editor, $EDITOR, or install vi/nano)")
)
