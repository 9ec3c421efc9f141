package project

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Projects: []Project{
			{ID: "1", Name: "api", Path: "/src/api", Folder: "Web"},
			{ID: "2", Name: "cli", Path: "/src/cli"},
			{ID: "3", Name: "site", Path: "/src/site", Folder: "Web", Icon: "site.svg"},
		},
		Folders: []Folder{{Name: "Web", Icon: "web.svg"}},
	}
}

func Test_DeleteFolder_Moves_Members_To_Root_Keeping_Order(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()

	got, changed := DeleteFolder(doc, "Web")
	require.True(t, changed)

	want := Document{
		Projects: []Project{
			{ID: "1", Name: "api", Path: "/src/api"},
			{ID: "2", Name: "cli", Path: "/src/cli"},
			{ID: "3", Name: "site", Path: "/src/site", Icon: "site.svg"},
		},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("DeleteFolder mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(sampleDocument(), doc); diff != "" {
		t.Fatalf("input modified (-want +got):\n%s", diff)
	}
}

func Test_DeleteFolder_Drops_Metadata_Of_Unreferenced_Folder(t *testing.T) {
	t.Parallel()

	doc := Document{
		Projects: []Project{{ID: "1", Name: "a", Path: "/a"}},
		Folders:  []Folder{{Name: "Old", Icon: "old.svg"}},
	}

	got, changed := DeleteFolder(doc, "Old")
	require.True(t, changed)
	assert.Empty(t, got.Folders)

	_, changed = DeleteFolder(got, "Old")
	assert.False(t, changed)
}

func Test_RenameFolder_Cascades_And_Moves_Metadata(t *testing.T) {
	t.Parallel()

	got, changed := RenameFolder(sampleDocument(), "Web", "  Frontend ")
	require.True(t, changed)

	assert.Equal(t, []string{"Frontend"}, FolderNames(got.Projects))
	assert.Equal(t, []string{"1", "2", "3"}, ids(got.Projects))
	assert.Equal(t, []Folder{{Name: "Frontend", Icon: "web.svg"}}, got.Folders)
}

func Test_RenameFolder_Merges_Into_Existing_Folder(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	doc.Projects[1].Folder = "Tools"
	doc.Folders = append(doc.Folders, Folder{Name: "Tools", Icon: "tools.svg"})

	got, changed := RenameFolder(doc, "Web", "Tools")
	require.True(t, changed)

	assert.Equal(t, []string{"Tools"}, FolderNames(got.Projects))
	assert.Equal(t, []Folder{{Name: "Tools", Icon: "tools.svg"}}, got.Folders)
}

func Test_RenameFolder_Is_NoOp_For_Same_Or_Empty_Name_Or_Unknown_Folder(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ from, to string }{
		{from: "Web", to: "Web"},
		{from: "Web", to: "   "},
		{from: "", to: "X"},
		{from: "Nope", to: "X"},
	} {
		_, changed := RenameFolder(sampleDocument(), tc.from, tc.to)
		assert.False(t, changed, "RenameFolder(%q, %q)", tc.from, tc.to)
	}
}

func Test_RenameProject_Trims_And_Ignores_Empty_Or_Unchanged_Names(t *testing.T) {
	t.Parallel()

	projects := sampleDocument().Projects

	got, changed := RenameProject(projects, "2", "  tool  ")
	require.True(t, changed)
	assert.Equal(t, "tool", got[1].Name)
	assert.Equal(t, "cli", projects[1].Name, "input must not be modified")

	_, changed = RenameProject(projects, "2", "   ")
	assert.False(t, changed)

	_, changed = RenameProject(projects, "2", "cli")
	assert.False(t, changed)

	_, changed = RenameProject(projects, "9", "x")
	assert.False(t, changed)
}

func Test_DeleteProject_Removes_Only_That_Project(t *testing.T) {
	t.Parallel()

	projects := sampleDocument().Projects

	got, changed := DeleteProject(projects, "1")
	require.True(t, changed)
	assert.Equal(t, []string{"2", "3"}, ids(got))
	assert.Len(t, projects, 3)

	_, changed = DeleteProject(got, "1")
	assert.False(t, changed)
}

func Test_AddProject_Appends_At_End(t *testing.T) {
	t.Parallel()

	projects := sampleDocument().Projects
	got := AddProject(projects, Project{ID: "4", Name: "new", Path: "/new", Folder: "Web"})

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
	assert.Len(t, projects, 3)
}

func Test_Find_Functions(t *testing.T) {
	t.Parallel()

	projects := sampleDocument().Projects

	p, ok := FindProject(projects, "3")
	require.True(t, ok)
	assert.Equal(t, "site", p.Name)

	p, ok = FindByPath(projects, "/src/cli")
	require.True(t, ok)
	assert.Equal(t, "2", p.ID)

	_, ok = FindProject(projects, "x")
	assert.False(t, ok)

	_, ok = FindByPath(projects, "/nope")
	assert.False(t, ok)
}

func Test_Project_Icon_Set_And_Clear(t *testing.T) {
	t.Parallel()

	projects := sampleDocument().Projects

	got, changed := SetProjectIcon(projects, "2", "cli.png")
	require.True(t, changed)
	assert.Equal(t, "cli.png", got[1].Icon)

	_, changed = SetProjectIcon(got, "2", "cli.png")
	assert.False(t, changed)

	got, changed = ClearProjectIcon(got, "2")
	require.True(t, changed)
	assert.Empty(t, got[1].Icon)

	_, changed = ClearProjectIcon(got, "2")
	assert.False(t, changed)
}

func Test_Folder_Icon_Set_And_Clear(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	doc.Folders = nil

	got, changed := SetFolderIcon(doc, "Web", "w.svg")
	require.True(t, changed)
	assert.Equal(t, "w.svg", FolderIcon(got.Folders, "Web"))
	assert.Empty(t, doc.Folders, "input must not be modified")

	got, changed = SetFolderIcon(got, "Web", "w2.svg")
	require.True(t, changed)
	assert.Equal(t, []Folder{{Name: "Web", Icon: "w2.svg"}}, got.Folders)

	_, changed = SetFolderIcon(got, "Web", "w2.svg")
	assert.False(t, changed)

	_, changed = SetFolderIcon(got, "Nope", "x.svg")
	assert.False(t, changed, "folders without projects cannot get an icon")

	got, changed = ClearFolderIcon(got, "Web")
	require.True(t, changed)
	assert.Empty(t, got.Folders)
	assert.Empty(t, FolderIcon(got.Folders, "Web"))
}
