package project

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}

	return out
}

// groupOrder returns the ids per group in list order, skipping skipID.
func groupOrder(projects []Project, skipID string) map[string][]string {
	out := make(map[string][]string)

	for _, p := range projects {
		if p.ID == skipID {
			continue
		}

		out[p.Folder] = append(out[p.Folder], p.ID)
	}

	return out
}

func Test_Reorder_Appends_To_Folder_Group(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{ID: "1", Name: "A", Path: "/a"},
		{ID: "2", Name: "B", Path: "/b", Folder: "Web"},
	}

	got, changed := Reorder(projects, "1", FolderTarget("Web"))
	require.True(t, changed)

	want := []Project{
		{ID: "2", Name: "B", Path: "/b", Folder: "Web"},
		{ID: "1", Name: "A", Path: "/a", Folder: "Web"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Reorder mismatch (-want +got):\n%s", diff)
	}
}

func Test_Reorder_Places_Project_By_Target(t *testing.T) {
	t.Parallel()

	base := []Project{
		{ID: "1", Name: "a", Path: "/1"},
		{ID: "2", Name: "b", Path: "/2", Folder: "Web"},
		{ID: "3", Name: "c", Path: "/3"},
		{ID: "4", Name: "d", Path: "/4", Folder: "Web"},
		{ID: "5", Name: "e", Path: "/5", Folder: "CLI"},
	}

	tests := []struct {
		name       string
		moved      string
		target     Target
		wantIDs    []string
		wantFolder string
	}{
		{
			name:       "drop on project joins its group",
			moved:      "3",
			target:     ProjectTarget("2"),
			wantIDs:    []string{"1", "2", "4", "3", "5"},
			wantFolder: "Web",
		},
		{
			name:       "drop on root project moves to root",
			moved:      "4",
			target:     ProjectTarget("1"),
			wantIDs:    []string{"1", "2", "3", "4", "5"},
			wantFolder: "",
		},
		{
			name:       "drop on background moves to root after last root project",
			moved:      "2",
			target:     RootTarget(),
			wantIDs:    []string{"1", "3", "2", "4", "5"},
			wantFolder: "",
		},
		{
			name:       "drop on unknown folder creates it at the end",
			moved:      "1",
			target:     FolderTarget("Docs"),
			wantIDs:    []string{"2", "3", "4", "5", "1"},
			wantFolder: "Docs",
		},
		{
			name:       "empty folder target is root",
			moved:      "5",
			target:     FolderTarget(""),
			wantIDs:    []string{"1", "2", "3", "5", "4"},
			wantFolder: "",
		},
		{
			name:       "move within group goes to the end of the group",
			moved:      "2",
			target:     FolderTarget("Web"),
			wantIDs:    []string{"1", "3", "4", "2", "5"},
			wantFolder: "Web",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := slices.Clone(base)

			got, changed := Reorder(input, tt.moved, tt.target)
			require.True(t, changed)

			assert.Equal(t, tt.wantIDs, ids(got))

			moved, ok := FindProject(got, tt.moved)
			require.True(t, ok)
			assert.Equal(t, tt.wantFolder, moved.Folder)

			assert.Equal(t, base, input, "input must not be modified")
		})
	}
}

func Test_Reorder_Is_NoOp_For_Self_Drop_And_Unknown_IDs(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{ID: "1", Name: "a", Path: "/1"},
		{ID: "4", Name: "d", Path: "/4"},
		{ID: "2", Name: "b", Path: "/2", Folder: "Web"},
		{ID: "3", Name: "c", Path: "/3", Folder: "Web"},
	}

	tests := []struct {
		name   string
		moved  string
		target Target
	}{
		{name: "self drop", moved: "2", target: ProjectTarget("2")},
		{name: "unknown moved id", moved: "9", target: FolderTarget("Web")},
		{name: "unknown target project", moved: "1", target: ProjectTarget("9")},
		{name: "already last root project", moved: "4", target: RootTarget()},
		{name: "already last in its folder", moved: "3", target: FolderTarget("Web")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := Reorder(projects, tt.moved, tt.target)

			assert.False(t, changed)
			assert.Equal(t, projects, got)
		})
	}
}

func Test_Reorder_Within_Same_Group_Keeps_Length_And_Group_Order(t *testing.T) {
	t.Parallel()

	var projects []Project

	folders := []string{"", "Web", "", "CLI", "Web", "", "Docs", "Web", "CLI", ""}
	for i, f := range folders {
		projects = append(projects, Project{
			ID:     fmt.Sprintf("p%d", i),
			Name:   fmt.Sprintf("n%d", i),
			Path:   fmt.Sprintf("/p/%d", i),
			Folder: f,
		})
	}

	for _, p := range projects {
		targets := []Target{FolderTarget(p.Folder)}

		for _, other := range projects {
			if other.ID != p.ID && other.Folder == p.Folder {
				targets = append(targets, ProjectTarget(other.ID))
			}
		}

		for _, target := range targets {
			got, _ := Reorder(projects, p.ID, target)

			require.Len(t, got, len(projects), "move %s to %s", p.ID, target)

			moved, ok := FindProject(got, p.ID)
			require.True(t, ok)
			assert.Equal(t, p.Folder, moved.Folder, "move %s to %s", p.ID, target)

			if diff := cmp.Diff(groupOrder(projects, p.ID), groupOrder(got, p.ID)); diff != "" {
				t.Fatalf("move %s to %s changed group order (-before +after):\n%s", p.ID, target, diff)
			}
		}
	}
}

func Test_MoveToFolder_Uses_Same_Placement_As_Reorder(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{ID: "1", Name: "a", Path: "/1", Folder: "Web"},
		{ID: "2", Name: "b", Path: "/2"},
		{ID: "3", Name: "c", Path: "/3", Folder: "Web"},
		{ID: "4", Name: "d", Path: "/4"},
	}

	got, changed := MoveToFolder(projects, "2", "Web")
	require.True(t, changed)
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(got))

	got, changed = MoveToFolder(got, "1", "")
	require.True(t, changed)
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(got))
	assert.True(t, got[3].InRoot())
}
