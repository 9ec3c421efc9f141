package project

import (
	"slices"
	"strconv"
	"testing"
)

// byteStream derives deterministic values from fuzz input. Reads past the
// end return zero so every input maps to exactly one scenario.
type byteStream struct {
	data []byte
	pos  int
}

func (s *byteStream) next() byte {
	if s.pos >= len(s.data) {
		return 0
	}

	v := s.data[s.pos]
	s.pos++

	return v
}

func (s *byteStream) intn(n int) int {
	return int(s.next()) % n
}

var fuzzFolders = []string{"", "A", "B", "C"}

// -----------------------------------------------------------------------------
// FuzzReorder_Properties
//
// Property: whatever the list and the drop, Reorder
//   - never modifies its input
//   - returns a permutation of the input ids
//   - keeps the relative order and folder of every other project
//   - places the moved project right after the last other member of its
//     new group, or at the end when the group has no other member
// -----------------------------------------------------------------------------

func FuzzReorder_Properties(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{3, 0, 1, 2, 0, 1, 2})
	f.Add([]byte{7, 1, 1, 2, 2, 3, 0, 0, 5, 2, 4})
	f.Add([]byte{255, 255, 255, 255})

	f.Fuzz(func(t *testing.T, data []byte) {
		stream := &byteStream{data: data}

		count := 1 + stream.intn(8)
		projects := make([]Project, 0, count)

		for i := 0; i < count; i++ {
			projects = append(projects, Project{
				ID:     "p" + strconv.Itoa(i),
				Name:   "n" + strconv.Itoa(i),
				Path:   "/src/" + strconv.Itoa(i),
				Folder: fuzzFolders[stream.intn(len(fuzzFolders))],
			})
		}

		// One past the end picks an unknown id.
		pickID := func() string {
			return "p" + strconv.Itoa(stream.intn(count+1))
		}

		movedID := pickID()

		var target Target

		switch stream.intn(3) {
		case 0:
			target = RootTarget()
		case 1:
			target = FolderTarget(fuzzFolders[stream.intn(len(fuzzFolders))])
		default:
			target = ProjectTarget(pickID())
		}

		before := slices.Clone(projects)

		out, changed := Reorder(projects, movedID, target)

		if !slices.Equal(projects, before) {
			t.Fatalf("input was modified: %v -> %v", before, projects)
		}

		from := indexOf(projects, movedID)

		group, known := expectedGroup(projects, movedID, target)
		if from < 0 || !known {
			if changed || !slices.Equal(out, projects) {
				t.Fatalf("no-op drop %s of %s changed the list: %v", target, movedID, out)
			}

			return
		}

		if got, want := len(out), len(projects); got != want {
			t.Fatalf("len=%d, want=%d", got, want)
		}

		at := indexOf(out, movedID)
		if at < 0 {
			t.Fatalf("moved project %s lost: %v", movedID, out)
		}

		if got, want := out[at].Folder, group; got != want {
			t.Fatalf("moved folder=%q, want=%q", got, want)
		}

		rest := slices.Delete(slices.Clone(out), at, at+1)
		others := slices.Delete(slices.Clone(projects), from, from+1)

		if !slices.Equal(rest, others) {
			t.Fatalf("other projects changed:\n got: %v\nwant: %v", rest, others)
		}

		for _, p := range out[at+1:] {
			if p.Folder == group {
				t.Fatalf("%s of group %q placed after moved project %s: %v", p.ID, group, movedID, out)
			}
		}

		if at > 0 && out[at-1].Folder != group && slices.ContainsFunc(rest, func(p Project) bool { return p.Folder == group }) {
			t.Fatalf("moved project %s not adjacent to its group %q: %v", movedID, group, out)
		}

		if got, want := changed, !slices.Equal(out, projects); got != want {
			t.Fatalf("changed=%v, want=%v", got, want)
		}
	})
}

// expectedGroup resolves the folder a drop lands in. known is false when
// the drop is a no-op.
func expectedGroup(projects []Project, movedID string, target Target) (string, bool) {
	switch target.kind {
	case targetFolder:
		return target.name, true
	case targetProject:
		if target.name == movedID {
			return "", false
		}

		p, ok := FindProject(projects, target.name)

		return p.Folder, ok
	default:
		return "", true
	}
}
