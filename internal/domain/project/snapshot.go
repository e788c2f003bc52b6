package project

import "iter"

// Snapshot is an immutable, ordered view of every project at one point in
// time. Accessors hand out copies, so holders cannot reach the store's state.
// The zero value is an empty snapshot.
type Snapshot struct {
	projects []Project
}

// NewSnapshot copies projects into a new Snapshot.
func NewSnapshot(projects []Project) Snapshot {
	cp := make([]Project, len(projects))
	copy(cp, projects)
	return Snapshot{projects: cp}
}

// Len returns the number of projects in the snapshot.
func (s Snapshot) Len() int {
	return len(s.projects)
}

// At returns the i-th project in insertion order. It panics if i is out of range.
func (s Snapshot) At(i int) Project {
	return s.projects[i]
}

// All iterates over the projects in insertion order.
func (s Snapshot) All() iter.Seq2[int, Project] {
	return func(yield func(int, Project) bool) {
		for i, p := range s.projects {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Projects returns a fresh copy of every project in insertion order.
func (s Snapshot) Projects() []Project {
	cp := make([]Project, len(s.projects))
	copy(cp, s.projects)
	return cp
}

// WithStatus returns the projects whose status equals status, in insertion order.
func (s Snapshot) WithStatus(status Status) []Project {
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the project with the given id.
func (s Snapshot) Find(id string) (Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
