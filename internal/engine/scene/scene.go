package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Hierarchy errors.
var (
	ErrInvalidIndex = errors.New("model index out of range")
	ErrSelfParent   = errors.New("model cannot be its own parent")
	ErrCycle        = errors.New("attachment would create a cycle")
)

// Handle identifies a model for its lifetime in a Scene. Indices shift on
// Remove; handles do not. The zero Handle is never issued.
type Handle uint64

// Scene owns models in insertion order and the parent/child links between
// them. Links are kept by handle, so removing a model cannot leave a
// dangling reference. Child transforms do not compose with the parent.
type Scene struct {
	models  []*Model
	handles []Handle
	next    Handle

	parent   map[Handle]Handle
	children map[Handle][]Handle
}

// New returns an empty Scene.
func New() *Scene {
	return &Scene{
		parent:   make(map[Handle]Handle),
		children: make(map[Handle][]Handle),
	}
}

// Add takes ownership of m and returns its handle. A nil model is ignored
// and yields the zero Handle.
func (s *Scene) Add(m *Model) Handle {
	if m == nil {
		return 0
	}
	s.next++
	s.models = append(s.models, m)
	s.handles = append(s.handles, s.next)
	return s.next
}

// Len returns the number of models.
func (s *Scene) Len() int { return len(s.models) }

// Model returns the model at index i.
func (s *Scene) Model(i int) (*Model, bool) {
	if i < 0 || i >= len(s.models) {
		return nil, false
	}
	return s.models[i], true
}

// Models returns a copy of the model list in insertion order.
func (s *Scene) Models() []*Model {
	out := make([]*Model, len(s.models))
	copy(out, s.models)
	return out
}

// Handle returns the handle of the model at index i.
func (s *Scene) Handle(i int) (Handle, bool) {
	if i < 0 || i >= len(s.handles) {
		return 0, false
	}
	return s.handles[i], true
}

// IndexOf returns the current index of h, or -1.
func (s *Scene) IndexOf(h Handle) int {
	for i, x := range s.handles {
		if x == h {
			return i
		}
	}
	return -1
}

// Remove releases and drops the model at index i. Later models shift down
// by one. The model is detached from its parent and its children become
// roots. Returns false when i is out of range.
func (s *Scene) Remove(i int) bool {
	if i < 0 || i >= len(s.models) {
		return false
	}
	h := s.handles[i]

	s.detach(h)
	for _, c := range s.children[h] {
		delete(s.parent, c)
	}
	delete(s.children, h)

	s.models[i].Release()
	s.models = append(s.models[:i], s.models[i+1:]...)
	s.handles = append(s.handles[:i], s.handles[i+1:]...)
	return true
}

// Clear releases every model and drops all links.
func (s *Scene) Clear() {
	for _, m := range s.models {
		m.Release()
	}
	s.models = nil
	s.handles = nil
	s.parent = make(map[Handle]Handle)
	s.children = make(map[Handle][]Handle)
}

// AttachChild makes child a child of parent. A child has at most one
// parent; attaching it again moves it.
func (s *Scene) AttachChild(parent, child int) error {
	ph, ok := s.Handle(parent)
	if !ok {
		return fmt.Errorf("parent %d: %w", parent, ErrInvalidIndex)
	}
	ch, ok := s.Handle(child)
	if !ok {
		return fmt.Errorf("child %d: %w", child, ErrInvalidIndex)
	}
	if ph == ch {
		return fmt.Errorf("model %d: %w", child, ErrSelfParent)
	}
	for a, ok := ph, true; ok; a, ok = s.parent[a] {
		if a == ch {
			return fmt.Errorf("attach %d under %d: %w", child, parent, ErrCycle)
		}
	}

	s.detach(ch)
	s.parent[ch] = ph
	s.children[ph] = append(s.children[ph], ch)
	return nil
}

// DetachChild makes the model at index child a root. Returns false when it
// had no parent or the index is out of range.
func (s *Scene) DetachChild(child int) bool {
	h, ok := s.Handle(child)
	if !ok {
		return false
	}
	return s.detach(h)
}

func (s *Scene) detach(ch Handle) bool {
	ph, ok := s.parent[ch]
	if !ok {
		return false
	}
	delete(s.parent, ch)
	siblings := s.children[ph]
	for i, x := range siblings {
		if x == ch {
			s.children[ph] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(s.children[ph]) == 0 {
		delete(s.children, ph)
	}
	return true
}

// Parent returns the index of the parent of model i.
func (s *Scene) Parent(i int) (int, bool) {
	h, ok := s.Handle(i)
	if !ok {
		return -1, false
	}
	ph, ok := s.parent[h]
	if !ok {
		return -1, false
	}
	return s.IndexOf(ph), true
}

// Children returns the indices of the children of model i in attach order.
func (s *Scene) Children(i int) []int {
	h, ok := s.Handle(i)
	if !ok {
		return nil
	}
	return s.indices(s.children[h])
}

// Roots returns the indices of models without a parent, in scene order.
func (s *Scene) Roots() []int {
	var roots []int
	for i, h := range s.handles {
		if _, ok := s.parent[h]; !ok {
			roots = append(roots, i)
		}
	}
	return roots
}

// Walk visits every model depth-first starting from the roots, passing its
// index and depth in the hierarchy.
func (s *Scene) Walk(fn func(index, depth int)) {
	var visit func(h Handle, depth int)
	visit = func(h Handle, depth int) {
		fn(s.IndexOf(h), depth)
		for _, c := range s.children[h] {
			visit(c, depth+1)
		}
	}
	for _, i := range s.Roots() {
		visit(s.handles[i], 0)
	}
}

// Update advances per-model animation by dt seconds.
func (s *Scene) Update(dt float32) {
	for _, m := range s.models {
		if m.Spin != (mgl32.Vec3{}) {
			m.Rotate(m.Spin.Mul(dt))
		}
	}
}

func (s *Scene) indices(hs []Handle) []int {
	if len(hs) == 0 {
		return nil
	}
	out := make([]int, 0, len(hs))
	for _, h := range hs {
		out = append(out, s.IndexOf(h))
	}
	return out
}
