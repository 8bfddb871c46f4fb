// Package fake provides an in-memory platform backend for tests. Every
// handle acquisition and release is counted per node, so tests can assert
// that parsing and resolution never leak or double-release live handles.
package fake

import (
	"fmt"

	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

// Invocation records one Perform call on a node.
type Invocation struct {
	Action platform.Action
	Args   platform.PerformArgs
}

// Node is one node of a fake live tree.
type Node struct {
	Attrs platform.NodeInfo
	Kids  []*Node

	// PerformErr, when set, is returned by every Perform on this node.
	PerformErr error

	Acquired  int
	Released  int
	Performed []Invocation
}

// N builds a node with the given attributes and children.
func N(attrs platform.NodeInfo, kids ...*Node) *Node {
	return &Node{Attrs: attrs, Kids: kids}
}

// Handle acquires a new live handle on n.
func Handle(n *Node) platform.NodeHandle {
	n.Acquired++
	return &handle{n: n}
}

// Balanced reports whether every handle acquired in n's subtree was released.
func Balanced(n *Node) bool {
	if n.Acquired != n.Released {
		return false
	}
	for _, k := range n.Kids {
		if !Balanced(k) {
			return false
		}
	}
	return true
}

// Leaks returns a description of every node in n's subtree whose acquire and
// release counts differ, for test failure messages.
func Leaks(n *Node) []string {
	var out []string
	collectLeaks(n, "root", &out)
	return out
}

func collectLeaks(n *Node, path string, out *[]string) {
	if n.Acquired != n.Released {
		*out = append(*out, fmt.Sprintf("%s (%s): acquired=%d released=%d", path, n.Attrs.Class, n.Acquired, n.Released))
	}
	for i, k := range n.Kids {
		collectLeaks(k, fmt.Sprintf("%s/%d", path, i), out)
	}
}

type handle struct {
	n        *Node
	released bool
}

func (h *handle) Info() platform.NodeInfo { return h.n.Attrs }

func (h *handle) ChildCount() int { return len(h.n.Kids) }

func (h *handle) Child(i int) (platform.NodeHandle, error) {
	if i < 0 || i >= len(h.n.Kids) {
		return nil, fmt.Errorf("child index %d out of range (%d children)", i, len(h.n.Kids))
	}
	return Handle(h.n.Kids[i]), nil
}

func (h *handle) Perform(action platform.Action, args platform.PerformArgs) error {
	h.n.Performed = append(h.n.Performed, Invocation{Action: action, Args: args})
	return h.n.PerformErr
}

func (h *handle) Release() {
	if h.released {
		panic("fake: handle released twice")
	}
	h.released = true
	h.n.Released++
}

// Window pairs window metadata with its fake root tree.
type Window struct {
	Info platform.WindowInfo // Root field is ignored; Tree is used instead
	Tree *Node               // nil yields a window with no retrievable root
}

// Source is a fake TreeSource.
type Source struct {
	Windows []Window
	Active  *Node // degraded-mode root; nil makes ActiveRoot fail

	// Offline makes Connected report false.
	Offline bool
	// EnumerateErr, when set, is returned by EnumerateWindows.
	EnumerateErr error

	Enumerations int
}

func (s *Source) Connected() bool { return !s.Offline }

func (s *Source) EnumerateWindows() ([]platform.WindowInfo, error) {
	s.Enumerations++
	if s.EnumerateErr != nil {
		return nil, s.EnumerateErr
	}
	var out []platform.WindowInfo
	for _, w := range s.Windows {
		info := w.Info
		if w.Tree != nil {
			info.Root = Handle(w.Tree)
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *Source) ActiveRoot() (platform.NodeHandle, error) {
	if s.Active == nil {
		return nil, fmt.Errorf("no active root available")
	}
	return Handle(s.Active), nil
}

// Metrics is a fixed-value MetricsSource.
type Metrics struct {
	M   platform.Metrics
	Err error
}

func (m *Metrics) DisplayMetrics() (platform.Metrics, error) { return m.M, m.Err }

// Foreground is a fixed-value ForegroundTracker.
type Foreground struct {
	FG  platform.Foreground
	Err error
}

func (f *Foreground) ForegroundApp() (platform.Foreground, error) { return f.FG, f.Err }
