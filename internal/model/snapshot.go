package model

// Snapshot is an immutable, parsed copy of the live UI at one point in time:
// an ordered sequence of windows plus a degraded flag. A snapshot is built
// fresh for every introspection or action-resolution request and discarded
// after use; the live tree is the source of truth and snapshot content is
// never cached across requests. Only window ids and position-derived node
// ids are assumed stable from one snapshot to the next, for a bounded time.
type Snapshot struct {
	Windows  []WindowRecord `yaml:"windows"            json:"windows"`
	Degraded bool           `yaml:"degraded,omitempty" json:"degraded,omitempty"` // Window enumeration was unavailable; single active-root fallback
}

// FocusedWindow returns the focused window, or nil if none is marked focused.
func (s *Snapshot) FocusedWindow() *WindowRecord {
	for i := range s.Windows {
		if s.Windows[i].Focused {
			return &s.Windows[i]
		}
	}
	return nil
}

// NodeCount returns the total number of parsed nodes across all windows.
func (s *Snapshot) NodeCount() int {
	total := 0
	for i := range s.Windows {
		total += countNodes(&s.Windows[i].Root)
	}
	return total
}

func countNodes(n *NodeRecord) int {
	total := 1
	for i := range n.Children {
		total += countNodes(&n.Children[i])
	}
	return total
}
