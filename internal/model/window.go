package model

// WindowKind classifies a live window by its platform-reported type.
type WindowKind string

const (
	KindPrimary       WindowKind = "primary"
	KindInputMethod   WindowKind = "input-method"
	KindSystem        WindowKind = "system"
	KindOverlay       WindowKind = "overlay"
	KindSplitDivider  WindowKind = "split-divider"
	KindMagnification WindowKind = "magnification"
	KindUnknown       WindowKind = "unknown"
)

// WindowRecord is the parsed state of one live window. WindowID is the
// stable OS-assigned identifier and is the only legitimate join key between
// a snapshot and live state; positional indices must never cross a request
// boundary, since windows appear, disappear, and reorder between requests.
type WindowRecord struct {
	WindowID int        `yaml:"window_id"          json:"window_id"`
	Kind     WindowKind `yaml:"kind"               json:"kind"`
	Package  string     `yaml:"package,omitempty"  json:"package,omitempty"` // Owning process name, best-effort
	Title    string     `yaml:"title,omitempty"    json:"title,omitempty"`
	Activity string     `yaml:"activity,omitempty" json:"activity,omitempty"` // Populated only for the focused primary window
	Layer    int        `yaml:"layer"              json:"layer"`
	Focused  bool       `yaml:"focused,omitempty"  json:"focused,omitempty"`
	Root     NodeRecord `yaml:"root"               json:"root"`
}

// NodeCount returns the number of parsed nodes in the window's tree.
func (w *WindowRecord) NodeCount() int {
	return countNodes(&w.Root)
}

// DegradedWindowID marks the synthetic window wrapped around the active root
// when window enumeration was unavailable.
const DegradedWindowID = -1
