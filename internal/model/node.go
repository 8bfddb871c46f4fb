package model

import "fmt"

// NodeRecord is one node of a parsed UI tree. It is a pure value: it holds no
// reference to the live accessibility node it was parsed from, and a Snapshot
// exclusively owns its records.
type NodeRecord struct {
	ID            string       `yaml:"id"              json:"id"`
	Class         string       `yaml:"cls"             json:"cls"` // Simplified class name, e.g. "Button"
	Text          string       `yaml:"t,omitempty"     json:"t,omitempty"`
	ContentDesc   string       `yaml:"d,omitempty"     json:"d,omitempty"`
	ResourceID    string       `yaml:"res,omitempty"   json:"res,omitempty"`
	Bounds        [4]int       `yaml:"b"               json:"b"` // [left, top, right, bottom] in screen pixels
	Clickable     bool         `yaml:"clk,omitempty"   json:"clk,omitempty"`
	LongClickable bool         `yaml:"lclk,omitempty"  json:"lclk,omitempty"`
	Focusable     bool         `yaml:"foc,omitempty"   json:"foc,omitempty"`
	Scrollable    bool         `yaml:"scr,omitempty"   json:"scr,omitempty"`
	Editable      bool         `yaml:"edt,omitempty"   json:"edt,omitempty"`
	Enabled       bool         `yaml:"ena,omitempty"   json:"ena,omitempty"`
	OnScreen      bool         `yaml:"on,omitempty"    json:"on,omitempty"`
	Children      []NodeRecord `yaml:"c,omitempty"     json:"c,omitempty"`
}

// Reportable reports whether the node carries information worth surfacing to
// a client: any visible text, description, or resource id, or any of the
// interactive capabilities. Nodes failing this predicate are elided from the
// compact output, though their reportable descendants are still emitted.
func (n *NodeRecord) Reportable() bool {
	if n.Text != "" || n.ContentDesc != "" || n.ResourceID != "" {
		return true
	}
	return n.Clickable || n.LongClickable || n.Scrollable || n.Editable
}

// Interactive reports whether the node advertises any interactive capability.
func (n *NodeRecord) Interactive() bool {
	return n.Clickable || n.LongClickable || n.Scrollable || n.Editable
}

// BoundsString renders the node bounds as "left,top,right,bottom".
func (n *NodeRecord) BoundsString() string {
	return fmt.Sprintf("%d,%d,%d,%d", n.Bounds[0], n.Bounds[1], n.Bounds[2], n.Bounds[3])
}

// Center returns the midpoint of the node bounds in screen pixels.
func (n *NodeRecord) Center() (x, y int) {
	return (n.Bounds[0] + n.Bounds[2]) / 2, (n.Bounds[1] + n.Bounds[3]) / 2
}
