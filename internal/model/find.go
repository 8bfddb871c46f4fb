package model

import "strings"

// Field names a searchable NodeRecord field.
type Field string

const (
	FieldText        Field = "text"
	FieldContentDesc Field = "content-desc"
	FieldResourceID  Field = "resource-id"
	FieldClass       Field = "class"
)

// ParseField validates a field name from a client request.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldText, FieldContentDesc, FieldResourceID, FieldClass:
		return Field(s), true
	}
	return "", false
}

// ElementProjection is a childless view of a matched node, suitable for
// returning to a client as a search result.
type ElementProjection struct {
	ID          string `yaml:"id"             json:"id"`
	WindowID    int    `yaml:"window_id"      json:"window_id"`
	Class       string `yaml:"cls"            json:"cls"`
	Text        string `yaml:"t,omitempty"    json:"t,omitempty"`
	ContentDesc string `yaml:"d,omitempty"    json:"d,omitempty"`
	ResourceID  string `yaml:"res,omitempty"  json:"res,omitempty"`
	Bounds      [4]int `yaml:"b"              json:"b"`
	Clickable   bool   `yaml:"clk,omitempty"  json:"clk,omitempty"`
	Scrollable  bool   `yaml:"scr,omitempty"  json:"scr,omitempty"`
	Editable    bool   `yaml:"edt,omitempty"  json:"edt,omitempty"`
	Enabled     bool   `yaml:"ena,omitempty"  json:"ena,omitempty"`
	OnScreen    bool   `yaml:"on,omitempty"   json:"on,omitempty"`
}

// Find searches every window's tree in window order, pre-order within each
// tree, and returns a projection for every node whose field matches value.
// Exact mode requires byte equality; otherwise matching is case-insensitive
// substring containment. A node whose field is empty never matches.
func Find(windows []WindowRecord, field Field, value string, exact bool) []ElementProjection {
	var results []ElementProjection
	for i := range windows {
		findInNode(&windows[i].Root, windows[i].WindowID, field, value, exact, &results)
	}
	return results
}

func findInNode(n *NodeRecord, windowID int, field Field, value string, exact bool, results *[]ElementProjection) {
	if fieldMatches(fieldValue(n, field), value, exact) {
		*results = append(*results, Project(n, windowID))
	}
	for i := range n.Children {
		findInNode(&n.Children[i], windowID, field, value, exact, results)
	}
}

func fieldValue(n *NodeRecord, field Field) string {
	switch field {
	case FieldText:
		return n.Text
	case FieldContentDesc:
		return n.ContentDesc
	case FieldResourceID:
		return n.ResourceID
	case FieldClass:
		return n.Class
	}
	return ""
}

func fieldMatches(have, want string, exact bool) bool {
	if have == "" {
		return false
	}
	if exact {
		return have == want
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

// Project builds an ElementProjection from a node and the window it lives in.
func Project(n *NodeRecord, windowID int) ElementProjection {
	return ElementProjection{
		ID:          n.ID,
		WindowID:    windowID,
		Class:       n.Class,
		Text:        n.Text,
		ContentDesc: n.ContentDesc,
		ResourceID:  n.ResourceID,
		Bounds:      n.Bounds,
		Clickable:   n.Clickable,
		Scrollable:  n.Scrollable,
		Editable:    n.Editable,
		Enabled:     n.Enabled,
		OnScreen:    n.OnScreen,
	}
}

// FindByID returns the first node with the given id in traversal order across
// windows, or nil. Structural aliasing means duplicate ids can occur (the
// same dialog layout parsed under the legacy sentinel in two requests, or a
// mutated tree reusing a position); the first match in window order wins, and
// callers must tolerate a positionally-plausible node that is not the element
// they originally saw.
func FindByID(windows []WindowRecord, id string) *NodeRecord {
	for i := range windows {
		if found := findNodeByID(&windows[i].Root, id); found != nil {
			return found
		}
	}
	return nil
}

// FindWindowByID returns the snapshot window containing the given node id,
// alongside the node itself. Returns nils when the id is unknown.
func FindWindowByID(windows []WindowRecord, id string) (*WindowRecord, *NodeRecord) {
	for i := range windows {
		if found := findNodeByID(&windows[i].Root, id); found != nil {
			return &windows[i], found
		}
	}
	return nil, nil
}

func findNodeByID(n *NodeRecord, id string) *NodeRecord {
	if n.ID == id {
		return n
	}
	for i := range n.Children {
		if found := findNodeByID(&n.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}
