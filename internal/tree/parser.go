// Package tree builds immutable snapshots from the live windowed UI tree.
package tree

import (
	"errors"
	"fmt"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

// ErrWindowUnavailable indicates one window's root could not be parsed. It is
// absorbed per-window during a multi-window pass: the window is omitted from
// the snapshot and the rest of the pass continues.
var ErrWindowUnavailable = errors.New("window unavailable")

// Parse walks the live tree rooted at root depth-first and returns its
// NodeRecord tree. Node ids derive from rootParentID plus each node's depth
// and sibling index, so parsing the same unchanged structure twice yields
// identical ids at every position. rootParentID is
// model.LegacyRootParentID for single-window and degraded parses, or
// model.WindowRootParentID(windowID) inside a multi-window snapshot so that
// identical substructure in two windows cannot collide.
//
// Every child handle acquired during the walk is released before Parse
// returns; root itself stays owned by the caller.
func Parse(root platform.NodeHandle, rootParentID string) (model.NodeRecord, error) {
	if root == nil {
		return model.NodeRecord{}, ErrWindowUnavailable
	}
	return parseNode(root, rootParentID, 0, 0), nil
}

func parseNode(h platform.NodeHandle, parentID string, depth, siblingIndex int) model.NodeRecord {
	info := h.Info()
	rec := model.NodeRecord{
		ID:            model.NodeID(parentID, depth, siblingIndex),
		Class:         info.Class,
		Text:          info.Text,
		ContentDesc:   info.ContentDesc,
		ResourceID:    info.ResourceID,
		Bounds:        info.Bounds,
		Clickable:     info.Clickable,
		LongClickable: info.LongClickable,
		Focusable:     info.Focusable,
		Scrollable:    info.Scrollable,
		Editable:      info.Editable,
		Enabled:       info.Enabled,
		OnScreen:      info.OnScreen,
	}
	count := h.ChildCount()
	for i := 0; i < count; i++ {
		child, err := h.Child(i)
		if err != nil || child == nil {
			// The live tree shrank mid-walk; skip the slot.
			continue
		}
		rec.Children = append(rec.Children, parseNode(child, rec.ID, depth+1, i))
		child.Release()
	}
	return rec
}

// SnapshotAll enumerates the live windows and parses each into a
// WindowRecord. A window whose root cannot be parsed is omitted; the pass
// never aborts for one bad window. When enumeration returns no windows at
// all (a transient platform condition, e.g. during a system-dialog
// transition), SnapshotAll falls back to the active root and returns a
// degraded single-window snapshot. Degraded snapshots are a first-class
// output that every consumer, including the resolver, must accept.
//
// The owner activity is attributed best-effort, and only to the window that
// is focused, of primary kind, and owned by the tracked foreground process.
func SnapshotAll(p *platform.Provider) (*model.Snapshot, error) {
	if p == nil || p.Tree == nil || !p.Tree.Connected() {
		return nil, platform.ErrServiceUnavailable
	}
	windows, err := p.Tree.EnumerateWindows()
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	if len(windows) == 0 {
		return degradedSnapshot(p.Tree)
	}

	snap := &model.Snapshot{}
	for _, w := range windows {
		rec, err := Parse(w.Root, model.WindowRootParentID(w.WindowID))
		if w.Root != nil {
			w.Root.Release()
		}
		if err != nil {
			continue // window unavailable: omit it, keep going
		}
		wr := model.WindowRecord{
			WindowID: w.WindowID,
			Kind:     w.Kind,
			Package:  w.Package,
			Title:    w.Title,
			Layer:    w.Layer,
			Focused:  w.Focused,
			Root:     rec,
		}
		if w.Focused && w.Kind == model.KindPrimary && p.Foreground != nil {
			if fg, err := p.Foreground.ForegroundApp(); err == nil && fg.Package != "" && fg.Package == w.Package {
				wr.Activity = fg.Activity
			}
		}
		snap.Windows = append(snap.Windows, wr)
	}
	return snap, nil
}

// degradedSnapshot parses the externally-designated active root as a single
// synthetic window, using the legacy parent-id sentinel.
func degradedSnapshot(src platform.TreeSource) (*model.Snapshot, error) {
	root, err := src.ActiveRoot()
	if err != nil || root == nil {
		return nil, fmt.Errorf("active root: %w", ErrWindowUnavailable)
	}
	rec, err := Parse(root, model.LegacyRootParentID)
	root.Release()
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Degraded: true,
		Windows: []model.WindowRecord{{
			WindowID: model.DegradedWindowID,
			Kind:     model.KindUnknown,
			Focused:  true,
			Root:     rec,
		}},
	}, nil
}
