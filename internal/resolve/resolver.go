// Package resolve re-locates previously reported nodes in the live tree and
// invokes actions on them.
package resolve

import (
	"errors"
	"fmt"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

var (
	// ErrNotFound indicates no structural match for the node id in any live
	// window. Non-fatal: the UI moved on since the snapshot.
	ErrNotFound = errors.New("node not found")
	// ErrCapabilityMismatch indicates the matched node does not advertise the
	// capability the action requires, e.g. click on a non-clickable node.
	ErrCapabilityMismatch = errors.New("node does not support the requested action")
	// ErrInvocationFailed indicates the platform accepted the node but the
	// capability invocation itself returned failure.
	ErrInvocationFailed = errors.New("action invocation failed")
)

// Resolve re-locates the node with the given id in the live tree and returns
// a live handle on it. Ownership of the returned handle transfers to the
// caller; every other handle touched during resolution is released before
// Resolve returns, on every path.
//
// Live windows are re-enumerated here rather than carried over from the
// snapshot: windows can appear, disappear, and reorder between snapshot and
// action, so the join runs on the stable window id, never on position. For
// the joined window a parallel depth-first walk descends the live tree and
// the record tree together; the walk is advisory and gives up quietly at any
// position where the trees have drifted apart. When enumeration comes back
// empty, resolution falls back to the active root (see degradedResolve),
// independently of whether the snapshot itself was degraded.
//
// The reverse recovery is not bridged: ids from a degraded snapshot live
// under the synthetic window (model.DegradedWindowID), which no real window
// id can join, so once enumeration recovers they resolve to ErrNotFound.
// Callers re-snapshot after a degraded read rather than holding its ids.
func Resolve(src platform.TreeSource, snap *model.Snapshot, nodeID string) (platform.NodeHandle, error) {
	if src == nil || !src.Connected() {
		return nil, platform.ErrServiceUnavailable
	}
	windows, err := src.EnumerateWindows()
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	if len(windows) == 0 {
		return degradedResolve(src, snap, nodeID)
	}

	var rel releaser
	defer rel.releaseAll()
	for _, w := range windows {
		rel.track(w.Root)
	}

	for _, live := range windows {
		if live.Root == nil {
			continue
		}
		rec := snapshotWindow(snap, live.WindowID)
		if rec == nil {
			continue
		}
		rel.forget(live.Root) // the walk owns the root from here
		if h := parallelWalk(live.Root, &rec.Root, nodeID); h != nil {
			return h, nil
		}
	}
	return nil, fmt.Errorf("node %s: %w", nodeID, ErrNotFound)
}

// degradedResolve walks the active root against every snapshot window's
// record tree, in snapshot order, stopping at the first match. This keeps
// nodes actionable while the windowing capability is transiently unavailable.
func degradedResolve(src platform.TreeSource, snap *model.Snapshot, nodeID string) (platform.NodeHandle, error) {
	for i := range snap.Windows {
		root, err := src.ActiveRoot()
		if err != nil || root == nil {
			return nil, fmt.Errorf("active root: %w", platform.ErrServiceUnavailable)
		}
		if h := parallelWalk(root, &snap.Windows[i].Root, nodeID); h != nil {
			return h, nil
		}
	}
	return nil, fmt.Errorf("node %s: %w", nodeID, ErrNotFound)
}

// snapshotWindow joins a live window id back to its snapshot record.
func snapshotWindow(snap *model.Snapshot, windowID int) *model.WindowRecord {
	for i := range snap.Windows {
		if snap.Windows[i].WindowID == windowID {
			return &snap.Windows[i]
		}
	}
	return nil
}

// parallelWalk descends the live tree and the record tree simultaneously.
// It owns h: on a match the matched handle is returned unreleased (ownership
// moves to the caller) and every other handle opened beneath it has already
// been released; on a miss h and everything beneath it are released. Child
// recursion covers only the positions both trees agree on: if either tree
// has fewer children than the other, the extra slots are structural drift
// and are abandoned rather than treated as an error.
func parallelWalk(h platform.NodeHandle, rec *model.NodeRecord, nodeID string) platform.NodeHandle {
	if rec.ID == nodeID {
		return h
	}
	n := h.ChildCount()
	if len(rec.Children) < n {
		n = len(rec.Children)
	}
	for i := 0; i < n; i++ {
		child, err := h.Child(i)
		if err != nil || child == nil {
			continue // the live tree shrank mid-walk
		}
		if match := parallelWalk(child, &rec.Children[i], nodeID); match != nil {
			h.Release()
			return match
		}
	}
	h.Release()
	return nil
}
