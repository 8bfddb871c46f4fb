package model

import (
	"crypto/sha256"
	"fmt"
)

// LegacyRootParentID is the parent-id sentinel used when a tree is parsed
// outside a multi-window snapshot (single-window and degraded parses).
const LegacyRootParentID = "root"

// WindowRootParentID returns the parent-id sentinel for a window's root node
// in a multi-window snapshot. Deriving it from the stable window id keeps
// node ids from colliding across windows that share identical substructure,
// such as two copies of the same dialog layout.
func WindowRootParentID(windowID int) string {
	return fmt.Sprintf("window:%d", windowID)
}

// NodeID derives a node's identity from its structural position: the parent
// node's id, its depth, and its index among siblings. Content never enters
// the hash, so re-parsing an unchanged tree yields identical ids at every
// position, and re-parsing a mutated tree yields the same id for whatever
// node now occupies that position. That structural aliasing is deliberate:
// view recycling legitimately reuses a slot for different content, and the
// host platform offers no identity that survives it.
func NodeID(parentID string, depth, siblingIndex int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d", parentID, depth, siblingIndex)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
