package resolve

import (
	"fmt"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
)

// Do performs an action on the node with the given id. A fresh snapshot is
// built for the resolution (snapshot content is never reused across
// requests); position-derived ids make the new snapshot line up with the one
// the client read the id from, as long as the structure has not changed.
//
// The resolved handle is released on every path once the invocation
// finishes, whatever its outcome. Failure taxonomy, distinct and non-fatal
// unless noted: platform.ErrServiceUnavailable (fatal, host capability
// offline), ErrNotFound, ErrCapabilityMismatch, ErrInvocationFailed (with
// the platform's reason string).
func Do(p *platform.Provider, nodeID string, action platform.Action, args platform.PerformArgs) error {
	snap, err := tree.SnapshotAll(p)
	if err != nil {
		return err
	}
	rec := model.FindByID(snap.Windows, nodeID)
	if rec == nil {
		return fmt.Errorf("node %s: %w", nodeID, ErrNotFound)
	}
	if err := checkCapability(rec, action); err != nil {
		return err
	}

	h, err := Resolve(p.Tree, snap, nodeID)
	if err != nil {
		return err
	}
	defer h.Release()

	if err := h.Perform(action, args); err != nil {
		return fmt.Errorf("%s on node %s: %w: %v", action, nodeID, ErrInvocationFailed, err)
	}
	return nil
}

// checkCapability verifies against the snapshot record that the node
// advertises the capability the action requires.
func checkCapability(rec *model.NodeRecord, action platform.Action) error {
	ok := true
	var need string
	switch action {
	case platform.ActionClick:
		ok, need = rec.Clickable, "clickable"
	case platform.ActionLongClick:
		ok, need = rec.LongClickable, "long-clickable"
	case platform.ActionSetText:
		ok, need = rec.Editable, "editable"
	case platform.ActionScroll:
		ok, need = rec.Scrollable, "scrollable"
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if !ok {
		return fmt.Errorf("%s on node %s (%s): node is not %s: %w",
			action, rec.ID, rec.Class, need, ErrCapabilityMismatch)
	}
	return nil
}
