package model

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Fingerprint folds the combined structure of every window, in window order,
// into one comparable digest. Two fingerprints taken at different times are
// equal iff nothing changed in between: any window appearing, disappearing,
// reordering, or changing contents flips the digest. Window-set volatility is
// itself a non-idle signal, so window-count changes are folded in like any
// other structural change rather than special-cased. An external poller
// compares successive digests to decide when the UI has gone quiet.
func Fingerprint(s *Snapshot) string {
	h := blake3.New()
	fmt.Fprintf(h, "snapshot windows=%d degraded=%v\n", len(s.Windows), s.Degraded)
	for i := range s.Windows {
		w := &s.Windows[i]
		fmt.Fprintf(h, "window id=%d kind=%s layer=%d focused=%v pkg=%d:%s title=%d:%s\n",
			w.WindowID, w.Kind, w.Layer, w.Focused,
			len(w.Package), w.Package, len(w.Title), w.Title)
		fingerprintNode(h, &w.Root, 0)
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// fingerprintNode writes one line per node: structural position, class,
// content, a capability bitmask, and a bounds checksum. Free-text fields are
// length-prefixed so content containing the separators cannot shift a value
// into a neighboring field and collide two different snapshots.
func fingerprintNode(w io.Writer, n *NodeRecord, depth int) {
	fmt.Fprintf(w, "%d:%d|%d:%s|%d:%s|%d:%s|%d:%s|%d|%d|%v\n",
		depth, len(n.Children),
		len(n.Class), n.Class,
		len(n.Text), n.Text,
		len(n.ContentDesc), n.ContentDesc,
		len(n.ResourceID), n.ResourceID,
		flagBits(n), boundsChecksum(n.Bounds), n.Reportable())
	for i := range n.Children {
		fingerprintNode(w, &n.Children[i], depth+1)
	}
}

func flagBits(n *NodeRecord) int {
	bits := 0
	for i, set := range []bool{n.Clickable, n.LongClickable, n.Focusable, n.Scrollable, n.Editable, n.Enabled, n.OnScreen} {
		if set {
			bits |= 1 << i
		}
	}
	return bits
}

func boundsChecksum(b [4]int) int {
	return b[0] + 31*b[1] + 961*b[2] + 29791*b[3]
}
