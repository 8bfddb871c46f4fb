// Package format serializes snapshots into the compact tab-separated text
// the automation client consumes. The note strings, field order, and tab
// delimiter are a wire-level contract: clients parse this output, so the
// exact wording and layout must not change.
package format

import (
	"fmt"
	"strings"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

// Fixed informational notes emitted at the top of every snapshot.
const (
	noteOmission   = "Note: nodes with no text, no content-desc, no resource-id and no interactive flags are omitted; their matching descendants are still listed."
	noteTruncation = "Note: text and content-desc longer than 100 characters are truncated and end with \"[cut]\"."
	noteFlags      = "Note: flags start with the screen state (on/off), followed by any of: clk=clickable, lclk=long-clickable, foc=focusable, scr=scrollable, edt=editable, ena=enabled."
	noteDegraded   = "Warning: window enumeration was unavailable; this snapshot covers only the active window."
)

// columnHeader labels the tab-separated data rows.
const columnHeader = "id\tclass\ttext\tcontent-desc\tresource-id\tbounds\tflags"

const (
	maxFieldLen      = 100
	truncationMarker = "[cut]"
)

// Format renders a snapshot as compact client-facing text: fixed notes, a
// degraded notice when applicable, the display metrics, then one section per
// window with a header line and one row per kept node.
func Format(snap *model.Snapshot, metrics platform.Metrics) string {
	var b strings.Builder
	b.WriteString(noteOmission)
	b.WriteByte('\n')
	b.WriteString(noteTruncation)
	b.WriteByte('\n')
	b.WriteString(noteFlags)
	b.WriteByte('\n')
	if snap.Degraded {
		b.WriteString(noteDegraded)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "display: %dx%d density=%g orientation=%s\n",
		metrics.Width, metrics.Height, metrics.Density, metrics.Orientation)

	for i := range snap.Windows {
		writeWindow(&b, &snap.Windows[i])
	}
	return b.String()
}

// writeWindow emits the window header, the column header, and the kept rows.
// Absent package and title render as the literal "unknown"; an absent
// activity is omitted entirely rather than placeholdered.
func writeWindow(b *strings.Builder, w *model.WindowRecord) {
	fmt.Fprintf(b, "window=%d kind=%s package=%s title=%s",
		w.WindowID, w.Kind, orUnknown(w.Package), orUnknown(w.Title))
	if w.Activity != "" {
		fmt.Fprintf(b, " activity=%s", w.Activity)
	}
	fmt.Fprintf(b, " layer=%d focused=%v\n", w.Layer, w.Focused)
	b.WriteString(columnHeader)
	b.WriteByte('\n')
	writeRows(b, &w.Root)
}

// writeRows walks the tree emitting a row per reportable node. Elision is
// structural pruning, not subtree pruning: an elided node's kept descendants
// are still emitted.
func writeRows(b *strings.Builder, n *model.NodeRecord) {
	if n.Reportable() {
		fmt.Fprintf(b, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			n.ID,
			n.Class,
			orDash(truncate(sanitize(n.Text))),
			orDash(truncate(sanitize(n.ContentDesc))),
			orDash(n.ResourceID),
			n.BoundsString(),
			flagTokens(n))
	}
	for i := range n.Children {
		writeRows(b, &n.Children[i])
	}
}

// flagTokens renders the comma-joined capability list. The screen-state token
// comes first, then the set flags in canonical order; absent flags are
// omitted rather than rendered as false.
func flagTokens(n *model.NodeRecord) string {
	tokens := make([]string, 0, 7)
	if n.OnScreen {
		tokens = append(tokens, "on")
	} else {
		tokens = append(tokens, "off")
	}
	for _, f := range []struct {
		set   bool
		token string
	}{
		{n.Clickable, "clk"},
		{n.LongClickable, "lclk"},
		{n.Focusable, "foc"},
		{n.Scrollable, "scr"},
		{n.Editable, "edt"},
		{n.Enabled, "ena"},
	} {
		if f.set {
			tokens = append(tokens, f.token)
		}
	}
	return strings.Join(tokens, ",")
}

// truncate cuts a field to its first maxFieldLen characters and appends the
// truncation marker. A field of exactly maxFieldLen is left untouched.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldLen {
		return s
	}
	return string(runes[:maxFieldLen]) + truncationMarker
}

// sanitize keeps free text from breaking the tab/newline framing.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
