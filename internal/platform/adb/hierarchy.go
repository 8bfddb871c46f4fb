package adb

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

// xmlNode mirrors one <node> of a uiautomator dump.
type xmlNode struct {
	Index         int       `xml:"index,attr"`
	Text          string    `xml:"text,attr"`
	ResourceID    string    `xml:"resource-id,attr"`
	Class         string    `xml:"class,attr"`
	Package       string    `xml:"package,attr"`
	ContentDesc   string    `xml:"content-desc,attr"`
	Clickable     bool      `xml:"clickable,attr"`
	LongClickable bool      `xml:"long-clickable,attr"`
	Focusable     bool      `xml:"focusable,attr"`
	Scrollable    bool      `xml:"scrollable,attr"`
	Enabled       bool      `xml:"enabled,attr"`
	Password      bool      `xml:"password,attr"`
	Bounds        string    `xml:"bounds,attr"`
	Nodes         []xmlNode `xml:"node"`
}

type xmlHierarchy struct {
	XMLName  xml.Name  `xml:"hierarchy"`
	Rotation int       `xml:"rotation,attr"`
	Nodes    []xmlNode `xml:"node"`
}

// uiNode is one node of a parsed dump, shared by the handles handed out for
// it. A dump is a point-in-time copy, so Release is bookkeeping-free here;
// the handle contract still applies to callers.
type uiNode struct {
	info     platform.NodeInfo
	pkg      string
	children []*uiNode
}

var boundsRe = regexp.MustCompile(`\[(-?\d+),(-?\d+)\]\[(-?\d+),(-?\d+)\]`)

// parseHierarchy decodes a uiautomator dump into a uiNode tree. uiautomator
// wraps everything in a synthetic <hierarchy> element whose single child is
// the real root.
func parseHierarchy(data []byte) (*uiNode, int, error) {
	// exec-out appends "UI hierchary dumped to: /dev/tty" after the XML.
	if i := strings.LastIndex(string(data), "</hierarchy>"); i >= 0 {
		data = data[:i+len("</hierarchy>")]
	}
	var doc xmlHierarchy
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse hierarchy: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, 0, fmt.Errorf("hierarchy is empty")
	}
	return convertNode(&doc.Nodes[0]), doc.Rotation, nil
}

func convertNode(x *xmlNode) *uiNode {
	bounds, hasArea := parseBounds(x.Bounds)
	n := &uiNode{
		pkg: x.Package,
		info: platform.NodeInfo{
			Class:         simplifyClass(x.Class),
			Text:          x.Text,
			ContentDesc:   x.ContentDesc,
			ResourceID:    x.ResourceID,
			Bounds:        bounds,
			Clickable:     x.Clickable,
			LongClickable: x.LongClickable,
			Focusable:     x.Focusable,
			Scrollable:    x.Scrollable,
			Editable:      isEditable(x),
			Enabled:       x.Enabled,
			OnScreen:      hasArea,
		},
	}
	for i := range x.Nodes {
		n.children = append(n.children, convertNode(&x.Nodes[i]))
	}
	return n
}

// parseBounds decodes "[l,t][r,b]" and reports whether the rect has area.
// uiautomator clamps off-screen nodes to empty rects.
func parseBounds(s string) ([4]int, bool) {
	m := boundsRe.FindStringSubmatch(s)
	if m == nil {
		return [4]int{}, false
	}
	var b [4]int
	for i := 0; i < 4; i++ {
		fmt.Sscanf(m[i+1], "%d", &b[i])
	}
	return b, b[2] > b[0] && b[3] > b[1]
}

// simplifyClass strips the package prefix from a fully-qualified view class:
// "android.widget.Button" becomes "Button".
func simplifyClass(class string) string {
	if i := strings.LastIndex(class, "."); i >= 0 {
		return class[i+1:]
	}
	return class
}

// isEditable infers editability: uiautomator dumps carry no editable
// attribute, but text inputs descend from EditText or report as password
// fields.
func isEditable(x *xmlNode) bool {
	return strings.Contains(x.Class, "EditText") || x.Password
}

// nodeHandle is a live handle over one dump node.
type nodeHandle struct {
	a *ADB
	n *uiNode
}

func (h *nodeHandle) Info() platform.NodeInfo { return h.n.info }

func (h *nodeHandle) ChildCount() int { return len(h.n.children) }

func (h *nodeHandle) Child(i int) (platform.NodeHandle, error) {
	if i < 0 || i >= len(h.n.children) {
		return nil, fmt.Errorf("child index %d out of range (%d children)", i, len(h.n.children))
	}
	return &nodeHandle{a: h.a, n: h.n.children[i]}, nil
}

func (h *nodeHandle) Release() {}

// Perform drives the node through coordinate input on its bounds. set-text
// focuses the field first; long-click is a stationary swipe.
func (h *nodeHandle) Perform(action platform.Action, args platform.PerformArgs) error {
	b := h.n.info.Bounds
	cx, cy := (b[0]+b[2])/2, (b[1]+b[3])/2
	switch action {
	case platform.ActionClick:
		_, err := h.a.shell("input", "tap", itoa(cx), itoa(cy))
		return err
	case platform.ActionLongClick:
		_, err := h.a.shell("input", "swipe", itoa(cx), itoa(cy), itoa(cx), itoa(cy), "600")
		return err
	case platform.ActionSetText:
		if _, err := h.a.shell("input", "tap", itoa(cx), itoa(cy)); err != nil {
			return err
		}
		_, err := h.a.shell("input", "text", escapeInputText(args.Text))
		return err
	case platform.ActionScroll:
		x1, y1, x2, y2 := scrollStroke(b, args.Direction)
		_, err := h.a.shell("input", "swipe", itoa(x1), itoa(y1), itoa(x2), itoa(y2), "300")
		return err
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

// scrollStroke computes a swipe across the middle half of the node's bounds.
// Scrolling down means revealing content below, i.e. swiping upward.
func scrollStroke(b [4]int, dir platform.ScrollDirection) (x1, y1, x2, y2 int) {
	cx, cy := (b[0]+b[2])/2, (b[1]+b[3])/2
	dx, dy := (b[2]-b[0])/4, (b[3]-b[1])/4
	switch dir {
	case platform.ScrollUp:
		return cx, cy - dy, cx, cy + dy
	case platform.ScrollLeft:
		return cx - dx, cy, cx + dx, cy
	case platform.ScrollRight:
		return cx + dx, cy, cx - dx, cy
	default: // down
		return cx, cy + dy, cx, cy - dy
	}
}

// escapeInputText quotes text for `input text`, which splits on spaces and
// interprets shell metacharacters.
func escapeInputText(s string) string {
	replacer := strings.NewReplacer(
		" ", "%s",
		"&", "\\&",
		"<", "\\<",
		">", "\\>",
		"(", "\\(",
		")", "\\)",
		"'", "\\'",
		"\"", "\\\"",
		";", "\\;",
		"|", "\\|",
		"$", "\\$",
	)
	return replacer.Replace(s)
}

func itoa(v int) string { return fmt.Sprintf("%d", v) }
