package adb

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
)

// windowMeta is one window's metadata scraped from `dumpsys window windows`.
type windowMeta struct {
	ID      int
	Kind    model.WindowKind
	Title   string
	Package string
	Layer   int
	Focused bool
}

var (
	// "Window #3 Window{8d72f1a u0 com.android.settings/com.android.settings.Settings}:"
	windowHeaderRe = regexp.MustCompile(`Window #\d+ Window\{([0-9a-f]+) u\d+ ([^}]+)\}`)
	windowTypeRe   = regexp.MustCompile(`ty=([A-Z_0-9]+)`)
	currentFocusRe = regexp.MustCompile(`mCurrentFocus=Window\{([0-9a-f]+) `)
)

// parseWindows scrapes window metadata out of dumpsys output. The kernel of
// each entry is the header line; the layer is derived from enumeration order
// (dumpsys lists windows top-most first) and the focused window comes from
// the trailing mCurrentFocus line.
func parseWindows(out string) []windowMeta {
	var metas []windowMeta
	var focusedToken string
	if m := currentFocusRe.FindStringSubmatch(out); m != nil {
		focusedToken = m[1]
	}

	blocks := windowHeaderRe.FindAllStringSubmatchIndex(out, -1)
	for i, loc := range blocks {
		token := out[loc[2]:loc[3]]
		name := out[loc[4]:loc[5]]

		// Window body: everything up to the next header.
		end := len(out)
		if i+1 < len(blocks) {
			end = blocks[i+1][0]
		}
		body := out[loc[1]:end]

		meta := windowMeta{
			ID:      windowIDFromToken(token),
			Kind:    kindFromType(windowTypeRe.FindStringSubmatch(body)),
			Title:   name,
			Focused: token == focusedToken,
		}
		if pkg, _, ok := strings.Cut(name, "/"); ok {
			meta.Package = pkg
		}
		metas = append(metas, meta)
	}

	// Top-most first in dumpsys output; higher layer = closer to the user.
	for i := range metas {
		metas[i].Layer = len(metas) - i
	}
	return metas
}

// windowIDFromToken converts the stable per-window identity hash that dumpsys
// prints (e.g. "8d72f1a") into an integer window id.
func windowIDFromToken(token string) int {
	v, err := strconv.ParseInt(token, 16, 64)
	if err != nil {
		return 0
	}
	// Keep ids in a comfortable positive int range.
	return int(v & 0x7fffffff)
}

func kindFromType(m []string) model.WindowKind {
	if m == nil {
		return model.KindUnknown
	}
	switch m[1] {
	case "BASE_APPLICATION", "APPLICATION", "APPLICATION_STARTING", "DRAWN_APPLICATION":
		return model.KindPrimary
	case "INPUT_METHOD", "INPUT_METHOD_DIALOG":
		return model.KindInputMethod
	case "STATUS_BAR", "NAVIGATION_BAR", "NAVIGATION_BAR_PANEL", "STATUS_BAR_ADDITIONAL", "NOTIFICATION_SHADE", "SYSTEM_DIALOG", "SYSTEM_ALERT", "TOAST", "KEYGUARD_DIALOG":
		return model.KindSystem
	case "ACCESSIBILITY_OVERLAY", "APPLICATION_OVERLAY", "SYSTEM_OVERLAY":
		return model.KindOverlay
	case "DOCK_DIVIDER":
		return model.KindSplitDivider
	case "MAGNIFICATION_OVERLAY":
		return model.KindMagnification
	default:
		return model.KindUnknown
	}
}
