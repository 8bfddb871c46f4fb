package adb

import (
	"testing"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
)

const sampleDumpsysWindows = `WINDOW MANAGER WINDOWS (dumpsys window windows)
  Window #0 Window{b1c2d3e u0 NavigationBar0}:
    mDisplayId=0 rootTaskId=1
    mAttrs={(0,2280)(fillx1080) gr=BOTTOM CENTER sim={adjust=pan} ty=NAVIGATION_BAR fmt=TRANSLUCENT}
  Window #1 Window{a0b1c2d u0 InputMethod}:
    mDisplayId=0 rootTaskId=1
    mAttrs={(0,0)(fillxwrap) gr=BOTTOM CENTER ty=INPUT_METHOD fmt=TRANSPARENT}
  Window #2 Window{8d72f1a u0 com.android.settings/com.android.settings.Settings}:
    mDisplayId=0 rootTaskId=12
    mAttrs={(0,0)(fillxfill) sim={adjust=resize} ty=BASE_APPLICATION fmt=TRANSLUCENT}
  mCurrentFocus=Window{8d72f1a u0 com.android.settings/com.android.settings.Settings}
  mFocusedApp=ActivityRecord{f00 u0 com.android.settings/.Settings t12}
`

func TestParseWindows(t *testing.T) {
	metas := parseWindows(sampleDumpsysWindows)
	if len(metas) != 3 {
		t.Fatalf("parsed %d windows, want 3", len(metas))
	}

	nav := metas[0]
	if nav.Kind != model.KindSystem || nav.Title != "NavigationBar0" || nav.Package != "" {
		t.Errorf("nav bar meta wrong: %+v", nav)
	}
	if nav.Layer != 3 {
		t.Errorf("top-most layer = %d, want 3", nav.Layer)
	}

	ime := metas[1]
	if ime.Kind != model.KindInputMethod || ime.Focused {
		t.Errorf("input method meta wrong: %+v", ime)
	}

	app := metas[2]
	if app.Kind != model.KindPrimary {
		t.Errorf("app kind = %q, want primary", app.Kind)
	}
	if app.Package != "com.android.settings" {
		t.Errorf("app package = %q", app.Package)
	}
	if app.Title != "com.android.settings/com.android.settings.Settings" {
		t.Errorf("app title = %q", app.Title)
	}
	if !app.Focused {
		t.Error("mCurrentFocus window not marked focused")
	}
	if app.Layer != 1 {
		t.Errorf("bottom-most layer = %d, want 1", app.Layer)
	}
	if app.ID != windowIDFromToken("8d72f1a") {
		t.Errorf("app id = %d, want id of its token", app.ID)
	}
	if app.ID == ime.ID || app.ID == nav.ID {
		t.Error("distinct tokens mapped to the same window id")
	}
}

func TestParseWindowsEmpty(t *testing.T) {
	if metas := parseWindows("WINDOW MANAGER WINDOWS\n"); metas != nil {
		t.Errorf("expected nil for output without windows, got %v", metas)
	}
}

func TestWindowIDFromToken(t *testing.T) {
	if id := windowIDFromToken("8d72f1a"); id != 0x8d72f1a {
		t.Errorf("id = %#x, want 0x8d72f1a", id)
	}
	// Tokens wider than 31 bits still land in positive int range.
	if id := windowIDFromToken("ffffffffff"); id < 0 {
		t.Errorf("wide token produced negative id %d", id)
	}
	if id := windowIDFromToken("not-hex"); id != 0 {
		t.Errorf("bad token id = %d, want 0", id)
	}
}

func TestKindFromType(t *testing.T) {
	tests := []struct {
		ty   string
		want model.WindowKind
	}{
		{"BASE_APPLICATION", model.KindPrimary},
		{"APPLICATION_STARTING", model.KindPrimary},
		{"INPUT_METHOD", model.KindInputMethod},
		{"STATUS_BAR", model.KindSystem},
		{"NOTIFICATION_SHADE", model.KindSystem},
		{"ACCESSIBILITY_OVERLAY", model.KindOverlay},
		{"APPLICATION_OVERLAY", model.KindOverlay},
		{"DOCK_DIVIDER", model.KindSplitDivider},
		{"MAGNIFICATION_OVERLAY", model.KindMagnification},
		{"WALLPAPER", model.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.ty, func(t *testing.T) {
			if got := kindFromType([]string{"", tt.ty}); got != tt.want {
				t.Errorf("kindFromType(%s) = %q, want %q", tt.ty, got, tt.want)
			}
		})
	}
	if got := kindFromType(nil); got != model.KindUnknown {
		t.Errorf("kindFromType(nil) = %q, want unknown", got)
	}
}
