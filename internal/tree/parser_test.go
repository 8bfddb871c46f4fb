package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform/fake"
)

// settingsTree builds a small fake live tree: root FrameLayout with a button
// and a nested list.
func settingsTree() *fake.Node {
	return fake.N(platform.NodeInfo{Class: "FrameLayout", Bounds: [4]int{0, 0, 1080, 2400}, Enabled: true, OnScreen: true},
		fake.N(platform.NodeInfo{Class: "Button", Text: "OK", Bounds: [4]int{100, 200, 300, 260}, Clickable: true, Enabled: true, OnScreen: true}),
		fake.N(platform.NodeInfo{Class: "RecyclerView", ResourceID: "com.app:id/list", Scrollable: true, Enabled: true, OnScreen: true},
			fake.N(platform.NodeInfo{Class: "TextView", Text: "Network", Enabled: true, OnScreen: true}),
			fake.N(platform.NodeInfo{Class: "TextView", Text: "Display", Enabled: true, OnScreen: true}),
		),
	)
}

func TestParseDeterminism(t *testing.T) {
	live := settingsTree()

	h1 := fake.Handle(live)
	first, err := Parse(h1, model.LegacyRootParentID)
	h1.Release()
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}

	h2 := fake.Handle(live)
	second, err := Parse(h2, model.LegacyRootParentID)
	h2.Release()
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parsing an unchanged tree differed (-first +second):\n%s", diff)
	}
}

func TestParseAssignsDistinctIDs(t *testing.T) {
	h := fake.Handle(settingsTree())
	rec, err := Parse(h, model.LegacyRootParentID)
	h.Release()
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	var walk func(n *model.NodeRecord)
	walk = func(n *model.NodeRecord) {
		if n.ID == "" {
			t.Errorf("node %s has empty id", n.Class)
		}
		if seen[n.ID] {
			t.Errorf("duplicate id %s within one parse", n.ID)
		}
		seen[n.ID] = true
		for i := range n.Children {
			walk(&n.Children[i])
		}
	}
	walk(&rec)
	if len(seen) != 5 {
		t.Errorf("parsed %d nodes, want 5", len(seen))
	}
}

func TestParseReleasesEveryVisitedHandle(t *testing.T) {
	live := settingsTree()
	h := fake.Handle(live)
	if _, err := Parse(h, model.LegacyRootParentID); err != nil {
		t.Fatal(err)
	}
	// The root handle stays caller-owned.
	if live.Released != 0 {
		t.Errorf("Parse released the caller's root handle %d times", live.Released)
	}
	h.Release()
	if leaks := fake.Leaks(live); len(leaks) > 0 {
		t.Errorf("leaked handles after parse: %v", leaks)
	}
}

func TestParseNilRootIsWindowUnavailable(t *testing.T) {
	_, err := Parse(nil, model.LegacyRootParentID)
	if !errors.Is(err, ErrWindowUnavailable) {
		t.Errorf("Parse(nil) = %v, want ErrWindowUnavailable", err)
	}
}

func twoWindowSource() *fake.Source {
	return &fake.Source{
		Windows: []fake.Window{
			{
				Info: platform.WindowInfo{WindowID: 10, Kind: model.KindPrimary, Layer: 2, Focused: true, Title: "Settings", Package: "com.android.settings"},
				Tree: settingsTree(),
			},
			{
				Info: platform.WindowInfo{WindowID: 20, Kind: model.KindInputMethod, Layer: 1, Package: "com.android.inputmethod"},
				Tree: fake.N(platform.NodeInfo{Class: "KeyboardView", Enabled: true, OnScreen: true}),
			},
		},
		Active: settingsTree(),
	}
}

func testProvider(src *fake.Source) *platform.Provider {
	return &platform.Provider{
		Tree:       src,
		Foreground: &fake.Foreground{FG: platform.Foreground{Package: "com.android.settings", Activity: ".Settings"}},
	}
}

func TestSnapshotAll(t *testing.T) {
	src := twoWindowSource()
	snap, err := SnapshotAll(testProvider(src))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Degraded {
		t.Error("snapshot marked degraded with windows available")
	}
	if len(snap.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(snap.Windows))
	}
	if snap.Windows[0].WindowID != 10 || snap.Windows[1].WindowID != 20 {
		t.Errorf("window ids = %d, %d", snap.Windows[0].WindowID, snap.Windows[1].WindowID)
	}

	// Activity attribution: focused primary window owned by the foreground
	// process gets it, the input method does not.
	if snap.Windows[0].Activity != ".Settings" {
		t.Errorf("focused primary activity = %q, want .Settings", snap.Windows[0].Activity)
	}
	if snap.Windows[1].Activity != "" {
		t.Errorf("input-method window got activity %q", snap.Windows[1].Activity)
	}

	for _, w := range src.Windows {
		if leaks := fake.Leaks(w.Tree); len(leaks) > 0 {
			t.Errorf("window %d leaked handles: %v", w.Info.WindowID, leaks)
		}
	}
}

func TestSnapshotAllNoActivityForMismatchedForeground(t *testing.T) {
	src := twoWindowSource()
	p := &platform.Provider{
		Tree:       src,
		Foreground: &fake.Foreground{FG: platform.Foreground{Package: "com.other.app", Activity: ".Main"}},
	}
	snap, err := SnapshotAll(p)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Windows[0].Activity != "" {
		t.Errorf("activity attributed despite foreground mismatch: %q", snap.Windows[0].Activity)
	}
}

func TestSnapshotAllSkipsUnavailableWindow(t *testing.T) {
	src := twoWindowSource()
	src.Windows[0].Tree = nil // root not retrievable
	snap, err := SnapshotAll(testProvider(src))
	if err != nil {
		t.Fatalf("one bad window aborted the pass: %v", err)
	}
	if len(snap.Windows) != 1 || snap.Windows[0].WindowID != 20 {
		t.Fatalf("windows = %+v, want only window 20", snap.Windows)
	}
}

func TestSnapshotAllDegraded(t *testing.T) {
	src := twoWindowSource()
	src.Windows = nil // transient: enumeration comes back empty
	snap, err := SnapshotAll(testProvider(src))
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Degraded {
		t.Error("snapshot not marked degraded")
	}
	if len(snap.Windows) != 1 || snap.Windows[0].WindowID != model.DegradedWindowID {
		t.Fatalf("windows = %+v, want one synthetic window", snap.Windows)
	}
	if snap.Windows[0].Root.Children[0].Text != "OK" {
		t.Error("active root content missing from degraded snapshot")
	}
	if leaks := fake.Leaks(src.Active); len(leaks) > 0 {
		t.Errorf("degraded parse leaked handles: %v", leaks)
	}
}

func TestSnapshotAllServiceUnavailable(t *testing.T) {
	src := twoWindowSource()
	src.Offline = true
	_, err := SnapshotAll(testProvider(src))
	if !errors.Is(err, platform.ErrServiceUnavailable) {
		t.Errorf("offline source: err = %v, want ErrServiceUnavailable", err)
	}
}

func TestParseIDsStableAcrossSentinels(t *testing.T) {
	// The same tree parsed under two different window sentinels yields
	// different ids: cross-window collision avoidance.
	live := settingsTree()
	h1 := fake.Handle(live)
	a, _ := Parse(h1, model.WindowRootParentID(10))
	h1.Release()
	h2 := fake.Handle(live)
	b, _ := Parse(h2, model.WindowRootParentID(20))
	h2.Release()
	if a.ID == b.ID {
		t.Error("root ids collided across window sentinels")
	}
}
