package model

import "testing"

func TestReportable(t *testing.T) {
	tests := []struct {
		name string
		node NodeRecord
		want bool
	}{
		{"bare container", NodeRecord{Class: "FrameLayout", Enabled: true, OnScreen: true}, false},
		{"text", NodeRecord{Text: "OK"}, true},
		{"content description", NodeRecord{ContentDesc: "Back"}, true},
		{"resource id", NodeRecord{ResourceID: "com.app:id/ok"}, true},
		{"clickable", NodeRecord{Clickable: true}, true},
		{"long-clickable", NodeRecord{LongClickable: true}, true},
		{"scrollable", NodeRecord{Scrollable: true}, true},
		{"editable", NodeRecord{Editable: true}, true},
		{"focusable only", NodeRecord{Focusable: true}, false},
		{"enabled only", NodeRecord{Enabled: true}, false},
		{"onscreen only", NodeRecord{OnScreen: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Reportable(); got != tt.want {
				t.Errorf("Reportable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsString(t *testing.T) {
	n := NodeRecord{Bounds: [4]int{100, 200, 300, 260}}
	if got := n.BoundsString(); got != "100,200,300,260" {
		t.Errorf("BoundsString() = %q, want %q", got, "100,200,300,260")
	}
}

func TestCenter(t *testing.T) {
	n := NodeRecord{Bounds: [4]int{100, 200, 300, 260}}
	x, y := n.Center()
	if x != 200 || y != 230 {
		t.Errorf("Center() = (%d, %d), want (200, 230)", x, y)
	}
}
