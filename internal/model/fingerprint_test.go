package model

import "testing"

func twoWindowSnapshot() *Snapshot {
	return &Snapshot{
		Windows: []WindowRecord{
			{
				WindowID: 10, Kind: KindPrimary, Focused: true,
				Root: NodeRecord{
					ID: "a", Class: "FrameLayout",
					Children: []NodeRecord{
						{ID: "b", Class: "Button", Text: "OK", Clickable: true, Enabled: true, OnScreen: true},
					},
				},
			},
			{
				WindowID: 20, Kind: KindInputMethod,
				Root: NodeRecord{ID: "c", Class: "FrameLayout"},
			},
		},
	}
}

func TestFingerprintEqualForIdenticalSnapshots(t *testing.T) {
	if Fingerprint(twoWindowSnapshot()) != Fingerprint(twoWindowSnapshot()) {
		t.Error("identical two-window snapshots produced different digests")
	}
}

func TestFingerprintChanges(t *testing.T) {
	base := Fingerprint(twoWindowSnapshot())
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"window removed", func(s *Snapshot) { s.Windows = s.Windows[:1] }},
		{"window added", func(s *Snapshot) {
			s.Windows = append(s.Windows, WindowRecord{WindowID: 30, Kind: KindSystem, Root: NodeRecord{ID: "d"}})
		}},
		{"text changed", func(s *Snapshot) { s.Windows[0].Root.Children[0].Text = "Cancel" }},
		{"bounds changed", func(s *Snapshot) { s.Windows[0].Root.Children[0].Bounds = [4]int{1, 2, 3, 4} }},
		{"flag changed", func(s *Snapshot) { s.Windows[0].Root.Children[0].Clickable = false }},
		{"child added", func(s *Snapshot) {
			s.Windows[0].Root.Children = append(s.Windows[0].Root.Children, NodeRecord{ID: "e", Class: "TextView"})
		}},
		{"windows reordered", func(s *Snapshot) { s.Windows[0], s.Windows[1] = s.Windows[1], s.Windows[0] }},
		{"degraded flag", func(s *Snapshot) { s.Degraded = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := twoWindowSnapshot()
			tt.mutate(s)
			if Fingerprint(s) == base {
				t.Error("digest did not change")
			}
		})
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	// Content containing the fold separators must not shift a value into a
	// neighboring field: text "a|b" and text "a" + desc "b" are different
	// snapshots and need different digests.
	withText := func(text, desc string) *Snapshot {
		return &Snapshot{Windows: []WindowRecord{{
			WindowID: 1, Kind: KindPrimary,
			Root: NodeRecord{ID: "a", Class: "TextView", Text: text, ContentDesc: desc},
		}}}
	}
	if Fingerprint(withText("a|b", "")) == Fingerprint(withText("a", "b")) {
		t.Error("separator in text collided with the neighboring field")
	}
	if Fingerprint(withText("a\nb", "")) == Fingerprint(withText("a", "")) {
		t.Error("newline in text collided with the node framing")
	}
}
