package adb

import "testing"

func TestParseMetrics(t *testing.T) {
	tests := []struct {
		name        string
		sizeOut     string
		densityOut  string
		w, h        int
		density     float64
		orientation string
	}{
		{
			name:        "physical only",
			sizeOut:     "Physical size: 1080x2400\n",
			densityOut:  "Physical density: 440\n",
			w:           1080,
			h:           2400,
			density:     2.75,
			orientation: "portrait",
		},
		{
			name:        "override wins",
			sizeOut:     "Physical size: 1080x2400\nOverride size: 720x1600\n",
			densityOut:  "Physical density: 440\nOverride density: 320\n",
			w:           720,
			h:           1600,
			density:     2,
			orientation: "portrait",
		},
		{
			name:        "landscape",
			sizeOut:     "Physical size: 2400x1080\n",
			densityOut:  "Physical density: 160\n",
			w:           2400,
			h:           1080,
			density:     1,
			orientation: "landscape",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseMetrics(tt.sizeOut, tt.densityOut)
			if err != nil {
				t.Fatal(err)
			}
			if m.Width != tt.w || m.Height != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", m.Width, m.Height, tt.w, tt.h)
			}
			if m.Density != tt.density {
				t.Errorf("density = %g, want %g", m.Density, tt.density)
			}
			if m.Orientation != tt.orientation {
				t.Errorf("orientation = %q, want %q", m.Orientation, tt.orientation)
			}
		})
	}
}

func TestParseMetricsUnrecognized(t *testing.T) {
	if _, err := parseMetrics("garbage\n", ""); err == nil {
		t.Error("unrecognized wm size output did not error")
	}
}

func TestParseForeground(t *testing.T) {
	const out = `ACTIVITY MANAGER ACTIVITIES (dumpsys activity activities)
  Display #0 (activities from top to bottom):
    * Task{4e1a2b #12 type=standard A=10123:com.android.settings}
      topResumedActivity=ActivityRecord{2f8e9a1 u0 com.android.settings/.Settings t12}
`
	fg, ok := parseForeground(out)
	if !ok {
		t.Fatal("no foreground parsed")
	}
	if fg.Package != "com.android.settings" || fg.Activity != ".Settings" {
		t.Errorf("foreground = %+v", fg)
	}
}

func TestParseForegroundLegacyFormat(t *testing.T) {
	const out = "  mResumedActivity: ActivityRecord{8a7b6c u0 com.example.app/com.example.app.MainActivity t5}\n"
	fg, ok := parseForeground(out)
	if !ok {
		t.Fatal("no foreground parsed from mResumedActivity line")
	}
	if fg.Package != "com.example.app" || fg.Activity != "com.example.app.MainActivity" {
		t.Errorf("foreground = %+v", fg)
	}
}

func TestParseForegroundMissing(t *testing.T) {
	if _, ok := parseForeground("nothing resumed here\n"); ok {
		t.Error("parsed a foreground from output without one")
	}
}
