package adb

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

var (
	sizeRe    = regexp.MustCompile(`(?m)^(?:Override|Physical) size: (\d+)x(\d+)`)
	densityRe = regexp.MustCompile(`(?m)^(?:Override|Physical) density: (\d+)`)

	// "topResumedActivity=ActivityRecord{... u0 com.pkg/.MainActivity t42}"
	resumedRe = regexp.MustCompile(`(?:topResumedActivity|mResumedActivity)[=:].*? u\d+ ([\w.]+)/(\S+?)[ }]`)
)

// MetricsSource reads display metrics through wm.
type MetricsSource struct {
	a *ADB
}

// NewMetricsSource returns an adb-backed display metrics source.
func NewMetricsSource(a *ADB) *MetricsSource { return &MetricsSource{a: a} }

func (m *MetricsSource) DisplayMetrics() (platform.Metrics, error) {
	sizeOut, err := m.a.shell("wm", "size")
	if err != nil {
		return platform.Metrics{}, err
	}
	densityOut, err := m.a.shell("wm", "density")
	if err != nil {
		return platform.Metrics{}, err
	}
	return parseMetrics(sizeOut, densityOut)
}

// parseMetrics prefers the Override values when the user has resized or
// rescaled the display; wm prints Physical first, so the last match wins.
func parseMetrics(sizeOut, densityOut string) (platform.Metrics, error) {
	sizes := sizeRe.FindAllStringSubmatch(sizeOut, -1)
	if len(sizes) == 0 {
		return platform.Metrics{}, fmt.Errorf("unrecognized wm size output: %q", sizeOut)
	}
	last := sizes[len(sizes)-1]
	w, _ := strconv.Atoi(last[1])
	h, _ := strconv.Atoi(last[2])

	metrics := platform.Metrics{Width: w, Height: h, Orientation: "portrait"}
	if w > h {
		metrics.Orientation = "landscape"
	}

	densities := densityRe.FindAllStringSubmatch(densityOut, -1)
	if len(densities) > 0 {
		dpi, _ := strconv.Atoi(densities[len(densities)-1][1])
		metrics.Density = float64(dpi) / 160
	}
	return metrics, nil
}

// ForegroundTracker reads the resumed activity through dumpsys.
type ForegroundTracker struct {
	a *ADB
}

// NewForegroundTracker returns an adb-backed foreground tracker.
func NewForegroundTracker(a *ADB) *ForegroundTracker { return &ForegroundTracker{a: a} }

func (f *ForegroundTracker) ForegroundApp() (platform.Foreground, error) {
	out, err := f.a.shell("dumpsys", "activity", "activities")
	if err != nil {
		return platform.Foreground{}, err
	}
	fg, ok := parseForeground(out)
	if !ok {
		return platform.Foreground{}, fmt.Errorf("no resumed activity in dumpsys output")
	}
	return fg, nil
}

func parseForeground(out string) (platform.Foreground, bool) {
	m := resumedRe.FindStringSubmatch(out)
	if m == nil {
		return platform.Foreground{}, false
	}
	return platform.Foreground{Package: m[1], Activity: m[2]}, true
}
