package adb

import "github.com/danielealbano/android-remote-control-mcp/internal/platform"

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		a := New(opts.ADBPath, opts.Serial, opts.Logger)
		log := opts.Logger
		return &platform.Provider{
			Tree:          NewSource(a, log),
			Metrics:       NewMetricsSource(a),
			Foreground:    NewForegroundTracker(a),
			Screenshotter: NewScreenshotter(a),
		}, nil
	}
}
