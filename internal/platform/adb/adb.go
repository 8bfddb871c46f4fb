// Package adb implements the platform boundary on top of the adb binary:
// uiautomator dumps for the tree, dumpsys for window metadata and the
// foreground activity, wm for display metrics, and input/screencap for
// invocation and screenshots.
package adb

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ADB runs commands against one device through the adb binary.
type ADB struct {
	path   string
	serial string
	log    *zap.Logger
}

// New returns a runner for the given adb binary and device serial. An empty
// path means "adb" from PATH; an empty serial targets the default device.
func New(path, serial string, log *zap.Logger) *ADB {
	if path == "" {
		path = "adb"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ADB{path: path, serial: serial, log: log}
}

func (a *ADB) args(rest ...string) []string {
	if a.serial == "" {
		return rest
	}
	return append([]string{"-s", a.serial}, rest...)
}

// run executes an adb command and returns its combined text output.
func (a *ADB) run(rest ...string) (string, error) {
	out, err := a.runRaw(rest...)
	return string(out), err
}

// runRaw executes an adb command and returns its raw stdout bytes. exec-out
// callers need bytes untouched (screencap PNG data).
func (a *ADB) runRaw(rest ...string) ([]byte, error) {
	argv := a.args(rest...)
	a.log.Debug("adb", zap.Strings("args", argv))
	out, err := exec.Command(a.path, argv...).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("adb %s: %s", strings.Join(rest, " "), strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("adb %s: %w", strings.Join(rest, " "), err)
	}
	return out, nil
}

// shell runs a shell command on the device.
func (a *ADB) shell(parts ...string) (string, error) {
	return a.run(append([]string{"shell"}, parts...)...)
}

// Available reports whether the device is connected and in the "device" state.
func (a *ADB) Available() bool {
	out, err := a.run("get-state")
	return err == nil && strings.TrimSpace(out) == "device"
}
