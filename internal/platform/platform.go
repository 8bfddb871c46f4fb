// Package platform defines the boundary between the introspection core and
// the host device: the live tree source, display metrics, the foreground
// tracker, and screenshots. Backends register themselves via init().
package platform

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
)

// ErrServiceUnavailable indicates the host UI-introspection capability is not
// connected. It is fatal to the whole request; the core never retries.
var ErrServiceUnavailable = errors.New("ui introspection service unavailable")

// NodeInfo carries the attributes of one live node, read at visit time.
type NodeInfo struct {
	Class         string // Simplified class name, e.g. "Button"
	Text          string
	ContentDesc   string
	ResourceID    string
	Bounds        [4]int // [left, top, right, bottom] in screen pixels
	Clickable     bool
	LongClickable bool
	Focusable     bool
	Scrollable    bool
	Editable      bool
	Enabled       bool
	OnScreen      bool
}

// NodeHandle is a transiently-owned reference to one live UI node. Every
// handle obtained from the source (via EnumerateWindows, ActiveRoot, or
// Child) must be released exactly once on every exit path, unless ownership
// is explicitly transferred. All handle operations must run on the single
// execution context that owns the host's introspection capability.
type NodeHandle interface {
	// Info reads the node's attributes.
	Info() NodeInfo
	// ChildCount returns the number of children the live node reports now.
	ChildCount() int
	// Child acquires a handle on the i-th child. The caller owns it.
	Child(i int) (NodeHandle, error)
	// Perform invokes an interactive capability on the node.
	Perform(action Action, args PerformArgs) error
	// Release frees the handle. The handle must not be used afterwards.
	Release()
}

// WindowInfo describes one live window as reported by the host. Root may be
// nil when the window's content is not retrievable; callers treat that as a
// per-window omission, not a failure of the whole enumeration.
type WindowInfo struct {
	WindowID int // Stable OS-assigned id, distinct from positional index
	Kind     model.WindowKind
	Layer    int
	Focused  bool
	Title    string
	Package  string
	Root     NodeHandle
}

// TreeSource provides access to the live, externally-owned window tree. The
// live tree may be mutated by the host at any time between two calls; callers
// never assume it is unchanged since the last snapshot.
type TreeSource interface {
	// Connected reports whether the host capability is currently available.
	Connected() bool
	// EnumerateWindows lists the live windows with their root handles. An
	// empty (non-error) result is a transient platform condition, e.g. a
	// system-dialog transition, and triggers single-root degraded mode.
	EnumerateWindows() ([]WindowInfo, error)
	// ActiveRoot acquires the externally-designated active window root, used
	// as the degraded-mode fallback. The caller owns the handle.
	ActiveRoot() (NodeHandle, error)
}

// Metrics describes the device display, consumed by the compact formatter.
type Metrics struct {
	Width       int
	Height      int
	Density     float64
	Orientation string // "portrait" or "landscape"
}

// MetricsSource reports current display metrics.
type MetricsSource interface {
	DisplayMetrics() (Metrics, error)
}

// Foreground identifies the process and activity currently in the foreground.
type Foreground struct {
	Package  string
	Activity string
}

// ForegroundTracker reports the current foreground process, used only for
// best-effort activity attribution on the focused primary window.
type ForegroundTracker interface {
	ForegroundApp() (Foreground, error)
}

// Screenshotter captures the device screen.
type Screenshotter interface {
	// Capture returns encoded image bytes in the requested format ("png" or
	// "jpg"), downscaled by scale (0 < scale <= 1).
	Capture(format string, quality int, scale float64) ([]byte, error)
}

// Provider bundles the device backends.
type Provider struct {
	Tree          TreeSource
	Metrics       MetricsSource
	Foreground    ForegroundTracker
	Screenshotter Screenshotter
}

// Options configures backend construction.
type Options struct {
	ADBPath string // adb binary, "adb" when empty
	Serial  string // device serial, default device when empty
	Logger  *zap.Logger
}

// ErrUnsupported is returned when no backend registered for this build.
var ErrUnsupported = fmt.Errorf("no device backend available on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init(). See
// internal/platform/adb/init.go for the adb-based registration.
var NewProviderFunc func(Options) (*Provider, error)

// NewProvider returns a Provider for the current build.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return NewProviderFunc(opts)
}
