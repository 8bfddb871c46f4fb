package resolve

import "github.com/danielealbano/android-remote-control-mcp/internal/platform"

// releaser tracks live handles that must be released when a resolution or
// invocation exits, whatever the path. Handles whose ownership transfers to
// the caller are forgotten before release.
type releaser struct {
	handles []platform.NodeHandle
}

func (r *releaser) track(h platform.NodeHandle) {
	if h != nil {
		r.handles = append(r.handles, h)
	}
}

// forget drops h from the tracked set without releasing it.
func (r *releaser) forget(h platform.NodeHandle) {
	for i, tracked := range r.handles {
		if tracked == h {
			r.handles = append(r.handles[:i], r.handles[i+1:]...)
			return
		}
	}
}

// releaseAll releases every tracked handle. Safe to call more than once.
func (r *releaser) releaseAll() {
	for _, h := range r.handles {
		h.Release()
	}
	r.handles = nil
}
