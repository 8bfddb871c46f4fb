package adb

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
)

// Source implements platform.TreeSource over adb. uiautomator can only dump
// the interactive content of the screen, so windows scraped from dumpsys
// carry a root handle only when the dump's owning package matches; the
// others surface as metadata-only windows that the parser omits.
type Source struct {
	a   *ADB
	log *zap.Logger
}

// NewSource returns an adb-backed tree source.
func NewSource(a *ADB, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{a: a, log: log}
}

func (s *Source) Connected() bool { return s.a.Available() }

// dump fetches and parses the current uiautomator hierarchy.
func (s *Source) dump() (*uiNode, error) {
	data, err := s.a.runRaw("exec-out", "uiautomator", "dump", "/dev/tty")
	if err != nil {
		return nil, err
	}
	root, _, err := parseHierarchy(data)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (s *Source) EnumerateWindows() ([]platform.WindowInfo, error) {
	out, err := s.a.shell("dumpsys", "window", "windows")
	if err != nil {
		return nil, err
	}
	metas := parseWindows(out)
	if len(metas) == 0 {
		// Transient: mid-transition dumpsys can come back without windows.
		// Callers fall back to the active root.
		return nil, nil
	}

	root, err := s.dump()
	if err != nil {
		s.log.Warn("hierarchy dump failed; windows will carry no content", zap.Error(err))
		root = nil
	}

	infos := make([]platform.WindowInfo, 0, len(metas))
	attached := false
	for _, m := range metas {
		info := platform.WindowInfo{
			WindowID: m.ID,
			Kind:     m.Kind,
			Layer:    m.Layer,
			Focused:  m.Focused,
			Title:    m.Title,
			Package:  m.Package,
		}
		if root != nil && !attached && m.Focused && m.Package == root.pkg {
			info.Root = &nodeHandle{a: s.a, n: root}
			attached = true
		}
		infos = append(infos, info)
	}
	// No focused window claimed the dump; attach it to the first window of
	// the dump's package so the content is not lost.
	if root != nil && !attached {
		for i := range infos {
			if infos[i].Package == root.pkg {
				infos[i].Root = &nodeHandle{a: s.a, n: root}
				break
			}
		}
	}
	return infos, nil
}

func (s *Source) ActiveRoot() (platform.NodeHandle, error) {
	root, err := s.dump()
	if err != nil {
		return nil, fmt.Errorf("active root: %w", err)
	}
	return &nodeHandle{a: s.a, n: root}, nil
}
