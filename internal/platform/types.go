package platform

import (
	"fmt"
	"strings"
)

// Action is an interactive capability invoked on a resolved node.
type Action string

const (
	ActionClick     Action = "click"
	ActionLongClick Action = "long-click"
	ActionSetText   Action = "set-text"
	ActionScroll    Action = "scroll"
)

// ScrollDirection is the direction of a directional scroll.
type ScrollDirection string

const (
	ScrollUp    ScrollDirection = "up"
	ScrollDown  ScrollDirection = "down"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// ParseScrollDirection converts a string flag value to a ScrollDirection.
func ParseScrollDirection(s string) (ScrollDirection, error) {
	switch strings.ToLower(s) {
	case "up":
		return ScrollUp, nil
	case "down":
		return ScrollDown, nil
	case "left":
		return ScrollLeft, nil
	case "right":
		return ScrollRight, nil
	default:
		return ScrollDown, fmt.Errorf("unknown scroll direction: %q (expected up, down, left, or right)", s)
	}
}

// PerformArgs carries action parameters. Text is used by set-text, Direction
// by scroll; the other actions take no arguments.
type PerformArgs struct {
	Text      string
	Direction ScrollDirection
}
