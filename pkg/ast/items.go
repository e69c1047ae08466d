package ast

import (
	"fmt"
	"strings"

	"github.com/zurustar/ira/pkg/resource"
)

// BlockItem is a script: a trigger together with the stack it runs.
type BlockItem interface {
	// Body returns the stack run when the trigger fires.
	Body() BlockStack
	String() string
	itemNode()
}

// WhenGreenFlagClicked runs when the project starts.
type WhenGreenFlagClicked struct {
	Stack BlockStack
}

func (i *WhenGreenFlagClicked) itemNode()        {}
func (i *WhenGreenFlagClicked) Body() BlockStack { return i.Stack }
func (i *WhenGreenFlagClicked) String() string {
	return "EvWhenGreenFlagClicked " + i.Stack.String()
}

// WhenKeyPressed runs when Key is pressed.
type WhenKeyPressed struct {
	Key   Key
	Stack BlockStack
}

func (i *WhenKeyPressed) itemNode()        {}
func (i *WhenKeyPressed) Body() BlockStack { return i.Stack }
func (i *WhenKeyPressed) String() string {
	return fmt.Sprintf("EvWhenKeyPressed(%s) %s", i.Key, i.Stack)
}

// WhenBroadcastReceived runs when Broadcast is sent.
type WhenBroadcastReceived struct {
	Broadcast resource.Path
	Stack     BlockStack
}

func (i *WhenBroadcastReceived) itemNode()        {}
func (i *WhenBroadcastReceived) Body() BlockStack { return i.Stack }
func (i *WhenBroadcastReceived) String() string {
	return fmt.Sprintf("EvWhenReceiveBroadcast(%s) %s", i.Broadcast, i.Stack)
}

// WhenThisSpriteClicked runs when the sprite is clicked.
type WhenThisSpriteClicked struct {
	Stack BlockStack
}

func (i *WhenThisSpriteClicked) itemNode()        {}
func (i *WhenThisSpriteClicked) Body() BlockStack { return i.Stack }
func (i *WhenThisSpriteClicked) String() string {
	return "EvWhenThisSpriteClicked " + i.Stack.String()
}

// WhenStageClicked runs when the stage is clicked.
type WhenStageClicked struct {
	Stack BlockStack
}

func (i *WhenStageClicked) itemNode()        {}
func (i *WhenStageClicked) Body() BlockStack { return i.Stack }
func (i *WhenStageClicked) String() string {
	return "EvWhenStageClicked " + i.Stack.String()
}

// WhenCloneStarts runs in every new clone of the sprite.
type WhenCloneStarts struct {
	Stack BlockStack
}

func (i *WhenCloneStarts) itemNode()        {}
func (i *WhenCloneStarts) Body() BlockStack { return i.Stack }
func (i *WhenCloneStarts) String() string {
	return "CtrlWhenCloneStarts " + i.Stack.String()
}

// Key identifies a keyboard key in "when key pressed" triggers.
type Key string

// Keys that are not a single letter or digit.
const (
	KeySpace      Key = "space"
	KeyUpArrow    Key = "up arrow"
	KeyDownArrow  Key = "down arrow"
	KeyLeftArrow  Key = "left arrow"
	KeyRightArrow Key = "right arrow"
	KeyAny        Key = "any"
)

// ParseKey validates a KEY_OPTION field value. Letters are case-insensitive.
func ParseKey(s string) (Key, bool) {
	k := Key(strings.ToLower(s))
	switch k {
	case KeySpace, KeyUpArrow, KeyDownArrow, KeyLeftArrow, KeyRightArrow, KeyAny:
		return k, true
	}
	if len(k) == 1 {
		c := k[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return k, true
		}
	}
	return "", false
}
