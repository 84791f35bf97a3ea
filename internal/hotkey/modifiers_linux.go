//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 exposes Alt and Super as Mod1 and Mod4.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}
