// Package hotkey registers the global push-to-talk key and exposes its press
// and release events.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// Listener is a registered global hotkey. Keydown marks the start of an
// utterance, Keyup its end.
type Listener struct {
	hk *hotkey.Hotkey
}

// Register parses key and modifiers (both case-insensitive, e.g. "f9",
// "ctrl"+"shift") and registers the combination system-wide.
func Register(key string, modifiers []string) (*Listener, error) {
	k, ok := keyMap[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("hotkey: unknown key %q", key)
	}

	mods := make([]hotkey.Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		mod, ok := modifierMap[strings.ToLower(m)]
		if !ok {
			return nil, fmt.Errorf("hotkey: unknown modifier %q", m)
		}
		mods = append(mods, mod)
	}

	hk := hotkey.New(mods, k)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("hotkey: register %s: %w", key, err)
	}
	return &Listener{hk: hk}, nil
}

// Keydown delivers an event each time the hotkey is pressed.
func (l *Listener) Keydown() <-chan hotkey.Event { return l.hk.Keydown() }

// Keyup delivers an event each time the hotkey is released.
func (l *Listener) Keyup() <-chan hotkey.Event { return l.hk.Keyup() }

// Unregister removes the system-wide registration.
func (l *Listener) Unregister() error { return l.hk.Unregister() }

// Events adapts the raw hotkey channels to plain signal channels with a
// one-slot buffer each. An event arriving while the previous one has not
// been consumed yet is dropped, which is the wanted behaviour for
// push-to-talk: key chatter during a dispatch must not queue up commands.
// The returned stop function ends the forwarding goroutine.
func (l *Listener) Events() (keydown, keyup <-chan struct{}, stop func()) {
	down := make(chan struct{}, 1)
	up := make(chan struct{}, 1)
	quit := make(chan struct{})

	go func() {
		for {
			select {
			case <-quit:
				return
			case <-l.hk.Keydown():
				select {
				case down <- struct{}{}:
				default:
				}
			case <-l.hk.Keyup():
				select {
				case up <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	return down, up, func() { once.Do(func() { close(quit) }) }
}

// Run executes fn on the process main thread. macOS requires hotkey
// registration and the event loop to happen there; it is harmless elsewhere.
// Must be called from main before anything else uses the calling goroutine.
func Run(fn func()) {
	mainthread.Init(fn)
}

// modifierMap lives in the platform files; key names are portable.
var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"a":      hotkey.KeyA,
	"b":      hotkey.KeyB,
	"c":      hotkey.KeyC,
	"d":      hotkey.KeyD,
	"e":      hotkey.KeyE,
	"f":      hotkey.KeyF,
	"g":      hotkey.KeyG,
	"h":      hotkey.KeyH,
	"i":      hotkey.KeyI,
	"j":      hotkey.KeyJ,
	"k":      hotkey.KeyK,
	"l":      hotkey.KeyL,
	"m":      hotkey.KeyM,
	"n":      hotkey.KeyN,
	"o":      hotkey.KeyO,
	"p":      hotkey.KeyP,
	"q":      hotkey.KeyQ,
	"r":      hotkey.KeyR,
	"s":      hotkey.KeyS,
	"t":      hotkey.KeyT,
	"u":      hotkey.KeyU,
	"v":      hotkey.KeyV,
	"w":      hotkey.KeyW,
	"x":      hotkey.KeyX,
	"y":      hotkey.KeyY,
	"z":      hotkey.KeyZ,
	"f1":     hotkey.KeyF1,
	"f2":     hotkey.KeyF2,
	"f3":     hotkey.KeyF3,
	"f4":     hotkey.KeyF4,
	"f5":     hotkey.KeyF5,
	"f6":     hotkey.KeyF6,
	"f7":     hotkey.KeyF7,
	"f8":     hotkey.KeyF8,
	"f9":     hotkey.KeyF9,
	"f10":    hotkey.KeyF10,
	"f11":    hotkey.KeyF11,
	"f12":    hotkey.KeyF12,
}
