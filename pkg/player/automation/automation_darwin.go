//go:build darwin

package automation

import (
	"time"

	"github.com/voxify/voxify/pkg/player"
)

// Transport goes through the player's AppleScript dictionary, so the window
// never needs focus.
var transportCommands = map[player.TransportCommand][][]string{
	player.CmdPlay:       {{"osascript", "-e", `tell application "Spotify" to playpause`}},
	player.CmdPause:      {{"osascript", "-e", `tell application "Spotify" to playpause`}},
	player.CmdResume:     {{"osascript", "-e", `tell application "Spotify" to playpause`}},
	player.CmdNext:       {{"osascript", "-e", `tell application "Spotify" to next track`}},
	player.CmdPrevious:   {{"osascript", "-e", `tell application "Spotify" to previous track`}},
	player.CmdMute:       {{"osascript", "-e", `tell application "Spotify" to set sound volume to 0`}},
	player.CmdVolumeUp:   {{"osascript", "-e", `tell application "Spotify" to set sound volume to sound volume + 10`}},
	player.CmdVolumeDown: {{"osascript", "-e", `tell application "Spotify" to set sound volume to sound volume - 10`}},
}

func probeCommand() []string {
	return []string{"pgrep", "-x", "Spotify"}
}

func startCommands() [][]string {
	return [][]string{
		{"open", "-a", "Spotify"},
		{"open", "spotify:"},
	}
}

func activateCommand() []string {
	return []string{"osascript", "-e", `tell application "Spotify" to activate`}
}

func openURICommand(uri string) []string {
	return []string{"osascript", "-e", `tell application "Spotify" to open location "` + uri + `"`}
}

func searchSequence(query string) []step {
	return []step{
		{args: []string{"osascript", "-e", `tell application "System Events" to keystroke "k" using command down`}, pause: 100 * time.Millisecond},
		{args: []string{"osascript", "-e", `tell application "System Events" to keystroke "` + escapeAppleScript(query) + `"`}, pause: 150 * time.Millisecond},
		{args: []string{"osascript", "-e", `tell application "System Events" to key code 36`}, pause: 850 * time.Millisecond},
		{args: []string{"osascript", "-e", `tell application "System Events" to key code 36`}},
	}
}

// escapeAppleScript escapes double quotes and backslashes inside an
// AppleScript string literal.
func escapeAppleScript(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
