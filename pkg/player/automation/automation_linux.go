//go:build linux

package automation

import (
	"time"

	"github.com/voxify/voxify/pkg/player"
)

// Transport goes through playerctl (MPRIS), so the window never needs focus.
var transportCommands = map[player.TransportCommand][][]string{
	player.CmdPlay:       {{"playerctl", "--player=spotify", "play-pause"}},
	player.CmdPause:      {{"playerctl", "--player=spotify", "play-pause"}},
	player.CmdResume:     {{"playerctl", "--player=spotify", "play-pause"}},
	player.CmdNext:       {{"playerctl", "--player=spotify", "next"}},
	player.CmdPrevious:   {{"playerctl", "--player=spotify", "previous"}},
	player.CmdMute:       {{"playerctl", "--player=spotify", "volume", "0"}},
	player.CmdVolumeUp:   {{"playerctl", "--player=spotify", "volume", "0.1+"}},
	player.CmdVolumeDown: {{"playerctl", "--player=spotify", "volume", "0.1-"}},
}

func probeCommand() []string {
	return []string{"pgrep", "-x", "spotify"}
}

func startCommands() [][]string {
	return [][]string{
		{"spotify"},
		{"flatpak", "run", "com.spotify.Client"},
		{"xdg-open", "spotify:"},
	}
}

func activateCommand() []string {
	return []string{"xdotool", "search", "--name", "Spotify", "windowactivate"}
}

func openURICommand(uri string) []string {
	return []string{"xdg-open", uri}
}

func searchSequence(query string) []step {
	return []step{
		{args: []string{"xdotool", "key", "ctrl+k"}, pause: 100 * time.Millisecond},
		{args: []string{"xdotool", "type", "--delay", "20", "--", query}, pause: 150 * time.Millisecond},
		{args: []string{"xdotool", "key", "Return"}, pause: 850 * time.Millisecond},
		{args: []string{"xdotool", "key", "Return"}},
	}
}
