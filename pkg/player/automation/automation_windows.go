//go:build windows

package automation

import (
	"time"

	"github.com/voxify/voxify/pkg/player"
)

// sendKeys builds a powershell command that activates the Spotify window and
// sends keys to it via WScript.Shell. Spotify's own shortcuts are used for
// transport because SendKeys cannot emit hardware media keys.
func sendKeys(keys string) []string {
	script := `$ws = New-Object -ComObject WScript.Shell; [void]$ws.AppActivate('Spotify'); Start-Sleep -Milliseconds 150; $ws.SendKeys('` + keys + `')`
	return []string{"powershell", "-NoProfile", "-Command", script}
}

var transportCommands = map[player.TransportCommand][][]string{
	player.CmdPlay:       {sendKeys(" ")},
	player.CmdPause:      {sendKeys(" ")},
	player.CmdResume:     {sendKeys(" ")},
	player.CmdNext:       {sendKeys("^{RIGHT}")},
	player.CmdPrevious:   {sendKeys("^{LEFT}")},
	player.CmdMute:       {sendKeys("^+{DOWN}")},
	player.CmdVolumeUp:   {sendKeys("^{UP}")},
	player.CmdVolumeDown: {sendKeys("^{DOWN}")},
}

func probeCommand() []string {
	return []string{"powershell", "-NoProfile", "-Command",
		`if (-not (Get-Process Spotify -ErrorAction SilentlyContinue)) { exit 1 }`}
}

func startCommands() [][]string {
	return [][]string{
		{"cmd", "/c", "start", "", "spotify:"},
	}
}

func activateCommand() []string {
	return []string{"powershell", "-NoProfile", "-Command",
		`$ws = New-Object -ComObject WScript.Shell; if (-not $ws.AppActivate('Spotify')) { exit 1 }`}
}

func openURICommand(uri string) []string {
	return []string{"cmd", "/c", "start", "", uri}
}

// escapeSendKeys quotes SendKeys metacharacters in free text.
func escapeSendKeys(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+', '^', '%', '~', '(', ')', '{', '}', '[', ']':
			out = append(out, '{', s[i], '}')
		case '\'':
			out = append(out, '\'', '\'')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

func searchSequence(query string) []step {
	return []step{
		{args: sendKeys("^k"), pause: 100 * time.Millisecond},
		{args: sendKeys(escapeSendKeys(query)), pause: 150 * time.Millisecond},
		{args: sendKeys("{ENTER}"), pause: 850 * time.Millisecond},
		{args: sendKeys("{ENTER}")},
	}
}
