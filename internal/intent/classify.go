package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// unrecognizedNotice is the Say message for transcripts that match nothing.
const unrecognizedNotice = "Unrecognized command."

// Pattern order is load-bearing: the trailing-"playlist" form must be tried
// before the looser form, otherwise "play the road trip playlist" would fall
// through to the song branch with "playlist" glued onto the name.
var (
	playlistPattern = regexp.MustCompile(`^play( my| the)? (.+) playlist$`)
	playPattern     = regexp.MustCompile(`^play( my| the)? (.+)$`)
)

// transportWords maps literal transport utterances to their canonical command
// argument. "prev" is accepted as a synonym here and nowhere else.
var transportWords = map[string]string{
	"play":     "play",
	"pause":    "pause",
	"resume":   "resume",
	"next":     "next",
	"previous": "previous",
	"prev":     "previous",
	"mute":     "mute",
}

var volumeUpWords = map[string]struct{}{
	"volume up":  {},
	"turn it up": {},
	"louder":     {},
	"vol up":     {},
}

var volumeDownWords = map[string]struct{}{
	"volume down":  {},
	"turn it down": {},
	"quieter":      {},
	"vol down":     {},
}

var openWords = map[string]struct{}{
	"open spotify":     {},
	"launch spotify":   {},
	"open spoti":       {},
	"open the spotify": {},
}

// Classify maps a raw transcript to exactly one Intent using the playlist
// vocabulary. It never fails: anything unrecognizable becomes a Say intent.
//
// The decision procedure evaluates branches in a fixed priority order —
// literal transport words, volume synonyms, the "play … playlist" form, the
// looser "play …" form, then the open-player literals. First match wins.
// An empty transcript matches none of the branches and falls through to the
// unrecognized notice.
func Classify(transcript string, playlists []Playlist) Intent {
	t := Normalize(transcript)

	if cmd, ok := transportWords[t]; ok {
		return Transport(cmd)
	}
	if _, ok := volumeUpWords[t]; ok {
		return Transport("volup")
	}
	if _, ok := volumeDownWords[t]; ok {
		return Transport("voldown")
	}

	if m := playlistPattern.FindStringSubmatch(t); m != nil {
		name := strings.TrimSpace(m[2])
		if uri, ok := lookupPlaylist(name, playlists); ok {
			return Intent{Kind: KindPlaylist, Arg: uri}
		}
		return Say(fmt.Sprintf("I don't know the %q playlist. Add it to the configuration.", name))
	}

	if m := playPattern.FindStringSubmatch(t); m != nil {
		name := strings.TrimSpace(m[2])
		if uri, ok := lookupPlaylist(name, playlists); ok {
			return Intent{Kind: KindPlaylist, Arg: uri}
		}
		// Unknown to the playlist map: treat it as a free-text song query.
		return Intent{Kind: KindSong, Arg: name}
	}

	if _, ok := openWords[t]; ok {
		return Intent{Kind: KindOpen}
	}

	return Say(unrecognizedNotice)
}

// lookupPlaylist fuzzy-matches name against the playlist labels and resolves
// the matched label to its playback target. Iteration order follows the
// slice, keeping the tie-break deterministic.
func lookupPlaylist(name string, playlists []Playlist) (string, bool) {
	labels := make([]string, len(playlists))
	for i, p := range playlists {
		labels[i] = p.Name
	}
	hit, ok := BestMatch(name, labels, DefaultCutoff)
	if !ok {
		return "", false
	}
	for _, p := range playlists {
		if p.Name == hit.Label {
			return p.URI, true
		}
	}
	return "", false
}
