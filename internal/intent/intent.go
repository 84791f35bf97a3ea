// Package intent turns noisy speech transcripts into a small closed set of
// player commands. The pipeline is Normalize → pattern matching → fuzzy
// playlist lookup, and every transcript resolves to exactly one Intent — a
// transcript that matches nothing yields a Say intent carrying the
// "Unrecognized command." notice rather than an error.
//
// Classification is a pure function of its inputs: the playlist vocabulary is
// passed in explicitly per call and is never consulted through package state.
package intent

// Kind identifies one of the closed set of command categories. Dispatch code
// must handle every Kind exhaustively; there is no catch-all variant.
type Kind string

const (
	// KindTransport is a playback transport command. The intent argument is
	// one of: play, pause, resume, next, previous, mute, volup, voldown.
	KindTransport Kind = "transport"

	// KindPlaylist starts playback of a known playlist. The intent argument
	// is the opaque playback target (a spotify: URI) from the configured
	// playlist map.
	KindPlaylist Kind = "playlist"

	// KindSong is a free-text song/artist search query.
	KindSong Kind = "song"

	// KindOpen launches or raises the player application. No argument.
	KindOpen Kind = "open"

	// KindSay surfaces a message to the user. The intent argument is the
	// message text. No backend call is made.
	KindSay Kind = "say"
)

// Intent is the single unit passed from classification to dispatch. It has no
// identity beyond the one utterance it represents.
type Intent struct {
	Kind Kind

	// Arg is the command argument; its meaning depends on Kind. Empty for
	// KindOpen.
	Arg string
}

// Playlist pairs a human-readable playlist label with its opaque playback
// target. Classification matches spoken names against Name and returns URI.
type Playlist struct {
	Name string
	URI  string
}

// Transport returns a transport intent for cmd.
func Transport(cmd string) Intent { return Intent{Kind: KindTransport, Arg: cmd} }

// Say returns a user-notice intent carrying msg.
func Say(msg string) Intent { return Intent{Kind: KindSay, Arg: msg} }
