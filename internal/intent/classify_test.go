package intent

import (
	"strings"
	"testing"
)

func TestClassify_TransportWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"play", "play"},
		{"pause", "pause"},
		{"resume", "resume"},
		{"next", "next"},
		{"previous", "previous"},
		{"prev", "previous"},
		{"mute", "mute"},
		{"Play.", "play"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.in, nil)
			if got.Kind != KindTransport || got.Arg != tt.want {
				t.Errorf("Classify(%q) = %+v, want transport %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_VolumeSynonyms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"volume up", "volup"},
		{"turn it up", "volup"},
		{"louder", "volup"},
		{"vol up", "volup"},
		{"volume down", "voldown"},
		{"turn it down", "voldown"},
		{"quieter", "voldown"},
		{"vol down", "voldown"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.in, nil)
			if got.Kind != KindTransport || got.Arg != tt.want {
				t.Errorf("Classify(%q) = %+v, want transport %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_PlaylistPattern(t *testing.T) {
	t.Parallel()

	playlists := []Playlist{{Name: "Chill Vibes", URI: "target:123"}}

	tests := []struct {
		name string
		in   string
	}{
		{"exact", "play the chill vibes playlist"},
		{"misspelled", "play the chil vibs playlist"},
		{"possessive", "play my chill vibes playlist"},
		{"bare", "play chill vibes playlist"},
		{"punctuated transcript", "Play the Chill Vibes playlist!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.in, playlists)
			if got.Kind != KindPlaylist || got.Arg != "target:123" {
				t.Errorf("Classify(%q) = %+v, want playlist target:123", tt.in, got)
			}
		})
	}
}

func TestClassify_UnknownPlaylistNamesTheName(t *testing.T) {
	t.Parallel()

	playlists := []Playlist{{Name: "Chill Vibes", URI: "target:123"}}
	got := Classify("play the xyzzy playlist", playlists)

	if got.Kind != KindSay {
		t.Fatalf("Classify = %+v, want say", got)
	}
	if !strings.Contains(got.Arg, "xyzzy") {
		t.Errorf("notice %q should mention the unrecognized playlist name", got.Arg)
	}
}

func TestClassify_TrailingPlaylistNeverFallsThroughToSong(t *testing.T) {
	t.Parallel()

	// No playlists configured: the trailing-"playlist" branch must still win
	// and produce a notice, not a song query containing the word "playlist".
	got := Classify("play the road trip playlist", nil)
	if got.Kind != KindSay {
		t.Fatalf("Classify = %+v, want say", got)
	}
	if got.Kind == KindSong {
		t.Error("transcript ending in 'playlist' must not reach the song branch")
	}
}

func TestClassify_SongFallback(t *testing.T) {
	t.Parallel()

	got := Classify("play bohemian rhapsody", nil)
	if got.Kind != KindSong || got.Arg != "bohemian rhapsody" {
		t.Errorf("Classify = %+v, want song %q", got, "bohemian rhapsody")
	}

	// "play my ..." strips the possessive from the query.
	got = Classify("play my bohemian rhapsody", nil)
	if got.Kind != KindSong || got.Arg != "bohemian rhapsody" {
		t.Errorf("Classify = %+v, want song %q", got, "bohemian rhapsody")
	}
}

func TestClassify_LoosePlayMatchesKnownPlaylist(t *testing.T) {
	t.Parallel()

	playlists := []Playlist{{Name: "Chill Vibes", URI: "target:123"}}
	got := Classify("play chill vibes", playlists)
	if got.Kind != KindPlaylist || got.Arg != "target:123" {
		t.Errorf("Classify = %+v, want playlist target:123", got)
	}
}

func TestClassify_NearMissPlaylistNameIsASongQuery(t *testing.T) {
	t.Parallel()

	// "rock" vs the label "Rack" scores 75, short of the 78 cutoff, so the
	// utterance must be treated as a free-text song search, not a playlist.
	playlists := []Playlist{{Name: "Rack", URI: "spotify:playlist:rack"}}
	got := Classify("play my rock", playlists)
	if got.Kind != KindSong || got.Arg != "rock" {
		t.Errorf("Classify = %+v, want song %q", got, "rock")
	}
}

func TestClassify_Open(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"open spotify", "launch spotify", "open spoti", "open the spotify"} {
		got := Classify(in, nil)
		if got.Kind != KindOpen || got.Arg != "" {
			t.Errorf("Classify(%q) = %+v, want open", in, got)
		}
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"asdkjasd", "", "   ", "?!"} {
		got := Classify(in, nil)
		if got.Kind != KindSay || got.Arg != "Unrecognized command." {
			t.Errorf("Classify(%q) = %+v, want say %q", in, got, "Unrecognized command.")
		}
	}
}

func TestClassify_PrevOnlyLiteralIsCanonicalized(t *testing.T) {
	t.Parallel()

	// "prev" embedded in a longer phrase is not a transport word.
	got := Classify("play prev", nil)
	if got.Kind != KindSong || got.Arg != "prev" {
		t.Errorf("Classify(%q) = %+v, want song %q", "play prev", got, "prev")
	}
}
