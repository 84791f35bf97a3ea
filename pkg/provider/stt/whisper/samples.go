package whisper

import "math"

const (
	// rmsThreshold is the per-window RMS below which audio counts as silence.
	// Push-to-talk utterances are close-mic, so speech sits well above this.
	rmsThreshold = 0.01

	// trimWindowMs is the analysis window size for silence trimming.
	trimWindowMs = 20

	// trimPadMs is how much audio is kept on each side of detected speech so
	// that plosive onsets and trailing fricatives are not clipped.
	trimPadMs = 100
)

// Resample16k converts samples at sampleRate to the 16 kHz whisper.cpp
// expects. 48 kHz input is decimated by taking every third sample — adequate
// for speech and what the command vocabulary was tuned against. Input already
// at 16 kHz (or any unrecognised rate) is returned unchanged.
func Resample16k(samples []float32, sampleRate int) []float32 {
	if sampleRate != 3*modelSampleRate {
		return samples
	}
	out := make([]float32, 0, len(samples)/3+1)
	for i := 0; i < len(samples); i += 3 {
		out = append(out, samples[i])
	}
	return out
}

// TrimSilence cuts leading and trailing silence from samples using windowed
// RMS energy, keeping trimPadMs of margin around the speech region. It
// returns nil when no window reaches the speech threshold.
func TrimSilence(samples []float32, sampleRate int) []float32 {
	window := sampleRate * trimWindowMs / 1000
	if window <= 0 || len(samples) < window {
		return samples
	}

	firstSpeech, lastSpeech := -1, -1
	for start := 0; start+window <= len(samples); start += window {
		if rms(samples[start:start+window]) >= rmsThreshold {
			if firstSpeech < 0 {
				firstSpeech = start
			}
			lastSpeech = start + window
		}
	}
	if firstSpeech < 0 {
		return nil
	}

	pad := sampleRate * trimPadMs / 1000
	lo := max(0, firstSpeech-pad)
	hi := min(len(samples), lastSpeech+pad)
	return samples[lo:hi]
}

// rms computes the root-mean-square energy of a sample window.
func rms(window []float32) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range window {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(window)))
}
