package constants

import "time"

// Audio Constants
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferFraction sizes the speaker buffer as a fraction of a second
	AudioBufferFraction = 10

	// ToneDealFreq is the card deal tick frequency
	ToneDealFreq = 660.0

	// ToneDrawFreq is the draw confirmation frequency
	ToneDrawFreq = 520.0

	// ToneScoreFreq is the base frequency of the scoring arpeggio
	ToneScoreFreq = 880.0

	// ToneBombFreq is the bomb alarm frequency
	ToneBombFreq = 110.0

	// ToneRejectFreq is the guarded-action thud frequency
	ToneRejectFreq = 180.0

	// ToneShortDuration is the length of percussive cues
	ToneShortDuration = 45 * time.Millisecond

	// ToneLongDuration is the length of alarm and chime cues
	ToneLongDuration = 220 * time.Millisecond
)
