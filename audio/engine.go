// Package audio plays short procedural cues for game actions through the
// system speaker. Everything is synthesized; there are no sample assets.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"slotaire/constants"
)

// Engine wraps speaker initialization and the cue set. A failed Init
// leaves the engine permanently silent; every Play call is then a no-op,
// so the game runs fine on machines without audio.
type Engine struct {
	ready   bool
	enabled bool
	rate    beep.SampleRate
}

// NewEngine initializes the speaker. The returned error is informational:
// the engine itself is always usable.
func NewEngine() (*Engine, error) {
	e := &Engine{rate: beep.SampleRate(constants.AudioSampleRate)}
	err := speaker.Init(e.rate, e.rate.N(time.Second/constants.AudioBufferFraction))
	if err == nil {
		e.ready = true
		e.enabled = true
	}
	return e, err
}

// Close releases the speaker.
func (e *Engine) Close() {
	if e.ready {
		speaker.Close()
	}
}

// Toggle flips sound on or off and reports the new state.
func (e *Engine) Toggle() bool {
	e.enabled = !e.enabled
	return e.enabled && e.ready
}

// Enabled reports whether cues will actually play.
func (e *Engine) Enabled() bool {
	return e.ready && e.enabled
}

func (e *Engine) tone(freq float64, d time.Duration) {
	if !e.Enabled() {
		return
	}
	sine, err := generators.SineTone(e.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(e.rate.N(d), sine))
}

// PlayDeal ticks once per committed deal.
func (e *Engine) PlayDeal() {
	e.tone(constants.ToneDealFreq, constants.ToneShortDuration)
}

// PlayDraw confirms a successful draw.
func (e *Engine) PlayDraw() {
	e.tone(constants.ToneDrawFreq, constants.ToneShortDuration)
}

// PlayScore plays a rising arpeggio for a cashed-in line.
func (e *Engine) PlayScore() {
	if !e.Enabled() {
		return
	}
	base := constants.ToneScoreFreq
	for i, ratio := range [...]float64{1, 1.25, 1.5} {
		sine, err := generators.SineTone(e.rate, base*ratio)
		if err != nil {
			return
		}
		note := beep.Take(e.rate.N(constants.ToneShortDuration), sine)
		if i == 0 {
			speaker.Play(note)
		} else {
			speaker.Play(beep.Seq(beep.Silence(e.rate.N(time.Duration(i)*constants.ToneShortDuration)), note))
		}
	}
}

// PlayBomb sounds the wipe alarm.
func (e *Engine) PlayBomb() {
	e.tone(constants.ToneBombFreq, constants.ToneLongDuration)
}

// PlayReject thuds for a guarded-off action.
func (e *Engine) PlayReject() {
	e.tone(constants.ToneRejectFreq, constants.ToneShortDuration)
}
