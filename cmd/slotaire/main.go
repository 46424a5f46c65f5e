package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"slotaire/audio"
	"slotaire/constants"
	"slotaire/engine"
	"slotaire/events"
	"slotaire/game"
	"slotaire/input"
	"slotaire/render"
)

var colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace so it
	// stays readable after a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSLOTAIRE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	// Audio is best-effort: a failed speaker init leaves the engine silent
	// and the header shows "sound off". The screen owns the terminal now,
	// so there is nowhere sensible to print the error anyway.
	sound, _ := audio.NewEngine()
	defer sound.Close()

	clock := engine.NewMonotonicTimeProvider()
	sched := engine.NewTimedScheduler(clock, rand.New(rand.NewSource(time.Now().UnixNano())))
	machine := game.NewMachine(rand.New(rand.NewSource(time.Now().UnixNano()+1)), sched)
	queue := events.NewQueue()
	renderer := render.NewRenderer(screen, useRGB(*colorModeFlag))

	// Input polling stays on its own goroutine; all game mutation happens
	// on the frame loop below
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if gameEvent, ok := input.Translate(ev); ok {
					queue.Push(gameEvent)
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return // Screen finalized
			}
		}
	}()

	machine.NewGame()
	prev := machine.Snapshot()

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	for range frameTicker.C {
		applied := 0
		for _, ev := range queue.Consume() {
			switch ev.Type {
			case events.EventQuit:
				return
			case events.EventSoundToggle:
				sound.Toggle()
			default:
				machine.Apply(ev)
				applied++
			}
		}

		machine.Tick(clock.Now())
		snap := machine.Snapshot()
		playCues(sound, prev, snap, applied)
		renderer.Draw(snap, sound.Enabled())
		prev = snap
	}
}

// playCues derives sound effects from snapshot deltas so the game core
// stays free of audio concerns. Inputs that changed nothing observable
// were guarded no-ops and thud instead.
func playCues(sound *audio.Engine, prev, snap game.Snapshot, applied int) {
	switch {
	case snap.BombOverlay && !prev.BombOverlay:
		sound.PlayBomb()
	case snap.Score > prev.Score:
		sound.PlayScore()
	case snap.Pending != nil && prev.Pending == nil:
		sound.PlayDraw()
	case snap.Spinning && !prev.Spinning:
		sound.PlayDeal()
	case applied > 0 && unchanged(prev, snap):
		sound.PlayReject()
	}
}

func unchanged(prev, snap game.Snapshot) bool {
	return prev.Phase == snap.Phase &&
		prev.Score == snap.Score &&
		prev.DrawsUsed == snap.DrawsUsed &&
		len(prev.Selection) == len(snap.Selection) &&
		(prev.Pending == nil) == (snap.Pending == nil) &&
		len(prev.Log) == len(snap.Log)
}

// useRGB resolves the color flag, probing the environment in auto mode.
func useRGB(mode string) bool {
	switch mode {
	case "truecolor", "true", "24bit":
		return true
	case "256":
		return false
	}
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	return strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")
}
