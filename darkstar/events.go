package main

import "github.com/veandco/go-sdl2/sdl"

// Milliseconds to sleep per loop iteration while minimized
const pausedDelay = 10

type eventAction int

const (
	actionNone eventAction = iota
	actionQuit
	actionResize
	actionPause
	actionResume
)

// handleEvent maps an SDL event to what the main loop should do with it
func handleEvent(event sdl.Event) eventAction {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return actionQuit
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			return actionQuit
		}
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return actionResize
		case sdl.WINDOWEVENT_MINIMIZED:
			return actionPause
		case sdl.WINDOWEVENT_RESTORED:
			return actionResume
		}
	}

	return actionNone
}
