package main

import (
	"github.com/cockroachdb/errors"
	"github.com/darkstar-engine/darkstar/renderer"
	"github.com/darkstar-engine/darkstar/utils"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
)

// Application owns the SDL window and the renderer drawing into it
type Application struct {
	log    *logrus.Entry
	config utils.Configuration

	window   *sdl.Window
	renderer *renderer.Renderer

	sdlInitialized bool
	libraryLoaded  bool
	running        bool
	rendering      bool
}

// NewApplication opens the window and initializes the renderer. When an
// error is returned alongside a non-nil Application, Close releases what
// was created.
func NewApplication(log *logrus.Entry, config utils.Configuration) (*Application, error) {
	app := &Application{
		log:    log,
		config: config,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl init")
	}
	app.sdlInitialized = true

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return app, errors.Wrap(err, "load vulkan library")
	}
	app.libraryLoaded = true

	window, err := sdl.CreateWindow(config.ApplicationName,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		config.Window.Width,
		config.Window.Height,
		windowFlags(config.Window))
	if err != nil {
		return app, errors.Wrap(err, "create window")
	}
	app.window = window

	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return app, errors.Wrap(err, "create vulkan driver")
	}

	app.renderer = renderer.New(log, config.Renderer, config.Time)
	if err := app.renderer.Initialize(config.ApplicationName, globalDriver, window); err != nil {
		return app, errors.Wrap(err, "initialize renderer")
	}

	return app, nil
}

func windowFlags(cfg utils.WindowConfiguration) uint32 {
	flags := uint32(sdl.WINDOW_VULKAN | sdl.WINDOW_SHOWN)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if cfg.Maximized {
		flags |= sdl.WINDOW_MAXIMIZED
	}
	return flags
}

// Run pumps events and draws frames until the window is closed
func (a *Application) Run() error {
	a.running = true
	a.rendering = true

	for a.running {
		a.processEvents()

		if !a.rendering {
			sdl.Delay(pausedDelay)
			continue
		}

		a.renderer.Update()
		if err := a.renderer.RenderFrame(); err != nil {
			return errors.Wrap(err, "render frame")
		}
	}

	a.log.Info("event loop exited")
	return nil
}

func (a *Application) processEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch handleEvent(event) {
		case actionQuit:
			a.running = false
		case actionResize:
			a.renderer.RequestSwapchainRecreation()
		case actionPause:
			a.log.Debug("window minimized, pausing")
			a.rendering = false
		case actionResume:
			a.log.Debug("window restored, resuming")
			a.rendering = true
			a.renderer.RequestSwapchainRecreation()
		}
	}
}

// Close tears down in reverse order of NewApplication
func (a *Application) Close() {
	if a.renderer != nil {
		a.renderer.Destroy()
		a.renderer = nil
	}

	if a.window != nil {
		if err := a.window.Destroy(); err != nil {
			a.log.WithError(err).Error("destroy window")
		}
		a.window = nil
	}

	if a.libraryLoaded {
		sdl.VulkanUnloadLibrary()
		a.libraryLoaded = false
	}

	if a.sdlInitialized {
		sdl.Quit()
		a.sdlInitialized = false
	}
}
