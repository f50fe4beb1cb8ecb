package utils

import (
	"flag"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
)

// Configuration defines the global engine configuration
type Configuration struct {
	ApplicationName string

	Window   WindowConfiguration
	Renderer RendererConfiguration
	Log      LogConfiguration
	Time     TimeConfiguration
}

// WindowConfiguration is used to configure the platform window
type WindowConfiguration struct {
	Width     int32
	Height    int32
	Maximized bool
	Resizable bool
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	EngineName string

	// EnableValidation turns on the requested validation layers (when present)
	// and the debug messenger
	EnableValidation bool
	ValidationLayers []string

	// VSync forces FIFO presentation even if mailbox is available
	VSync bool

	VertexShaderPath   string
	FragmentShaderPath string
}

type LogConfiguration struct {
	Level string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// StatsInterval is how often frame statistics are logged.
	// To disable, set to 0
	StatsInterval time.Duration
}

const (
	EnvApplicationName = "DARKSTAR_APP_NAME"
	EnvWidth           = "DARKSTAR_WIDTH"
	EnvHeight          = "DARKSTAR_HEIGHT"
	EnvValidation      = "DARKSTAR_VALIDATION"
	EnvVSync           = "DARKSTAR_VSYNC"
	EnvVertexShader    = "DARKSTAR_VERTEX_SHADER"
	EnvFragmentShader  = "DARKSTAR_FRAGMENT_SHADER"
	EnvLogLevel        = "DARKSTAR_LOG_LEVEL"
	EnvStatsInterval   = "DARKSTAR_STATS_INTERVAL"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

func DefaultConfiguration() Configuration {
	return Configuration{
		ApplicationName: "Dark Star",
		Window: WindowConfiguration{
			Width:     1280,
			Height:    760,
			Maximized: true,
			Resizable: true,
		},
		Renderer: RendererConfiguration{
			EngineName:         "Dark Star Engine",
			EnableValidation:   true,
			ValidationLayers:   []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_KHRONOS_profiles"},
			VertexShaderPath:   "shaders/basic.vert.spv",
			FragmentShaderPath: "shaders/basic.frag.spv",
		},
		Log: LogConfiguration{
			Level: "info",
		},
		Time: TimeConfiguration{
			StatsInterval: 5 * time.Second,
		},
	}
}

// LoadConfiguration builds the configuration from the defaults, then the
// environment (and .env file), then the command line args, in that order.
func LoadConfiguration(args []string, output io.Writer) (Configuration, error) {
	cfg := DefaultConfiguration()

	err := cfg.applyEnvironment()
	if err != nil {
		return cfg, err
	}

	err = cfg.applyFlags(args, output)
	return cfg, err
}

func (c *Configuration) applyEnvironment() error {
	var err error

	c.ApplicationName = envy.Get(EnvApplicationName, c.ApplicationName)
	c.Renderer.VertexShaderPath = envy.Get(EnvVertexShader, c.Renderer.VertexShaderPath)
	c.Renderer.FragmentShaderPath = envy.Get(EnvFragmentShader, c.Renderer.FragmentShaderPath)
	c.Log.Level = envy.Get(EnvLogLevel, c.Log.Level)

	if c.Window.Width, err = envInt32(EnvWidth, c.Window.Width); err != nil {
		return err
	}
	if c.Window.Height, err = envInt32(EnvHeight, c.Window.Height); err != nil {
		return err
	}
	if c.Renderer.EnableValidation, err = envBool(EnvValidation, c.Renderer.EnableValidation); err != nil {
		return err
	}
	if c.Renderer.VSync, err = envBool(EnvVSync, c.Renderer.VSync); err != nil {
		return err
	}
	if c.Time.StatsInterval, err = envDuration(EnvStatsInterval, c.Time.StatsInterval); err != nil {
		return err
	}

	return c.validate()
}

func (c *Configuration) applyFlags(args []string, output io.Writer) error {
	flags := flag.NewFlagSet("darkstar", flag.ContinueOnError)
	flags.SetOutput(output)

	width := flags.Int("width", int(c.Window.Width), "initial window width")
	height := flags.Int("height", int(c.Window.Height), "initial window height")
	flags.StringVar(&c.ApplicationName, "name", c.ApplicationName, "application name and window title")
	flags.BoolVar(&c.Renderer.EnableValidation, "validation", c.Renderer.EnableValidation, "enable validation layers and debug messenger")
	flags.BoolVar(&c.Renderer.VSync, "vsync", c.Renderer.VSync, "force FIFO presentation")
	flags.StringVar(&c.Renderer.VertexShaderPath, "vert", c.Renderer.VertexShaderPath, "vertex shader SPIR-V path")
	flags.StringVar(&c.Renderer.FragmentShaderPath, "frag", c.Renderer.FragmentShaderPath, "fragment shader SPIR-V path")
	flags.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level (debug, info, warn, error)")
	flags.DurationVar(&c.Time.StatsInterval, "stats-interval", c.Time.StatsInterval, "frame statistics logging interval, 0 disables")

	err := flags.Parse(args)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "parsing command line"), ErrInvalidConfiguration)
	}
	if flags.NArg() > 0 {
		return errors.Mark(errors.Newf("unrecognized arguments: %s", strings.Join(flags.Args(), " ")), ErrInvalidConfiguration)
	}

	c.Window.Width = int32(*width)
	c.Window.Height = int32(*height)

	return c.validate()
}

func (c *Configuration) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Mark(errors.Newf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height), ErrInvalidConfiguration)
	}
	if c.Renderer.VertexShaderPath == "" || c.Renderer.FragmentShaderPath == "" {
		return errors.Mark(errors.New("shader paths must not be empty"), ErrInvalidConfiguration)
	}
	if c.Time.StatsInterval < 0 {
		return errors.Mark(errors.Newf("stats interval must not be negative, got %s", c.Time.StatsInterval), ErrInvalidConfiguration)
	}
	return nil
}

func envInt32(key string, fallback int32) (int32, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback, errors.Mark(errors.Wrapf(err, "%s", key), ErrInvalidConfiguration)
	}
	return int32(value), nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, errors.Mark(errors.Wrapf(err, "%s", key), ErrInvalidConfiguration)
	}
	return value, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, errors.Mark(errors.Wrapf(err, "%s", key), ErrInvalidConfiguration)
	}
	return value, nil
}
