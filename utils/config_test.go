package utils

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 760 {
		t.Errorf("unexpected default window size %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Maximized || !cfg.Window.Resizable {
		t.Error("default window should be maximized and resizable")
	}
	if cfg.Renderer.EngineName != "Dark Star Engine" {
		t.Errorf("unexpected engine name %q", cfg.Renderer.EngineName)
	}
	if len(cfg.Renderer.ValidationLayers) != 2 {
		t.Errorf("expected two requested layers, got %v", cfg.Renderer.ValidationLayers)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvApplicationName, "Test App")
		envy.Set(EnvWidth, "640")
		envy.Set(EnvHeight, "480")
		envy.Set(EnvVSync, "true")
		envy.Set(EnvValidation, "false")
		envy.Set(EnvStatsInterval, "250ms")
		envy.Set(EnvVertexShader, "a.spv")

		cfg, err := LoadConfiguration(nil, io.Discard)
		if err != nil {
			t.Fatal(err)
		}

		if cfg.ApplicationName != "Test App" {
			t.Errorf("name not taken from env: %q", cfg.ApplicationName)
		}
		if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
			t.Errorf("size not taken from env: %dx%d", cfg.Window.Width, cfg.Window.Height)
		}
		if !cfg.Renderer.VSync || cfg.Renderer.EnableValidation {
			t.Error("bools not taken from env")
		}
		if cfg.Time.StatsInterval != 250*time.Millisecond {
			t.Errorf("interval not taken from env: %s", cfg.Time.StatsInterval)
		}
		if cfg.Renderer.VertexShaderPath != "a.spv" {
			t.Errorf("vertex shader not taken from env: %q", cfg.Renderer.VertexShaderPath)
		}
	})
}

func TestLoadConfigurationFlagsOverrideEnvironment(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvWidth, "640")
		envy.Set(EnvLogLevel, "warn")

		cfg, err := LoadConfiguration([]string{"-width", "800", "-log-level", "debug", "-vsync"}, io.Discard)
		if err != nil {
			t.Fatal(err)
		}

		if cfg.Window.Width != 800 {
			t.Errorf("flag should override env, got width %d", cfg.Window.Width)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("flag should override env, got level %q", cfg.Log.Level)
		}
		if !cfg.Renderer.VSync {
			t.Error("vsync flag ignored")
		}
	})
}

func TestLoadConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad width", env: map[string]string{EnvWidth: "wide"}},
		{name: "bad bool", env: map[string]string{EnvVSync: "maybe"}},
		{name: "bad duration", env: map[string]string{EnvStatsInterval: "soon"}},
		{name: "zero height", args: []string{"-height", "0"}},
		{name: "negative interval", args: []string{"-stats-interval", "-1s"}},
		{name: "empty shader", args: []string{"-frag", ""}},
		{name: "unknown flag", args: []string{"-fullscreen"}},
		{name: "stray argument", args: []string{"extra"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			envy.Temp(func() {
				for key, value := range tc.env {
					envy.Set(key, value)
				}

				_, err := LoadConfiguration(tc.args, io.Discard)
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("expected invalid configuration, got %v", err)
				}
			})
		})
	}
}

func TestLoadConfigurationHelp(t *testing.T) {
	_, err := LoadConfiguration([]string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}
