package renderer

import (
	"io"
	"testing"

	"github.com/darkstar-engine/darkstar/utils"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func newTestRenderer() *Renderer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := utils.DefaultConfiguration()
	return New(logger, cfg.Renderer, cfg.Time)
}

func TestDestroyUninitialized(t *testing.T) {
	r := newTestRenderer()

	// Must not touch any driver when nothing was created
	r.Destroy()
	r.Destroy()
}

func TestUpdateWithoutStats(t *testing.T) {
	logger, hook := test.NewNullLogger()

	cfg := utils.DefaultConfiguration()
	cfg.Time.StatsInterval = 0
	r := New(logger, cfg.Renderer, cfg.Time)

	for i := 0; i < 10; i++ {
		r.Update()
	}

	if len(hook.AllEntries()) != 0 {
		t.Errorf("disabled stats should not log, got %d entries", len(hook.AllEntries()))
	}
}

func TestRequestSwapchainRecreation(t *testing.T) {
	r := newTestRenderer()
	if r.swapchainStale {
		t.Fatal("new renderer should not be stale")
	}

	r.RequestSwapchainRecreation()
	if !r.swapchainStale {
		t.Error("request should mark the swapchain stale")
	}
}

func TestIsSwapchainOutdated(t *testing.T) {
	if !isSwapchainOutdated(khr_swapchain.VKErrorOutOfDate) {
		t.Error("out of date should require recreation")
	}
	if !isSwapchainOutdated(khr_swapchain.VKSuboptimal) {
		t.Error("suboptimal should require recreation")
	}
	if isSwapchainOutdated(core1_0.VKSuccess) {
		t.Error("success should not require recreation")
	}
}
