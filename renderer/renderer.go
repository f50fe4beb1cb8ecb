// Package renderer drives a Vulkan device that draws a single triangle per
// frame into an SDL window, with one frame in flight.
package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/darkstar-engine/darkstar/utils"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

const apiVersion = common.Vulkan1_2

type Renderer struct {
	log    logrus.FieldLogger
	config utils.RendererConfiguration
	window *sdl.Window
	timer  *utils.FrameTimer

	globalDriver   core1_0.GlobalDriver
	instanceDriver core1_0.CoreInstanceDriver
	deviceDriver   core1_0.CoreDeviceDriver

	debugDriver      ext_debug_utils.ExtensionDriver
	debugMessenger   ext_debug_utils.DebugUtilsMessenger
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice PhysicalDevice
	queueFamilies  []QueueFamily
	graphicsFamily QueueFamily
	presentFamily  QueueFamily

	swapchainExtension    khr_swapchain.ExtensionDriver
	swapchain             khr_swapchain.Swapchain
	surfaceFormat         khr_surface.SurfaceFormat
	swapchainExtent       core1_0.Extent2D
	swapchainImages       []core1_0.Image
	swapchainImageViews   []core1_0.ImageView
	swapchainFramebuffers []core1_0.Framebuffer

	shaderModules  []core1_0.ShaderModule
	renderPass     core1_0.RenderPass
	pipelineLayout core1_0.PipelineLayout
	pipeline       core1_0.Pipeline

	vertexBuffer       core1_0.Buffer
	vertexBufferMemory core1_0.DeviceMemory

	commandPool   core1_0.CommandPool
	commandBuffer core1_0.CommandBuffer

	imageAvailableSemaphore core1_0.Semaphore
	renderFinishedSemaphore core1_0.Semaphore
	inFlightFence           core1_0.Fence

	swapchainStale bool
}

func New(log logrus.FieldLogger, config utils.RendererConfiguration, timeConfig utils.TimeConfiguration) *Renderer {
	return &Renderer{
		log:    log,
		config: config,
		timer:  utils.NewFrameTimer(timeConfig),
	}
}

// Initialize creates every Vulkan object needed to render, in dependency
// order. On error, Destroy releases whatever was created so far.
func (r *Renderer) Initialize(applicationName string, globalDriver core1_0.GlobalDriver, window *sdl.Window) error {
	r.globalDriver = globalDriver
	r.window = window

	steps := []struct {
		name string
		run  func() error
	}{
		{"create instance", func() error { return r.createInstance(applicationName) }},
		{"create debug messenger", r.createDebugMessenger},
		{"create surface", r.createSurface},
		{"select physical device", r.selectPhysicalDevice},
		{"create device", r.createDevice},
		{"create swapchain", r.createSwapchain},
		{"create image views", r.createImageViews},
		{"create render pass", r.createRenderPass},
		{"create shader modules", r.createShaderModules},
		{"create pipeline", r.createPipeline},
		{"create framebuffers", r.createFramebuffers},
		{"create vertex buffer", r.createVertexBuffer},
		{"create command pool", r.createCommandPool},
		{"create command buffer", r.createCommandBuffer},
		{"create sync objects", r.createSyncObjects},
	}

	for _, step := range steps {
		err := step.run()
		if err != nil {
			return errors.Wrap(err, step.name)
		}
	}

	r.log.Info("renderer initialized")
	return nil
}

// RequestSwapchainRecreation marks the swapchain as stale, it is rebuilt
// after the next present
func (r *Renderer) RequestSwapchainRecreation() {
	r.swapchainStale = true
}

// Update advances per-frame CPU state
func (r *Renderer) Update() {
	_, stats, ready := r.timer.Tick()
	if ready {
		r.log.WithFields(logrus.Fields{
			"frames":  stats.Frames,
			"fps":     stats.FPS,
			"average": stats.AverageFrame,
		}).Info("frame statistics")
	}
}

// Destroy waits for the device to go idle and releases every object in
// reverse creation order. It is safe to call after a failed Initialize.
func (r *Renderer) Destroy() {
	if r.deviceDriver != nil {
		_, err := r.deviceDriver.DeviceWaitIdle()
		if err != nil {
			r.log.WithError(err).Error("wait for device idle")
		}

		if r.inFlightFence.Initialized() {
			r.deviceDriver.DestroyFence(r.inFlightFence, nil)
		}

		if r.imageAvailableSemaphore.Initialized() {
			r.deviceDriver.DestroySemaphore(r.imageAvailableSemaphore, nil)
		}

		if r.renderFinishedSemaphore.Initialized() {
			r.deviceDriver.DestroySemaphore(r.renderFinishedSemaphore, nil)
		}

		if r.commandPool.Initialized() {
			r.deviceDriver.DestroyCommandPool(r.commandPool, nil)
		}

		if r.vertexBuffer.Initialized() {
			r.deviceDriver.DestroyBuffer(r.vertexBuffer, nil)
		}

		if r.vertexBufferMemory.Initialized() {
			r.deviceDriver.FreeMemory(r.vertexBufferMemory, nil)
		}

		r.cleanupSwapchain()

		for _, module := range r.shaderModules {
			r.deviceDriver.DestroyShaderModule(module, nil)
		}
		r.shaderModules = nil

		r.deviceDriver.DestroyDevice(nil)
		r.deviceDriver = nil
	}

	if r.debugMessenger.Initialized() {
		r.debugDriver.DestroyDebugUtilsMessenger(r.debugMessenger, nil)
		r.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if r.surface.Initialized() {
		r.surfaceExtension.DestroySurface(r.surface, nil)
		r.surface = khr_surface.Surface{}
	}

	if r.instanceDriver != nil {
		r.instanceDriver.DestroyInstance(nil)
		r.instanceDriver = nil
	}
}
