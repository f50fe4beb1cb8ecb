package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func (r *Renderer) selectSurfaceFormat() (khr_surface.SurfaceFormat, error) {
	formats, _, err := r.surfaceExtension.GetPhysicalDeviceSurfaceFormats(r.surface, r.physicalDevice.Handle)
	if err != nil {
		return khr_surface.SurfaceFormat{}, errors.Wrap(err, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	}
	if len(formats) == 0 {
		return khr_surface.SurfaceFormat{}, errors.Wrap(ErrNoSuitableDevice, "surface reports no formats")
	}

	for _, format := range formats {
		r.log.WithFields(logrus.Fields{
			"color_space": format.ColorSpace,
			"format":      format.Format,
		}).Debug("found surface format")
	}

	return chooseSurfaceFormat(formats), nil
}

func (r *Renderer) selectPresentMode() (khr_surface.PresentMode, error) {
	presentModes, _, err := r.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(r.surface, r.physicalDevice.Handle)
	if err != nil {
		return 0, errors.Wrap(err, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	}

	for _, presentMode := range presentModes {
		r.log.WithField("present_mode", presentMode).Debug("found present mode")
	}

	return choosePresentMode(presentModes, r.config.VSync), nil
}

func (r *Renderer) createSwapchain() error {
	r.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(r.deviceDriver)

	var err error
	r.surfaceFormat, err = r.selectSurfaceFormat()
	if err != nil {
		return err
	}

	presentMode, err := r.selectPresentMode()
	if err != nil {
		return err
	}

	capabilities, _, err := r.surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(r.surface, r.physicalDevice.Handle)
	if err != nil {
		return errors.Wrap(err, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	}

	drawableWidth, drawableHeight := r.window.VulkanGetDrawableSize()
	extent := chooseExtent(capabilities, int(drawableWidth), int(drawableHeight))
	sharingMode, queueFamilyIndices := chooseSharingMode(r.graphicsFamily.Index, r.presentFamily.Index)

	swapchain, _, err := r.swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: r.surface,

		MinImageCount:    chooseImageCount(capabilities),
		ImageFormat:      r.surfaceFormat.Format,
		ImageColorSpace:  r.surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    presentMode,
		Clipped:        true,
	})
	if err != nil {
		return errors.Wrap(err, "vkCreateSwapchainKHR")
	}
	r.swapchain = swapchain
	r.swapchainExtent = extent

	r.log.WithFields(logrus.Fields{
		"format":       r.surfaceFormat.Format,
		"present_mode": presentMode,
		"width":        extent.Width,
		"height":       extent.Height,
	}).Info("swapchain created")

	return nil
}

func (r *Renderer) createImageViews() error {
	images, _, err := r.swapchainExtension.GetSwapchainImages(r.swapchain)
	if err != nil {
		return errors.Wrap(err, "vkGetSwapchainImagesKHR")
	}
	r.swapchainImages = images

	for _, image := range images {
		imageView, _, err := r.deviceDriver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   r.surfaceFormat.Format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			return errors.Wrap(err, "vkCreateImageView")
		}

		r.swapchainImageViews = append(r.swapchainImageViews, imageView)
	}

	return nil
}

// cleanupSwapchain destroys everything that depends on the swapchain extent
// or format. Shader modules, buffers and sync objects survive.
func (r *Renderer) cleanupSwapchain() {
	for _, framebuffer := range r.swapchainFramebuffers {
		r.deviceDriver.DestroyFramebuffer(framebuffer, nil)
	}
	r.swapchainFramebuffers = nil

	if r.pipeline.Initialized() {
		r.deviceDriver.DestroyPipeline(r.pipeline, nil)
		r.pipeline = core1_0.Pipeline{}
	}

	if r.pipelineLayout.Initialized() {
		r.deviceDriver.DestroyPipelineLayout(r.pipelineLayout, nil)
		r.pipelineLayout = core1_0.PipelineLayout{}
	}

	if r.renderPass.Initialized() {
		r.deviceDriver.DestroyRenderPass(r.renderPass, nil)
		r.renderPass = core1_0.RenderPass{}
	}

	for _, imageView := range r.swapchainImageViews {
		r.deviceDriver.DestroyImageView(imageView, nil)
	}
	r.swapchainImageViews = nil
	r.swapchainImages = nil

	if r.swapchain.Initialized() {
		r.swapchainExtension.DestroySwapchain(r.swapchain, nil)
		r.swapchain = khr_swapchain.Swapchain{}
	}
}

// recreateSwapchain rebuilds the swapchain and its dependents. It does
// nothing while the window has no drawable area.
func (r *Renderer) recreateSwapchain() error {
	w, h := r.window.VulkanGetDrawableSize()
	if w == 0 || h == 0 {
		return nil
	}
	if (r.window.GetFlags() & sdl.WINDOW_MINIMIZED) != 0 {
		return nil
	}

	_, err := r.deviceDriver.DeviceWaitIdle()
	if err != nil {
		return errors.Wrap(err, "vkDeviceWaitIdle")
	}

	r.cleanupSwapchain()

	steps := []struct {
		name string
		run  func() error
	}{
		{"create swapchain", r.createSwapchain},
		{"create image views", r.createImageViews},
		{"create render pass", r.createRenderPass},
		{"create pipeline", r.createPipeline},
		{"create framebuffers", r.createFramebuffers},
	}

	for _, step := range steps {
		err = step.run()
		if err != nil {
			return errors.Wrapf(err, "recreate swapchain: %s", step.name)
		}
	}

	r.swapchainStale = false
	return nil
}
