package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var clearColor = core1_0.ClearValueFloat{0.01, 0.01, 0.01, 1.0}

func (r *Renderer) createCommandPool() error {
	pool, _, err := r.deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: r.graphicsFamily.Index,
	})
	if err != nil {
		return errors.Wrap(err, "vkCreateCommandPool")
	}

	r.commandPool = pool
	return nil
}

func (r *Renderer) createCommandBuffer() error {
	buffers, _, err := r.deviceDriver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        r.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return errors.Wrap(err, "vkAllocateCommandBuffers")
	}

	r.commandBuffer = buffers[0]
	return nil
}

func (r *Renderer) createSyncObjects() error {
	var err error
	r.imageAvailableSemaphore, _, err = r.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return errors.Wrap(err, "vkCreateSemaphore")
	}

	r.renderFinishedSemaphore, _, err = r.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return errors.Wrap(err, "vkCreateSemaphore")
	}

	// Signaled so the first frame doesn't wait forever
	r.inFlightFence, _, err = r.deviceDriver.CreateFence(nil, core1_0.FenceCreateInfo{
		Flags: core1_0.FenceCreateSignaled,
	})
	if err != nil {
		return errors.Wrap(err, "vkCreateFence")
	}

	return nil
}

// recordCommands re-records the single command buffer for imageIndex. The
// pool's reset flag makes BeginCommandBuffer reset it implicitly.
func (r *Renderer) recordCommands(imageIndex int) error {
	_, err := r.deviceDriver.BeginCommandBuffer(r.commandBuffer, core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return errors.Wrap(err, "vkBeginCommandBuffer")
	}

	err = r.deviceDriver.CmdBeginRenderPass(r.commandBuffer, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  r.renderPass,
			Framebuffer: r.swapchainFramebuffers[imageIndex],
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: r.swapchainExtent,
			},
			ClearValues: []core1_0.ClearValue{
				clearColor,
			},
		})
	if err != nil {
		return errors.Wrap(err, "vkCmdBeginRenderPass")
	}

	r.deviceDriver.CmdBindPipeline(r.commandBuffer, core1_0.PipelineBindPointGraphics, r.pipeline)
	r.deviceDriver.CmdBindVertexBuffers(r.commandBuffer, 0, []core1_0.Buffer{r.vertexBuffer}, []int{0})
	r.deviceDriver.CmdDraw(r.commandBuffer, triangleVertexCount, 1, 0, 0)
	r.deviceDriver.CmdEndRenderPass(r.commandBuffer)

	_, err = r.deviceDriver.EndCommandBuffer(r.commandBuffer)
	if err != nil {
		return errors.Wrap(err, "vkEndCommandBuffer")
	}

	return nil
}

func isSwapchainOutdated(res common.VkResult) bool {
	return res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal
}

// RenderFrame draws one frame with a single frame in flight: wait for the
// previous frame's fence, acquire, record, submit, present.
func (r *Renderer) RenderFrame() error {
	_, err := r.deviceDriver.WaitForFences(true, common.NoTimeout, r.inFlightFence)
	if err != nil {
		return errors.Wrap(err, "vkWaitForFences")
	}

	imageIndex, res, err := r.swapchainExtension.AcquireNextImage(r.swapchain, common.NoTimeout, &r.imageAvailableSemaphore, nil)
	if res == khr_swapchain.VKErrorOutOfDate {
		// The fence is still signaled, so the next frame won't block
		return r.recreateSwapchain()
	} else if err != nil {
		return errors.Wrap(err, "vkAcquireNextImageKHR")
	}

	_, err = r.deviceDriver.ResetFences(r.inFlightFence)
	if err != nil {
		return errors.Wrap(err, "vkResetFences")
	}

	err = r.recordCommands(imageIndex)
	if err != nil {
		return err
	}

	_, err = r.deviceDriver.QueueSubmit(r.graphicsFamily.Queue, &r.inFlightFence,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{r.imageAvailableSemaphore},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{r.commandBuffer},
			SignalSemaphores: []core1_0.Semaphore{r.renderFinishedSemaphore},
		},
	)
	if err != nil {
		return errors.Wrap(err, "vkQueueSubmit")
	}

	res, err = r.swapchainExtension.QueuePresent(r.presentFamily.Queue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{r.renderFinishedSemaphore},
		Swapchains:     []khr_swapchain.Swapchain{r.swapchain},
		ImageIndices:   []int{imageIndex},
	})
	if isSwapchainOutdated(res) {
		return r.recreateSwapchain()
	} else if err != nil {
		return errors.Wrap(err, "vkQueuePresentKHR")
	}

	if r.swapchainStale {
		return r.recreateSwapchain()
	}

	return nil
}
