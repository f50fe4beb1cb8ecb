package renderer

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// PhysicalDevice is a GPU candidate along with its selection priority
type PhysicalDevice struct {
	Handle   core1_0.PhysicalDevice
	Name     string
	Type     core1_0.PhysicalDeviceType
	Priority int
}

// QueueFamily describes the capabilities of one queue family of the
// selected device. Queue is only set once the logical device exists.
type QueueFamily struct {
	Index      int
	Flags      core1_0.QueueFlags
	QueueCount int

	Graphics bool
	Present  bool
	Compute  bool

	Queue core1_0.Queue
}

type instanceExtensions struct {
	Names       []string
	DebugUtils  bool
	Portability bool
}

func nameSet[V any](m map[string]V) map[string]bool {
	set := make(map[string]bool, len(m))
	for name := range m {
		set[name] = true
	}
	return set
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}

// chooseInstanceExtensions builds the instance extension list. Every
// extension the window requires must be present; debug utils and
// portability enumeration are added only when available.
func chooseInstanceExtensions(windowExtensions []string, available map[string]bool, validation bool) (instanceExtensions, error) {
	var result instanceExtensions

	for _, ext := range windowExtensions {
		if !available[ext] {
			return result, errors.Mark(errors.Newf("missing instance extension %s", ext), ErrExtensionUnavailable)
		}
		result.Names = appendUnique(result.Names, ext)
	}

	if available[khr_surface.ExtensionName] {
		result.Names = appendUnique(result.Names, khr_surface.ExtensionName)
	}

	if validation && available[ext_debug_utils.ExtensionName] {
		result.Names = appendUnique(result.Names, ext_debug_utils.ExtensionName)
		result.DebugUtils = true
	}

	if available[khr_portability_enumeration.ExtensionName] {
		result.Names = appendUnique(result.Names, khr_portability_enumeration.ExtensionName)
		result.Portability = true
	}

	return result, nil
}

// chooseInstanceLayers keeps the requested layers that are installed, in
// request order. Missing layers are skipped.
func chooseInstanceLayers(requested []string, available map[string]bool) []string {
	var layers []string
	for _, layer := range requested {
		if available[layer] {
			layers = appendUnique(layers, layer)
		}
	}
	return layers
}

func chooseDeviceExtensions(available map[string]bool) ([]string, error) {
	if !available[khr_swapchain.ExtensionName] {
		return nil, errors.Mark(errors.Newf("extension unavailable: %s", khr_swapchain.ExtensionName), ErrExtensionUnavailable)
	}

	extensions := []string{khr_swapchain.ExtensionName}

	// Required on portability implementations such as MoltenVK
	if available[khr_portability_subset.ExtensionName] {
		extensions = append(extensions, khr_portability_subset.ExtensionName)
	}

	return extensions, nil
}

func devicePriority(deviceType core1_0.PhysicalDeviceType) int {
	switch deviceType {
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return 4
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return 3
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return 2
	case core1_0.PhysicalDeviceTypeCPU:
		return 1
	default:
		return 0
	}
}

// selectBestDevice returns the highest priority candidate. Ties go to the
// device enumerated first.
func selectBestDevice(candidates []PhysicalDevice) (PhysicalDevice, error) {
	if len(candidates) == 0 {
		return PhysicalDevice{}, ErrNoSuitableDevice
	}

	sorted := make([]PhysicalDevice, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	return sorted[0], nil
}

func newQueueFamily(index int, flags core1_0.QueueFlags, queueCount int, present bool) QueueFamily {
	return QueueFamily{
		Index:      index,
		Flags:      flags,
		QueueCount: queueCount,
		Graphics:   flags&core1_0.QueueGraphics != 0,
		Compute:    flags&core1_0.QueueCompute != 0,
		Present:    present,
	}
}

func findGraphicsFamily(families []QueueFamily) (QueueFamily, bool) {
	for _, family := range families {
		if family.Graphics {
			return family, true
		}
	}
	return QueueFamily{}, false
}

func findPresentFamily(families []QueueFamily) (QueueFamily, bool) {
	for _, family := range families {
		if family.Present {
			return family, true
		}
	}
	return QueueFamily{}, false
}

func chooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	return availableFormats[0]
}

// choosePresentMode prefers mailbox. FIFO is the fallback because it is the
// only mode the surface is guaranteed to support.
func choosePresentMode(availablePresentModes []khr_surface.PresentMode, vsync bool) khr_surface.PresentMode {
	if vsync {
		return khr_surface.PresentModeFIFO
	}

	for _, presentMode := range availablePresentModes {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// chooseImageCount asks for one image more than the minimum. A maximum of 0
// means the surface has no upper bound.
func chooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// chooseExtent uses the surface's current extent unless the surface lets
// the swapchain decide, in which case the drawable size is clamped to the
// supported range.
func chooseExtent(capabilities *khr_surface.SurfaceCapabilities, drawableWidth, drawableHeight int) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != -1 {
		return capabilities.CurrentExtent
	}

	width := clamp(drawableWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width)
	height := clamp(drawableHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height)

	return core1_0.Extent2D{Width: width, Height: height}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func chooseSharingMode(graphicsFamily, presentFamily int) (core1_0.SharingMode, []int) {
	if graphicsFamily == presentFamily {
		return core1_0.SharingModeExclusive, nil
	}

	return core1_0.SharingModeConcurrent, []int{graphicsFamily, presentFamily}
}

// findMemoryType returns the first memory type allowed by typeFilter whose
// flags contain all of properties
func findMemoryType(memoryTypes []core1_0.MemoryPropertyFlags, typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	for i, flags := range memoryTypes {
		typeBit := uint32(1 << i)

		if (typeFilter&typeBit) != 0 && (flags&properties) == properties {
			return i, nil
		}
	}

	return 0, errors.Mark(errors.Newf("no memory type in filter %#x has flags %v", typeFilter, properties), ErrNoMemoryType)
}

func severityLevel(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) logrus.Level {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return logrus.ErrorLevel
	case severity&ext_debug_utils.SeverityWarning != 0:
		return logrus.WarnLevel
	case severity&ext_debug_utils.SeverityInfo != 0:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
