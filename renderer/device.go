package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func (r *Renderer) selectPhysicalDevice() error {
	physicalDevices, _, err := r.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "vkEnumeratePhysicalDevices")
	}

	var candidates []PhysicalDevice
	for _, device := range physicalDevices {
		properties, err := r.instanceDriver.GetPhysicalDeviceProperties(device)
		if err != nil {
			return errors.Wrap(err, "vkGetPhysicalDeviceProperties")
		}

		candidate := PhysicalDevice{
			Handle:   device,
			Name:     properties.DeviceName,
			Type:     properties.DeviceType,
			Priority: devicePriority(properties.DeviceType),
		}

		reason, err := r.deviceIneligibility(device)
		if err != nil {
			return err
		}
		if reason != "" {
			r.log.WithFields(logrus.Fields{
				"device": candidate.Name,
				"reason": reason,
			}).Info("skipping physical device")
			continue
		}

		candidates = append(candidates, candidate)
	}

	r.physicalDevice, err = selectBestDevice(candidates)
	if err != nil {
		return errors.Wrapf(err, "%d devices enumerated", len(physicalDevices))
	}

	r.log.WithFields(logrus.Fields{
		"device": r.physicalDevice.Name,
		"type":   r.physicalDevice.Type,
	}).Info("selected physical device")

	return nil
}

// deviceIneligibility returns why a device cannot render to the surface, or
// "" when it can
func (r *Renderer) deviceIneligibility(device core1_0.PhysicalDevice) (string, error) {
	families, err := r.fetchQueueFamilies(device)
	if err != nil {
		return "", err
	}

	if _, found := findGraphicsFamily(families); !found {
		return "no graphics queue family", nil
	}
	if _, found := findPresentFamily(families); !found {
		return "no queue family can present to the surface", nil
	}

	extensions, _, err := r.instanceDriver.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return "", errors.Wrap(err, "vkEnumerateDeviceExtensionProperties")
	}
	if _, err := chooseDeviceExtensions(nameSet(extensions)); err != nil {
		return err.Error(), nil
	}

	formats, _, err := r.surfaceExtension.GetPhysicalDeviceSurfaceFormats(r.surface, device)
	if err != nil {
		return "", errors.Wrap(err, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	}
	presentModes, _, err := r.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(r.surface, device)
	if err != nil {
		return "", errors.Wrap(err, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	}
	if len(formats) == 0 || len(presentModes) == 0 {
		return "surface has no formats or present modes", nil
	}

	return "", nil
}

func (r *Renderer) fetchQueueFamilies(device core1_0.PhysicalDevice) ([]QueueFamily, error) {
	var families []QueueFamily

	for index, properties := range r.instanceDriver.GetPhysicalDeviceQueueFamilyProperties(device) {
		supported, _, err := r.surfaceExtension.GetPhysicalDeviceSurfaceSupport(r.surface, device, index)
		if err != nil {
			return nil, errors.Wrap(err, "vkGetPhysicalDeviceSurfaceSupportKHR")
		}

		families = append(families, newQueueFamily(index, properties.QueueFlags, properties.QueueCount, supported))
	}

	return families, nil
}

func (r *Renderer) createDevice() error {
	var err error
	r.queueFamilies, err = r.fetchQueueFamilies(r.physicalDevice.Handle)
	if err != nil {
		return err
	}

	// One queue from every family, so any of them can be used later
	var queueCreateInfos []core1_0.DeviceQueueCreateInfo
	for _, family := range r.queueFamilies {
		queueCreateInfos = append(queueCreateInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family.Index,
			QueuePriorities:  []float32{1.0},
		})
	}

	availableExtensions, _, err := r.instanceDriver.EnumerateDeviceExtensionProperties(r.physicalDevice.Handle)
	if err != nil {
		return errors.Wrap(err, "vkEnumerateDeviceExtensionProperties")
	}

	extensions, err := chooseDeviceExtensions(nameSet(availableExtensions))
	if err != nil {
		return err
	}

	r.deviceDriver, _, err = r.instanceDriver.CreateDevice(r.physicalDevice.Handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueCreateInfos,
		EnabledExtensionNames: extensions,
	})
	if err != nil {
		return errors.Wrap(err, "vkCreateDevice")
	}

	for i := range r.queueFamilies {
		r.queueFamilies[i].Queue = r.deviceDriver.GetQueue(r.queueFamilies[i].Index, 0)
	}

	var found bool
	r.graphicsFamily, found = findGraphicsFamily(r.queueFamilies)
	if !found {
		return errors.Wrap(ErrNoSuitableDevice, "no graphics queue family")
	}
	r.presentFamily, found = findPresentFamily(r.queueFamilies)
	if !found {
		return errors.Wrap(ErrNoSuitableDevice, "no present queue family")
	}

	r.log.WithFields(logrus.Fields{
		"graphics_family": r.graphicsFamily.Index,
		"present_family":  r.presentFamily.Index,
		"families":        len(r.queueFamilies),
	}).Debug("queues created")

	return nil
}
