package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

func (r *Renderer) createInstance(applicationName string) error {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    applicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         r.config.EngineName,
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         apiVersion,
	}

	availableExtensions, _, err := r.globalDriver.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "enumerate instance extensions")
	}

	extensions, err := chooseInstanceExtensions(r.window.VulkanGetInstanceExtensions(), nameSet(availableExtensions), r.config.EnableValidation)
	if err != nil {
		return err
	}
	instanceOptions.EnabledExtensionNames = extensions.Names

	if extensions.Portability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if r.config.EnableValidation {
		availableLayers, _, err := r.globalDriver.AvailableLayers()
		if err != nil {
			return errors.Wrap(err, "enumerate instance layers")
		}

		instanceOptions.EnabledLayerNames = chooseInstanceLayers(r.config.ValidationLayers, nameSet(availableLayers))
		for _, layer := range instanceOptions.EnabledLayerNames {
			r.log.WithField("layer", layer).Info("enabling layer")
		}

		// Also covers messages emitted during vkCreateInstance itself
		if extensions.DebugUtils {
			instanceOptions.Next = r.debugMessengerOptions()
		} else {
			r.log.Warnf("%s unavailable, validation messages will not be logged", ext_debug_utils.ExtensionName)
		}
	}

	r.log.WithField("api_version", apiVersion).Info("creating instance")

	r.instanceDriver, _, err = r.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return errors.Wrap(err, "vkCreateInstance")
	}

	if extensions.DebugUtils {
		r.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(r.instanceDriver)
	}

	return nil
}

func (r *Renderer) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    r.logDebug,
	}
}

func (r *Renderer) createDebugMessenger() error {
	if r.debugDriver == nil {
		return nil
	}

	var err error
	r.debugMessenger, _, err = r.debugDriver.CreateDebugUtilsMessenger(nil, r.debugMessengerOptions())
	if err != nil {
		return errors.Wrap(err, "vkCreateDebugUtilsMessengerEXT")
	}

	return nil
}

func (r *Renderer) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	r.log.WithFields(logrus.Fields{
		"severity": severity,
		"type":     msgType,
	}).Log(severityLevel(severity), data.Message)
	return false
}

func (r *Renderer) createSurface() error {
	r.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(r.instanceDriver)
	surface, err := vkng_sdl2.CreateSurface(r.instanceDriver.Instance(), r.surfaceExtension, r.window)
	if err != nil {
		return errors.Wrap(err, "failed to create Vulkan surface with SDL")
	}

	r.surface = surface
	return nil
}
