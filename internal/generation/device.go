package generation

import (
	"fmt"
	"os"
	"strings"
)

// Device is the compute device a model is pinned to.
type Device string

// Supported device preferences. DeviceAuto is only a preference; a resolved
// handle always reports DeviceAccelerator or DeviceCPU.
const (
	DeviceAuto        Device = "auto"
	DeviceAccelerator Device = "accelerator"
	DeviceCPU         Device = "cpu"
)

// acceleratorNodes are device files exposed by GPU drivers (NVIDIA, ROCm).
var acceleratorNodes = []string{"/dev/nvidia0", "/dev/kfd"}

// ParseDevice parses a configured device preference. An empty string means auto.
func ParseDevice(s string) (Device, error) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeviceAuto:
		return DeviceAuto, nil
	case DeviceAccelerator, "gpu", "cuda":
		return DeviceAccelerator, nil
	case DeviceCPU:
		return DeviceCPU, nil
	default:
		return "", fmt.Errorf("%w: unknown device %q", ErrInvalidConfig, s)
	}
}

// ResolveDevice turns a preference into a concrete device. For DeviceAuto the
// probe decides; a nil probe uses DetectAccelerator.
func ResolveDevice(pref Device, probe func() bool) Device {
	switch pref {
	case DeviceAccelerator, DeviceCPU:
		return pref
	}

	if probe == nil {
		probe = DetectAccelerator
	}
	if probe() {
		return DeviceAccelerator
	}
	return DeviceCPU
}

// DetectAccelerator reports whether a GPU appears to be available to this
// process, either through CUDA_VISIBLE_DEVICES or a driver device node.
func DetectAccelerator() bool {
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok {
		v = strings.TrimSpace(v)
		return v != "" && v != "-1" && !strings.EqualFold(v, "none")
	}

	for _, node := range acceleratorNodes {
		if _, err := os.Stat(node); err == nil {
			return true
		}
	}
	return false
}
