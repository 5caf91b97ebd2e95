package utils

import (
	"fmt"
	"strings"

	"github.com/notargets/gocca"
)

// CreateDevice opens the device described by props. An empty props string
// or "none" means no accelerator and returns a nil device.
func CreateDevice(props string) (*gocca.OCCADevice, error) {
	props = strings.TrimSpace(props)
	if props == "" || strings.EqualFold(props, "none") {
		return nil, nil
	}
	device, err := gocca.NewDevice(props)
	if err != nil {
		return nil, fmt.Errorf("failed to create device %s: %w", props, err)
	}
	return device, nil
}

// CreateTestDevice creates a Device for testing, preferring parallel backends
func CreateTestDevice() *gocca.OCCADevice {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			fmt.Printf("Created %s Device\n", device.Mode())
			return device
		}
	}

	panic("Failed to create any Device")
}
