package simbus

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topology is the root of a fixture file.
type Topology struct {
	Devices []Device `yaml:"devices"`
}

// Device is one simulated 1-Wire device.
type Device struct {
	ID         string `yaml:"id"`
	Type       string `yaml:"type"`
	DeviceType string `yaml:"device_type,omitempty"`

	// Pages maps a DS2438 page number to its content as hex bytes.
	Pages map[int]string `yaml:"pages,omitempty"`

	// Associated ids are written to the association pages of a DS2438.
	Associated []string `yaml:"associated,omitempty"`

	Main     []Device `yaml:"main,omitempty"`
	Aux      []Device `yaml:"aux,omitempty"`
	FailMain bool     `yaml:"fail_main,omitempty"`
	FailAux  bool     `yaml:"fail_aux,omitempty"`
}

func (d Device) hasBranches() bool {
	return strings.EqualFold(strings.TrimSpace(d.Type), "DS2409") ||
		len(d.Main) > 0 || len(d.Aux) > 0 || d.FailMain || d.FailAux
}

// Parse decodes a YAML topology.
func Parse(data []byte) (*Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	return &t, nil
}

// LoadFile reads a topology file and builds its bus.
func LoadFile(path string) (*Bus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bus, err := New(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bus, nil
}
