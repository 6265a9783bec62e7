package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Destination is one transfer target a player can move to.
type Destination struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required,hostname|ip"`
	Port    int    `json:"port" validate:"required,min=1,max=65535"`
}

// ServerList is the set of configured transfer destinations.
type ServerList struct {
	Servers []Destination `json:"servers" validate:"dive"`
}

// Find returns the destination with the given name, if configured.
func (l *ServerList) Find(name string) (Destination, bool) {
	for _, d := range l.Servers {
		if d.Name == name {
			return d, true
		}
	}
	return Destination{}, false
}

// LoadServerList reads and validates the transfer destination file. A
// missing file yields an empty list rather than an error; transfers are
// simply unavailable until destinations are configured.
func LoadServerList(path string) (*ServerList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ServerList{}, nil
		}
		return nil, fmt.Errorf("failed to read server list %s: %w", path, err)
	}

	var list ServerList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse server list %s: %w", path, err)
	}

	validate := validator.New()
	for i, d := range list.Servers {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("invalid server entry %d (%s): %w", i, d.Name, err)
		}
	}

	return &list, nil
}
