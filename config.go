/*
File Name:  config.go
Package:    airx

Configuration loading, grounded on the teacher's Config.go: a YAML file
with a //go:embed-ed fallback used whenever the file is absent or empty.
*/
package airx

import (
	_ "embed" // required for embedding the default config
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current module version string. airx_version does not
// report it; that entry point returns its own numeric build tag.
const Version = "0.1"

// CompatibilityNumber changes whenever the wire protocol breaks
// compatibility with prior releases, reported by airx_compatibility_number.
const CompatibilityNumber = 1

//go:embed config_default.yaml
var defaultConfigData []byte

// Config holds every tunable parameter of one AirX instance: the
// ServiceConfig fields spec.md §3 names, plus ambient logging/webapi
// settings the teacher's Config.go carries alongside them.
type Config struct {
	LogFile string `yaml:"LogFile"`

	HostName string `yaml:"HostName"`

	DiscoveryServerPort uint16 `yaml:"DiscoveryServerPort"`
	DiscoveryClientPort uint16 `yaml:"DiscoveryClientPort"`
	DataPort            uint16 `yaml:"DataPort"`
	GroupID             uint32 `yaml:"GroupID"`

	// WebapiListen is a list of IP:Port addresses for the optional
	// status/control surface (§4.11). Empty disables it.
	WebapiListen []string `yaml:"WebapiListen"`
}

// DefaultConfig returns the zero-friendly default configuration, the same
// values baked into config_default.yaml.
func DefaultConfig() (cfg Config) {
	yaml.Unmarshal(defaultConfigData, &cfg)
	return cfg
}

// LoadConfig reads filename as YAML into out. If the file does not exist
// or is empty, the embedded default is used instead, following the
// teacher's stat-then-embed-fallback pattern. The returned status is an
// ExitX code; anything other than ExitSuccess indicates a fatal failure.
func LoadConfig(filename string, out *Config) (status int, err error) {
	var data []byte

	stats, statErr := os.Stat(filename)
	switch {
	case statErr != nil && os.IsNotExist(statErr):
		data = defaultConfigData
	case statErr != nil:
		return ExitErrorConfigAccess, statErr
	case stats.Size() == 0:
		data = defaultConfigData
	default:
		if data, err = os.ReadFile(filename); err != nil {
			return ExitErrorConfigRead, err
		}
	}

	if err = yaml.Unmarshal(data, out); err != nil {
		return ExitErrorConfigParse, err
	}

	return ExitSuccess, nil
}

// Save writes cfg to filename as YAML.
func (cfg Config) Save(filename string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
