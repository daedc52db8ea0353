package config

// LocalConfig represents the per-checkout council settings in
// .council/config.local.json
type LocalConfig struct {
	Caller string `json:"caller,omitempty"`
	Output string `json:"output,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyCaller ConfigKey = "caller"
	ConfigKeyOutput ConfigKey = "output"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Output: string(OutputTable),
	}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyCaller,
		ConfigKeyOutput,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "as" && validKey == ConfigKeyCaller) {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "as" -> "caller")
func NormalizeConfigKey(key string) ConfigKey {
	if key == "as" {
		return ConfigKeyCaller
	}
	return ConfigKey(key)
}
