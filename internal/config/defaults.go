package config

// DefaultConfig returns a Config with the values berdump uses when no
// configuration file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Decode: DecodeConfig{
			Format: "tree",
			LDAP:   false,
		},
	}
}
