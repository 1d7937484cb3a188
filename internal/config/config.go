package config

// Config holds the complete berdump configuration.
type Config struct {
	Logging LogConfig     `yaml:"logging"`
	Decode  DecodeConfig  `yaml:"decode"`
	Syntax  []SyntaxEntry `yaml:"syntax"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DecodeConfig holds the defaults of the decode command.
type DecodeConfig struct {
	Format string `yaml:"format"`
	LDAP   bool   `yaml:"ldap"`
}

// SyntaxEntry maps one tag to a decode rule. In YAML:
//
//	class: context
//	number: 3
//	rule: integer
type SyntaxEntry struct {
	Class  string `yaml:"class"`
	Number uint32 `yaml:"number"`
	Rule   string `yaml:"rule"`
}
