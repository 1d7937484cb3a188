package config

import (
	"fmt"
	"strings"

	"github.com/oba-ldap/bercodec/internal/ber"
)

var classNames = map[string]ber.Class{
	"application": ber.ClassApplication,
	"context":     ber.ClassContextSpecific,
	"private":     ber.ClassPrivate,
}

// toBER converts the entry into its codec form.
func (e SyntaxEntry) toBER() (ber.SyntaxEntry, error) {
	class, ok := classNames[strings.ToLower(e.Class)]
	if !ok {
		return ber.SyntaxEntry{}, fmt.Errorf("unknown class %q (want application, context or private)", e.Class)
	}
	rule, err := ber.ParseRule(strings.ToLower(e.Rule))
	if err != nil {
		return ber.SyntaxEntry{}, err
	}
	return ber.SyntaxEntry{Class: class, Number: e.Number, Rule: rule}, nil
}

// BuildSyntax returns base extended with the configured entries. Entries
// replace base rules for the same tag. base may be nil.
func (c *Config) BuildSyntax(base *ber.Syntax) (*ber.Syntax, error) {
	if len(c.Syntax) == 0 {
		return base, nil
	}
	entries := make([]ber.SyntaxEntry, 0, len(c.Syntax))
	for i, e := range c.Syntax {
		be, err := e.toBER()
		if err != nil {
			return nil, fmt.Errorf("syntax[%d]: %w", i, err)
		}
		entries = append(entries, be)
	}
	return base.With(entries...)
}
