package ldap

import "github.com/oba-ldap/bercodec/internal/ber"

// Syntax interprets the APPLICATION and context-specific tags of RFC 4511
// messages. Tags it does not list fall back to the codec defaults.
var Syntax = ber.MustSyntax(syntaxEntries()...)

func syntaxEntries() []ber.SyntaxEntry {
	var entries []ber.SyntaxEntry
	add := func(class ber.Class, rule ber.Rule, numbers ...uint32) {
		for _, n := range numbers {
			entries = append(entries, ber.SyntaxEntry{Class: class, Number: n, Rule: rule})
		}
	}

	// protocolOp choices
	add(ber.ClassApplication, ber.RuleSequence,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 19, 23, 24, 25)
	add(ber.ClassApplication, ber.RuleNull, ApplicationUnbindRequest)
	add(ber.ClassApplication, ber.RuleString, ApplicationDelRequest)
	add(ber.ClassApplication, ber.RuleInteger, ApplicationAbandonRequest)

	// Authentication choices, filters, referrals and response extras
	add(ber.ClassContextSpecific, ber.RuleString, 0, 1, 2, 3, 4, 7)
	add(ber.ClassContextSpecific, ber.RuleInteger, 10)
	add(ber.ClassContextSpecific, ber.RuleSequence, 0, 1, 2, 3, 4, 5, 6, 7, 9)

	return entries
}
