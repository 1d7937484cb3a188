package ber

import "fmt"

// Rule tells the decoder how to interpret the content of a tag.
type Rule int

const (
	// RuleBoolean decodes one content byte, non-zero meaning TRUE.
	RuleBoolean Rule = iota + 1
	// RuleInteger decodes content as an unsigned magnitude into an Integer.
	RuleInteger
	// RuleString keeps the content verbatim as an IdentifiedString.
	RuleString
	// RuleSequence decodes the content as nested TLVs.
	RuleSequence
	// RuleNull requires empty content.
	RuleNull
	// RuleOID decodes an object identifier.
	RuleOID
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleBoolean:
		return "boolean"
	case RuleInteger:
		return "integer"
	case RuleString:
		return "string"
	case RuleSequence:
		return "sequence"
	case RuleNull:
		return "null"
	case RuleOID:
		return "oid"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule returns the rule named by name, as printed by Rule.String.
func ParseRule(name string) (Rule, error) {
	for r := RuleBoolean; r <= RuleOID; r++ {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// constructed reports the tag form a rule applies to.
func (r Rule) constructed() bool {
	return r == RuleSequence
}

func (r Rule) valid() bool {
	return r >= RuleBoolean && r <= RuleOID
}

// SyntaxEntry maps a non-universal tag to a decode rule. The tag form is
// implied by the rule: RuleSequence entries match constructed tags, all
// others match primitive tags.
type SyntaxEntry struct {
	Class  Class
	Number uint32
	Rule   Rule
}

type syntaxKey struct {
	class       Class
	number      uint32
	constructed bool
}

// Syntax is an immutable table interpreting APPLICATION, CONTEXT and
// PRIVATE tags during decoding. A nil *Syntax is valid and empty.
//
// A Syntax may be shared between goroutines: no method modifies it.
type Syntax struct {
	rules map[syntaxKey]Rule
}

// NewSyntax builds a table from entries. Later entries for the same tag
// replace earlier ones.
func NewSyntax(entries ...SyntaxEntry) (*Syntax, error) {
	s := &Syntax{rules: make(map[syntaxKey]Rule, len(entries))}
	for _, e := range entries {
		if err := s.put(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSyntax is like NewSyntax but panics on an invalid entry. It is meant
// for package-level tables.
func MustSyntax(entries ...SyntaxEntry) *Syntax {
	s, err := NewSyntax(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Syntax) put(e SyntaxEntry) error {
	if e.Class == ClassUniversal {
		return fmt.Errorf("%w: number %d", ErrUniversalOverride, e.Number)
	}
	switch e.Class {
	case ClassApplication, ClassContextSpecific, ClassPrivate:
	default:
		return fmt.Errorf("ber: invalid tag class %s", e.Class)
	}
	if !e.Rule.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownRule, e.Rule)
	}
	key := syntaxKey{class: e.Class, number: e.Number, constructed: e.Rule.constructed()}
	s.rules[key] = e.Rule
	return nil
}

// Register returns a new table containing the entries of s plus
// (class, number) -> rule. s itself is left unchanged.
func (s *Syntax) Register(class Class, number uint32, rule Rule) (*Syntax, error) {
	return s.With(SyntaxEntry{Class: class, Number: number, Rule: rule})
}

// With returns a new table containing the entries of s plus entries.
func (s *Syntax) With(entries ...SyntaxEntry) (*Syntax, error) {
	out := &Syntax{rules: make(map[syntaxKey]Rule, s.Len()+len(entries))}
	if s != nil {
		for k, r := range s.rules {
			out.rules[k] = r
		}
	}
	for _, e := range entries {
		if err := out.put(e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Lookup returns the rule registered for tag, if any.
func (s *Syntax) Lookup(tag Tag) (Rule, bool) {
	if s == nil {
		return 0, false
	}
	r, ok := s.rules[syntaxKey{class: tag.Class, number: tag.Number, constructed: tag.Constructed}]
	return r, ok
}

// Len returns the number of entries.
func (s *Syntax) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// universalRule returns the built-in interpretation of a universal tag.
func universalRule(tag Tag) (Rule, bool) {
	if tag.Constructed {
		switch tag.Number {
		case TagSequence, TagSet:
			return RuleSequence, true
		}
		return 0, false
	}
	switch tag.Number {
	case TagBoolean:
		return RuleBoolean, true
	case TagInteger, TagEnumerated:
		return RuleInteger, true
	case TagNull:
		return RuleNull, true
	case TagOID:
		return RuleOID, true
	case TagOctetString, TagUTF8String, TagRelativeOID, TagPrintableString, TagIA5String:
		return RuleString, true
	}
	return 0, false
}

// resolve picks the rule for tag: universal tags use the built-in rules,
// other classes consult s. Tags with no rule decode as sequences when
// constructed and as opaque strings when primitive.
func (s *Syntax) resolve(tag Tag) Rule {
	var (
		r  Rule
		ok bool
	)
	if tag.Class == ClassUniversal {
		r, ok = universalRule(tag)
	} else {
		r, ok = s.Lookup(tag)
	}
	if ok {
		return r
	}
	if tag.Constructed {
		return RuleSequence
	}
	return RuleString
}
