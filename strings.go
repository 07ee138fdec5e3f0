package valido

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode/utf8"
)

// StringValidator accepts string values, optionally bounded in rune length.
type StringValidator struct {
	base
	minLength int
	maxLength int
}

// String accepts values of string kind. Length bounds attach via MinLength and
// MaxLength.
func String() *StringValidator {
	s := &StringValidator{minLength: -1, maxLength: -1}
	s.name = "string"
	return s
}

// MinLength rejects strings shorter than n runes.
func (s *StringValidator) MinLength(n int) *StringValidator {
	s.minLength = n
	return s
}

// MaxLength rejects strings longer than n runes.
func (s *StringValidator) MaxLength(n int) *StringValidator {
	s.maxLength = n
	return s
}

func (s *StringValidator) Validate(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, s.mustBe(s.name, value)
	}
	n := utf8.RuneCountInString(str)
	if s.minLength >= 0 && n < s.minLength {
		return nil, s.invalid(fmt.Sprintf("must be at least %d characters long", s.minLength), value)
	}
	if s.maxLength >= 0 && n > s.maxLength {
		return nil, s.invalid(fmt.Sprintf("must be at most %d characters long", s.maxLength), value)
	}
	return str, nil
}

func (s *StringValidator) HumanizedName() string { return s.name }

type patternValidator struct {
	base
	source   string
	anchored *regexp.Regexp
}

// Pattern accepts strings matching re from their start (the end is left open,
// like an anchored prefix match).
func Pattern(re *regexp.Regexp) Validator {
	src := re.String()
	return &patternValidator{
		source:   src,
		anchored: regexp.MustCompile(`\A(?:` + src + `)`),
	}
}

func (p *patternValidator) Validate(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, p.mustBe(p.typeNames().NameForKind(reflect.String), value)
	}
	if !p.anchored.MatchString(str) {
		return nil, p.invalid("must match "+p.HumanizedName(), value)
	}
	return str, nil
}

func (p *patternValidator) HumanizedName() string {
	return "pattern " + p.source
}

// patternFactory parses a compiled regexp as a Pattern validator.
func patternFactory(schema any) Validator {
	if re, ok := schema.(*regexp.Regexp); ok {
		return Pattern(re)
	}
	return nil
}
