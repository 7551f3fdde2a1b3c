package css

import (
	"slices"
	"strings"
)

// Verdict of a single validation strategy.
type Verdict int

const (
	Unknown Verdict = iota
	Accept
	Reject
)

// ValidationStrategy decides on admissibility of a value for a hyphenated
// property name. Unknown passes the decision to the next strategy.
type ValidationStrategy interface {
	Validate(property, value string) Verdict
}

// ValidationFunc adapts a function to ValidationStrategy.
type ValidationFunc func(property, value string) Verdict

func (f ValidationFunc) Validate(property, value string) Verdict {
	return f(property, value)
}

// Validator runs strategies in order, first definite verdict wins. When
// nobody knows, the value is accepted.
type Validator struct {
	strategies []ValidationStrategy
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*validatorOptions)

type validatorOptions struct {
	native func(property, value string) error
}

// WithNativeValidator plugs in an external validator which has priority over
// grammar matching. It returns an error when value is not admissible.
func WithNativeValidator(fn func(property, value string) error) ValidatorOption {
	return func(o *validatorOptions) {
		o.native = fn
	}
}

// NewValidator creates validator with allow-list, optional native and
// grammar strategies.
func NewValidator(opts ...ValidatorOption) *Validator {
	var o validatorOptions
	for _, opt := range opts {
		opt(&o)
	}

	strategies := []ValidationStrategy{ValidationFunc(allowListStrategy)}
	if o.native != nil {
		strategies = append(strategies, nativeStrategy(o.native))
	}
	strategies = append(strategies, ValidationFunc(grammarStrategy))
	return &Validator{strategies: strategies}
}

// NewValidatorWith creates validator from explicit strategies.
func NewValidatorWith(strategies ...ValidationStrategy) *Validator {
	return &Validator{strategies: strategies}
}

// IsValid reports whether value is admissible for property. Property may be
// camel cased or hyphenated.
func (v *Validator) IsValid(property, value string) bool {
	property = HyphenateProperty(property)
	for _, s := range v.strategies {
		switch s.Validate(property, value) {
		case Accept:
			return true
		case Reject:
			return false
		}
	}
	return true
}

func allowListStrategy(property, value string) Verdict {
	if property == "transition-behavior" {
		return Accept
	}
	keywords, ok := allowListed[property]
	if !ok {
		return Unknown
	}
	if slices.Contains(keywords, strings.ToLower(strings.TrimSpace(value))) {
		return Accept
	}
	return Reject
}

func nativeStrategy(fn func(property, value string) error) ValidationFunc {
	return func(property, value string) Verdict {
		if err := fn(property, value); err != nil {
			return Reject
		}
		return Accept
	}
}

func grammarStrategy(property, value string) Verdict {
	root, err := ParseValue(value)
	if err != nil {
		return Reject
	}
	if _, ok := compiledProperties[property]; !ok {
		return Unknown
	}
	if usesSubstitution(root) {
		return Accept
	}
	if matched, _ := MatchGrammar(property, root.Significant()); matched {
		return Accept
	}
	return Reject
}

// usesSubstitution reports whether tree contains var(), env() or attr() which
// can only be resolved at computed value time.
func usesSubstitution(n *Node) bool {
	switch n.FunctionName() {
	case "var", "env", "attr":
		return true
	}
	for _, c := range n.Children {
		if usesSubstitution(c) {
			return true
		}
	}
	return false
}
