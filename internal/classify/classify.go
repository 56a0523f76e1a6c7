// Package classify assigns display styles to incoming lines by matching
// them against an ordered set of pattern rules.
package classify

import (
	"fmt"
	"regexp"
)

// StyleID identifies a style by the index of the rule that produced it.
type StyleID int

// NoStyle marks a line no rule matched.
const NoStyle StyleID = -1

// Spec declares a single rule before compilation.
type Spec struct {
	// Name labels the rule, e.g. "errors".
	Name string

	// Pattern is an uncompiled regular expression. Matching is
	// case-insensitive over the whole line.
	Pattern string
}

// Rule is a compiled pattern with its position in the declared order.
type Rule struct {
	Name    string
	pattern *regexp.Regexp
}

// Classifier evaluates rules in declared order; the first match wins.
// A Classifier is immutable after construction and safe for concurrent
// use. Swap in a new one to change the rule set.
type Classifier struct {
	rules []Rule
}

// New compiles the given specs. Patterns are compiled once, here, not
// per line. A pattern that fails to compile fails the whole set.
func New(specs []Spec) (*Classifier, error) {
	c := &Classifier{rules: make([]Rule, 0, len(specs))}
	for _, s := range specs {
		re, err := regexp.Compile("(?i)" + s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("classify: rule %q: %w", s.Name, err)
		}
		c.rules = append(c.rules, Rule{Name: s.Name, pattern: re})
	}
	return c, nil
}

// Classify returns the StyleID of the first rule matching line, in
// declared order, or NoStyle if none match.
func (c *Classifier) Classify(line string) StyleID {
	for i, r := range c.rules {
		if r.pattern.MatchString(line) {
			return StyleID(i)
		}
	}
	return NoStyle
}

// Rules returns the compiled rules in declared order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len returns the number of rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}
