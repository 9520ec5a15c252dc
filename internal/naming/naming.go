// Package naming derives test-method identifiers from an action, an
// optional scenario and an optional expected outcome. Three fixed
// conventions are available; all of them are pure functions over their
// inputs.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrBlankArgument is returned when a required naming argument is empty
// or whitespace. Callers must supply every part explicitly; there is no
// silent defaulting.
var ErrBlankArgument = errors.New("argument must not be blank")

// Style selects one of the fixed naming conventions.
type Style string

const (
	// StyleCamel produces testAction, testActionWhenScenario,
	// testActionWhenScenarioThenOutcome.
	StyleCamel Style = "camel"
	// StyleSnake produces action, action_scenario, action_scenario_outcome.
	StyleSnake Style = "snake"
	// StyleGWT produces whenAction, givenScenario_whenAction,
	// givenScenario_whenAction_thenOutcome.
	StyleGWT Style = "given-when-then"
)

// Styles lists every supported style in a stable order.
func Styles() []Style {
	return []Style{StyleCamel, StyleSnake, StyleGWT}
}

// ParseStyle converts a selector string into a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleCamel:
		return StyleCamel, nil
	case StyleSnake:
		return StyleSnake, nil
	case StyleGWT:
		return StyleGWT, nil
	}
	return "", fmt.Errorf("unknown naming style %q (valid: camel, snake, given-when-then)", s)
}

// Strategy converts action/scenario/outcome words into a test-method
// identifier. Every argument must be non-blank.
type Strategy interface {
	// Name derives an identifier from the action alone.
	Name(action string) (string, error)
	// NameForScenario derives an identifier from an action and the
	// scenario under test.
	NameForScenario(action, scenario string) (string, error)
	// NameForOutcome derives an identifier from an action, a scenario
	// and the expected outcome.
	NameForOutcome(action, scenario, outcome string) (string, error)
}

// ForStyle returns the Strategy implementing the given style.
func ForStyle(s Style) (Strategy, error) {
	switch s {
	case StyleCamel:
		return CamelStrategy{}, nil
	case StyleSnake:
		return SnakeStrategy{}, nil
	case StyleGWT:
		return GWTStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown naming style %q", string(s))
}

// CamelStrategy joins capitalized parts behind a "test" prefix:
// testFindByIdWhenUserMissingThenReturnsEmpty.
type CamelStrategy struct{}

func (CamelStrategy) Name(action string) (string, error) {
	if err := requireArgs(action); err != nil {
		return "", err
	}
	return "test" + pascal(action), nil
}

func (CamelStrategy) NameForScenario(action, scenario string) (string, error) {
	if err := requireArgs(action, scenario); err != nil {
		return "", err
	}
	return "test" + pascal(action) + "When" + pascal(scenario), nil
}

func (CamelStrategy) NameForOutcome(action, scenario, outcome string) (string, error) {
	if err := requireArgs(action, scenario, outcome); err != nil {
		return "", err
	}
	return "test" + pascal(action) + "When" + pascal(scenario) + "Then" + pascal(outcome), nil
}

// SnakeStrategy joins lower-camel parts with underscores:
// findById_userMissing_returnsEmpty.
type SnakeStrategy struct{}

func (SnakeStrategy) Name(action string) (string, error) {
	if err := requireArgs(action); err != nil {
		return "", err
	}
	return identifier(lowerCamel(action)), nil
}

func (SnakeStrategy) NameForScenario(action, scenario string) (string, error) {
	if err := requireArgs(action, scenario); err != nil {
		return "", err
	}
	return identifier(lowerCamel(action) + "_" + lowerCamel(scenario)), nil
}

func (SnakeStrategy) NameForOutcome(action, scenario, outcome string) (string, error) {
	if err := requireArgs(action, scenario, outcome); err != nil {
		return "", err
	}
	return identifier(lowerCamel(action) + "_" + lowerCamel(scenario) + "_" + lowerCamel(outcome)), nil
}

// GWTStrategy phrases the identifier as given/when/then segments:
// givenUserMissing_whenFindById_thenReturnsEmpty.
type GWTStrategy struct{}

func (GWTStrategy) Name(action string) (string, error) {
	if err := requireArgs(action); err != nil {
		return "", err
	}
	return "when" + pascal(action), nil
}

func (GWTStrategy) NameForScenario(action, scenario string) (string, error) {
	if err := requireArgs(action, scenario); err != nil {
		return "", err
	}
	return "given" + pascal(scenario) + "_when" + pascal(action), nil
}

func (GWTStrategy) NameForOutcome(action, scenario, outcome string) (string, error) {
	if err := requireArgs(action, scenario, outcome); err != nil {
		return "", err
	}
	return "given" + pascal(scenario) + "_when" + pascal(action) + "_then" + pascal(outcome), nil
}

// requireArgs rejects blank arguments in order, naming the position of
// the offender.
func requireArgs(args ...string) error {
	labels := [...]string{"action", "scenario", "outcome"}
	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%s: %w", labels[i], ErrBlankArgument)
		}
	}
	return nil
}

// words splits free-form input into identifier-safe word fragments,
// dropping any non-alphanumeric characters.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// pascal upper-cases the first rune of every word and concatenates:
// "user missing" -> "UserMissing", "findById" -> "FindById".
func pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// lowerCamel is pascal with a lower-case first rune.
func lowerCamel(s string) string {
	p := pascal(s)
	if p == "" {
		return p
	}
	r := []rune(p)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// identifier guards against a name that would not be a legal Java
// identifier (a leading digit after sanitization).
func identifier(s string) string {
	if s == "" {
		return s
	}
	first := []rune(s)[0]
	if unicode.IsLetter(first) || first == '_' {
		return s
	}
	return "test" + s
}
