package ruleset

import (
	"fmt"
	"strings"

	"github.com/inkdeck/display-automation/pkg/action"
	"github.com/inkdeck/display-automation/pkg/condition"
)

// ValidateWiring validates that every enabled rule in the ruleset can
// actually run against the given evaluator and dispatcher. It checks
// that:
// - All condition kinds used by enabled rules have evaluator functions
// - All action kinds used by enabled rules have dispatch handlers
//
// This catches common mistakes like:
// - Forgetting to register a custom condition or action kind
// - Typos in kind names in the ruleset file
func ValidateWiring(evaluator *condition.Evaluator, dispatcher *action.Dispatcher, config *Config) error {
	var errors []string

	for _, r := range config.Rules {
		if !r.Enabled {
			continue
		}

		for _, c := range r.Conditions {
			if !evaluator.Supports(c.Kind) {
				errors = append(errors, fmt.Sprintf("rule '%s' uses unknown condition kind '%s'", r.ID, c.Kind))
			}
		}

		for _, a := range r.Actions {
			if !dispatcher.Supports(a.Kind) {
				errors = append(errors, fmt.Sprintf("rule '%s' uses unknown action kind '%s'", r.ID, a.Kind))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("ruleset wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
