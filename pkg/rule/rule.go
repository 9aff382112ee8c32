package rule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkdeck/display-automation/pkg/action"
	"github.com/inkdeck/display-automation/pkg/condition"
	"gopkg.in/yaml.v3"
)

// RepeatPolicy controls how the scheduler re-arms a rule after an
// execution attempt.
type RepeatPolicy string

const (
	// RepeatContinuous rules are evaluated on every poll tick.
	RepeatContinuous RepeatPolicy = "continuous"
	// RepeatOnce rules run a single time and are never rescheduled.
	RepeatOnce RepeatPolicy = "once"
	// RepeatDaily reschedules 24 hours after the last attempt.
	RepeatDaily RepeatPolicy = "daily"
	// RepeatWeekly reschedules 7 days after the last attempt.
	RepeatWeekly RepeatPolicy = "weekly"
	// RepeatMonthly reschedules 30 days after the last attempt. This is
	// a fixed offset, not calendar arithmetic.
	RepeatMonthly RepeatPolicy = "monthly"
	// RepeatInterval reschedules after the rule's own Interval.
	RepeatInterval RepeatPolicy = "interval"
)

// Valid reports whether the policy is one of the known values. The
// empty policy is treated as continuous.
func (p RepeatPolicy) Valid() bool {
	switch p {
	case "", RepeatContinuous, RepeatOnce, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatInterval:
		return true
	default:
		return false
	}
}

// Rule is a named bundle of AND-combined conditions and ordered
// actions. IDs are generated at creation and immutable afterwards; all
// mutation goes through the store with replace-on-write semantics.
type Rule struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Conditions  []condition.Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Actions     []action.Action       `json:"actions" yaml:"actions"`
	Enabled     bool                  `json:"enabled" yaml:"enabled"`
	Repeat      RepeatPolicy          `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Interval    time.Duration         `json:"interval,omitempty" yaml:"interval,omitempty"`
	NextRun     time.Time             `json:"next_run,omitempty" yaml:"-"`
	CreatedAt   time.Time             `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time             `json:"updated_at" yaml:"-"`
}

// NewRule creates an enabled continuous rule with a generated ID.
func NewRule(name string) Rule {
	now := time.Now()
	return Rule{
		ID:        uuid.NewString(),
		Name:      name,
		Enabled:   true,
		Repeat:    RepeatContinuous,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Scheduled reports whether the rule runs on its own schedule rather
// than on every tick.
func (r Rule) Scheduled() bool {
	switch r.Repeat {
	case "", RepeatContinuous:
		return false
	default:
		return true
	}
}

// Clone returns a deep copy. Stored rules are cloned on the way in and
// out of the store so that callers can never mutate shared state.
func (r Rule) Clone() Rule {
	out := r

	if r.Conditions != nil {
		out.Conditions = make([]condition.Condition, len(r.Conditions))
		for i, c := range r.Conditions {
			c.Parameters = cloneParams(c.Parameters)
			out.Conditions[i] = c
		}
	}

	if r.Actions != nil {
		out.Actions = make([]action.Action, len(r.Actions))
		for i, a := range r.Actions {
			a.Parameters = cloneParams(a.Parameters)
			out.Actions[i] = a
		}
	}

	return out
}

// UnmarshalYAML decodes a rule from a ruleset file. Intervals are
// written as duration strings ("90m", "1h"), not nanoseconds.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ID          string                `yaml:"id"`
		Name        string                `yaml:"name"`
		Description string                `yaml:"description"`
		Conditions  []condition.Condition `yaml:"conditions"`
		Actions     []action.Action       `yaml:"actions"`
		Enabled     bool                  `yaml:"enabled"`
		Repeat      RepeatPolicy          `yaml:"repeat"`
		Interval    string                `yaml:"interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	r.ID = raw.ID
	r.Name = raw.Name
	r.Description = raw.Description
	r.Conditions = raw.Conditions
	r.Actions = raw.Actions
	r.Enabled = raw.Enabled
	r.Repeat = raw.Repeat

	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", raw.Interval, err)
		}
		r.Interval = d
	}
	return nil
}

func cloneParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// ExecutionRecord is one entry of the execution history ring.
type ExecutionRecord struct {
	RuleID    string    `json:"rule_id"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}
