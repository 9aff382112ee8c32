package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/inkdeck/display-automation/pkg/action"
	"github.com/inkdeck/display-automation/pkg/condition"
	"github.com/inkdeck/display-automation/pkg/device"
	"github.com/inkdeck/display-automation/pkg/rule"
)

func testSetup(t *testing.T) (*rule.Engine, *Poller, *int, *time.Time) {
	t.Helper()

	executions := 0
	dispatcher := action.NewDispatcher(nil)
	dispatcher.Register("count", func(ctx context.Context, act action.Action, ctrl action.DeviceController) error {
		executions++
		return nil
	})

	clock := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	engine := rule.NewEngine(rule.NewStore(), condition.NewEvaluator(), dispatcher, device.NewStaticProvider(device.Snapshot{}), nil)

	poller := NewPoller(engine, time.Minute)
	poller.now = func() time.Time { return clock }

	return engine, poller, &executions, &clock
}

func countRule(id string, repeat rule.RepeatPolicy, due time.Time) rule.Rule {
	return rule.Rule{
		ID:      id,
		Enabled: true,
		Repeat:  repeat,
		NextRun: due,
		Actions: []action.Action{{Kind: "count"}},
	}
}

func TestPoller_ContinuousRuleRunsEveryTick(t *testing.T) {
	engine, poller, executions, _ := testSetup(t)
	engine.CreateRule(context.Background(), countRule("c1", rule.RepeatContinuous, time.Time{}))

	poller.Tick(context.Background())
	poller.Tick(context.Background())

	if *executions != 2 {
		t.Errorf("executions = %d, expected 2", *executions)
	}
}

func TestPoller_OnceRuleNeverReexecutes(t *testing.T) {
	engine, poller, executions, clock := testSetup(t)
	engine.CreateRule(context.Background(), countRule("o1", rule.RepeatOnce, *clock))

	if n := poller.Tick(context.Background()); n != 1 {
		t.Fatalf("first Tick() executed %d rules, expected 1", n)
	}

	// Even far in the future, a second tick must not re-execute it.
	*clock = clock.Add(365 * 24 * time.Hour)
	if n := poller.Tick(context.Background()); n != 0 {
		t.Errorf("second Tick() executed %d rules, expected 0", n)
	}
	if *executions != 1 {
		t.Errorf("executions = %d, expected 1", *executions)
	}

	r, _ := engine.GetRule("o1")
	if !r.NextRun.IsZero() {
		t.Errorf("NextRun = %v, expected zero (unreachable)", r.NextRun)
	}
}

func TestPoller_DailyRuleReschedules(t *testing.T) {
	engine, poller, executions, clock := testSetup(t)
	engine.CreateRule(context.Background(), countRule("d1", rule.RepeatDaily, *clock))

	poller.Tick(context.Background())
	if *executions != 1 {
		t.Fatalf("executions = %d, expected 1", *executions)
	}

	r, _ := engine.GetRule("d1")
	want := clock.Add(24 * time.Hour)
	if !r.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, expected %v", r.NextRun, want)
	}

	// Not yet due.
	*clock = clock.Add(23 * time.Hour)
	poller.Tick(context.Background())
	if *executions != 1 {
		t.Errorf("executions = %d before due time, expected 1", *executions)
	}

	// Due again.
	*clock = clock.Add(2 * time.Hour)
	poller.Tick(context.Background())
	if *executions != 2 {
		t.Errorf("executions = %d after due time, expected 2", *executions)
	}
}

func TestPoller_NoCatchUpForMissedIntervals(t *testing.T) {
	engine, poller, executions, clock := testSetup(t)
	engine.CreateRule(context.Background(), countRule("d1", rule.RepeatDaily, *clock))

	poller.Tick(context.Background())

	// Sleep through five due intervals; only one execution fires on the
	// next tick.
	*clock = clock.Add(5 * 24 * time.Hour)
	poller.Tick(context.Background())

	if *executions != 2 {
		t.Errorf("executions = %d, expected 2 (missed intervals skipped)", *executions)
	}
}

func TestPoller_DisabledRulesSkipped(t *testing.T) {
	engine, poller, executions, _ := testSetup(t)
	r := countRule("x1", rule.RepeatContinuous, time.Time{})
	r.Enabled = false
	engine.CreateRule(context.Background(), r)

	poller.Tick(context.Background())
	if *executions != 0 {
		t.Errorf("executions = %d, expected 0 for disabled rule", *executions)
	}
}

func TestNext_Offsets(t *testing.T) {
	last := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    rule.Rule
		want time.Time
	}{
		{"daily", rule.Rule{Repeat: rule.RepeatDaily}, last.Add(24 * time.Hour)},
		{"weekly", rule.Rule{Repeat: rule.RepeatWeekly}, last.Add(7 * 24 * time.Hour)},
		// Monthly is a flat +30 days, not "same day next month".
		{"monthly", rule.Rule{Repeat: rule.RepeatMonthly}, last.Add(30 * 24 * time.Hour)},
		{"interval", rule.Rule{Repeat: rule.RepeatInterval, Interval: 90 * time.Minute}, last.Add(90 * time.Minute)},
		{"interval without duration", rule.Rule{Repeat: rule.RepeatInterval}, time.Time{}},
		{"once", rule.Rule{Repeat: rule.RepeatOnce}, time.Time{}},
		{"continuous", rule.Rule{Repeat: rule.RepeatContinuous}, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.r, last); !got.Equal(tt.want) {
				t.Errorf("Next() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDue(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    rule.Rule
		want bool
	}{
		{"continuous always due", rule.Rule{Repeat: rule.RepeatContinuous}, true},
		{"empty policy treated as continuous", rule.Rule{}, true},
		{"scheduled due at slot", rule.Rule{Repeat: rule.RepeatDaily, NextRun: now}, true},
		{"scheduled due past slot", rule.Rule{Repeat: rule.RepeatDaily, NextRun: now.Add(-time.Hour)}, true},
		{"scheduled not yet due", rule.Rule{Repeat: rule.RepeatDaily, NextRun: now.Add(time.Minute)}, false},
		{"exhausted once rule never due", rule.Rule{Repeat: rule.RepeatOnce}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Due(tt.r, now); got != tt.want {
				t.Errorf("Due() = %v, expected %v", got, tt.want)
			}
		})
	}
}
