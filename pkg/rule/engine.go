package rule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkdeck/display-automation/pkg/action"
	"github.com/inkdeck/display-automation/pkg/condition"
	"github.com/inkdeck/display-automation/pkg/device"
	"github.com/inkdeck/display-automation/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Repository is the persistence boundary for rules. Implementations
// live in pkg/storage; the engine only needs this surface.
type Repository interface {
	Save(ctx context.Context, r Rule) error
	LoadAll(ctx context.Context) ([]Rule, error)
	Delete(ctx context.Context, id string) error
}

// Engine owns rule CRUD and execution. All operations return booleans
// per the automation contract: callers see "did it happen", never a
// panic. Persistence failures are logged and counted, not raised.
type Engine struct {
	store      *Store
	evaluator  *condition.Evaluator
	dispatcher *action.Dispatcher
	devices    device.Provider
	repo       Repository
}

// NewEngine creates an engine. repo may be nil for a purely in-memory
// engine.
func NewEngine(store *Store, evaluator *condition.Evaluator, dispatcher *action.Dispatcher, devices device.Provider, repo Repository) *Engine {
	return &Engine{
		store:      store,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		devices:    devices,
		repo:       repo,
	}
}

// CreateRule inserts a rule, generating an ID when absent and stamping
// timestamps. ID collisions overwrite silently (last-write-wins).
func (e *Engine) CreateRule(ctx context.Context, r Rule) bool {
	if !r.Repeat.Valid() {
		logrus.Warnf("rejecting rule %q with unknown repeat policy %q", r.Name, r.Repeat)
		return false
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	if r.Scheduled() && r.NextRun.IsZero() {
		r.NextRun = now
	}

	e.store.Put(r)
	e.persist(ctx, r)

	logrus.Infof("created rule %s (%q, repeat=%s, enabled=%v)", r.ID, r.Name, r.Repeat, r.Enabled)
	return true
}

// UpdateRule replaces an existing rule, keeping its ID and creation
// time. Returns false when the rule does not exist.
func (e *Engine) UpdateRule(ctx context.Context, r Rule) bool {
	existing, ok := e.store.Get(r.ID)
	if !ok {
		return false
	}
	if !r.Repeat.Valid() {
		return false
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now()

	e.store.Put(r)
	e.persist(ctx, r)
	return true
}

// DeleteRule removes a rule. Idempotent: deleting an absent id returns
// false.
func (e *Engine) DeleteRule(ctx context.Context, id string) bool {
	if !e.store.Delete(id) {
		return false
	}

	if e.repo != nil {
		if err := e.repo.Delete(ctx, id); err != nil {
			logrus.Errorf("failed to delete rule %s from repository: %v", id, err)
			metrics.PersistenceErrorsTotal.Inc()
		}
	}

	logrus.Infof("deleted rule %s", id)
	return true
}

// EnableRule marks a rule enabled. Returns false when absent.
func (e *Engine) EnableRule(ctx context.Context, id string) bool {
	return e.setEnabled(ctx, id, true)
}

// DisableRule marks a rule disabled. Returns false when absent.
func (e *Engine) DisableRule(ctx context.Context, id string) bool {
	return e.setEnabled(ctx, id, false)
}

func (e *Engine) setEnabled(ctx context.Context, id string, enabled bool) bool {
	r, ok := e.store.Get(id)
	if !ok {
		return false
	}

	r.Enabled = enabled
	r.UpdatedAt = time.Now()
	e.store.Put(r)
	e.persist(ctx, r)
	return true
}

// SetNextRun updates a rule's schedule slot. A zero time means the rule
// is never due again.
func (e *Engine) SetNextRun(ctx context.Context, id string, next time.Time) bool {
	r, ok := e.store.Get(id)
	if !ok {
		return false
	}

	r.NextRun = next
	e.store.Put(r)
	e.persist(ctx, r)
	return true
}

// GetRule returns a copy of a rule.
func (e *Engine) GetRule(id string) (Rule, bool) {
	return e.store.Get(id)
}

// GetRules returns copies of all rules.
func (e *Engine) GetRules() []Rule {
	return e.store.List()
}

// History returns the execution history, oldest first.
func (e *Engine) History() []ExecutionRecord {
	return e.store.History()
}

// HistoryFor returns the execution history for one rule.
func (e *Engine) HistoryFor(id string) []ExecutionRecord {
	return e.store.HistoryFor(id)
}

// ExecuteRule evaluates a rule's conditions against a fresh device
// snapshot and, when all hold, executes its actions in order. Returns
// true only when the rule fired and every action succeeded. Absent or
// disabled rules return false without touching the history; evaluated
// rules always leave a history record.
func (e *Engine) ExecuteRule(ctx context.Context, id string) bool {
	r, ok := e.store.Get(id)
	if !ok {
		logrus.Debugf("rule %s not found", id)
		return false
	}
	if !r.Enabled {
		logrus.Debugf("rule %s is disabled, skipping", id)
		return false
	}

	snap, err := e.devices.Snapshot(ctx)
	if err != nil {
		logrus.Errorf("device snapshot failed for rule %s: %v", id, err)
		e.record(id, false)
		metrics.RuleEvaluationsTotal.WithLabelValues(id, "error").Inc()
		return false
	}

	if !e.evaluator.EvaluateAll(r.Conditions, snap) {
		e.record(id, false)
		metrics.RuleEvaluationsTotal.WithLabelValues(id, "no_match").Inc()
		return false
	}

	logrus.Infof("rule %s (%q) matched, executing %d actions", r.ID, r.Name, len(r.Actions))

	for _, act := range r.Actions {
		if err := e.dispatcher.Dispatch(ctx, act); err != nil {
			// No rollback of earlier actions; the attempt is recorded
			// as failed and remaining actions are not run.
			logrus.Errorf("rule %s action %s failed: %v", r.ID, act.Kind, err)
			metrics.ActionExecutionsTotal.WithLabelValues(act.Kind, "error").Inc()
			e.record(id, false)
			metrics.RuleEvaluationsTotal.WithLabelValues(id, "error").Inc()
			return false
		}
		metrics.ActionExecutionsTotal.WithLabelValues(act.Kind, "ok").Inc()
	}

	e.record(id, true)
	metrics.RuleEvaluationsTotal.WithLabelValues(id, "fired").Inc()
	return true
}

// LoadPersisted restores rules from the repository into the store.
// Persisted rules win over already-seeded ones with the same id.
func (e *Engine) LoadPersisted(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}

	rules, err := e.repo.LoadAll(ctx)
	if err != nil {
		metrics.PersistenceErrorsTotal.Inc()
		return err
	}

	for _, r := range rules {
		e.store.Put(r)
	}

	logrus.Infof("restored %d persisted rules", len(rules))
	return nil
}

func (e *Engine) record(ruleID string, success bool) {
	e.store.Record(ExecutionRecord{
		RuleID:    ruleID,
		Timestamp: time.Now(),
		Success:   success,
	})
}

func (e *Engine) persist(ctx context.Context, r Rule) {
	if e.repo == nil {
		return
	}
	if err := e.repo.Save(ctx, r); err != nil {
		logrus.Errorf("failed to persist rule %s: %v", r.ID, err)
		metrics.PersistenceErrorsTotal.Inc()
	}
}
