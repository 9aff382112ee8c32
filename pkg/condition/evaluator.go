package condition

import (
	"sync"

	"github.com/inkdeck/display-automation/pkg/device"
	"github.com/sirupsen/logrus"
)

// Func evaluates a single condition against a snapshot. Implementations
// must fail closed: any missing or malformed parameter yields false.
type Func func(cond Condition, snap device.Snapshot) bool

// Evaluator maps condition kinds to evaluation functions. Evaluation
// never panics; a condition whose kind has no registered function is
// false.
type Evaluator struct {
	funcs map[string]Func
	mu    sync.RWMutex
}

// NewEvaluator creates an evaluator with all built-in kinds registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		funcs: make(map[string]Func),
	}

	e.Register(KindTime, evaluateTime)
	e.Register(KindDate, evaluateDate)
	e.Register(KindBattery, evaluateBattery)
	e.Register(KindCharging, evaluateCharging)
	e.Register(KindConnectivity, evaluateConnectivity)
	e.Register(KindAppRunning, evaluateAppRunning)

	// Categories the source application stubbed out. They are wired
	// fail-closed until a real evaluator exists for them.
	for _, kind := range []string{
		KindWeather, KindLocation, KindCalendar,
		KindSensor, KindNotification, KindDeviceState,
	} {
		e.Register(kind, evaluateUnimplemented)
	}

	return e
}

// Register adds or replaces the evaluation function for a kind.
func (e *Evaluator) Register(kind string, fn Func) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.funcs[kind] = fn
	logrus.Debugf("registered condition kind: %s", kind)
}

// Supports reports whether a kind has a registered evaluator.
func (e *Evaluator) Supports(kind string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ok := e.funcs[kind]
	return ok
}

// Kinds returns all registered condition kinds.
func (e *Evaluator) Kinds() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	kinds := make([]string, 0, len(e.funcs))
	for kind := range e.funcs {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Evaluate returns whether the condition holds for the snapshot.
// Unknown kinds evaluate to false.
func (e *Evaluator) Evaluate(cond Condition, snap device.Snapshot) bool {
	e.mu.RLock()
	fn, ok := e.funcs[cond.Kind]
	e.mu.RUnlock()

	if !ok {
		logrus.Debugf("no evaluator for condition kind '%s'", cond.Kind)
		return false
	}

	return fn(cond, snap)
}

// EvaluateAll reports whether every condition holds (AND semantics).
// An empty list is vacuously true.
func (e *Evaluator) EvaluateAll(conds []Condition, snap device.Snapshot) bool {
	for _, cond := range conds {
		if !e.Evaluate(cond, snap) {
			return false
		}
	}
	return true
}

func evaluateUnimplemented(cond Condition, snap device.Snapshot) bool {
	logrus.Debugf("condition kind '%s' has no implementation, failing closed", cond.Kind)
	return false
}
