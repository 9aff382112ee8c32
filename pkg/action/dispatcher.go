package action

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler executes a single action kind against the device controller.
// Handlers skip the action (returning nil) when required parameters are
// missing, and return an error only when the device operation itself
// fails.
type Handler func(ctx context.Context, act Action, ctrl DeviceController) error

// Dispatcher maps action kinds to handlers and executes actions
// against an injected DeviceController. Unknown kinds are skipped, and
// handler panics are converted to errors, so dispatch never panics the
// caller.
type Dispatcher struct {
	handlers   map[string]Handler
	controller DeviceController
	mu         sync.RWMutex
}

// NewDispatcher creates a dispatcher with all built-in handlers
// registered. A nil controller falls back to the logging controller.
func NewDispatcher(controller DeviceController) *Dispatcher {
	if controller == nil {
		controller = NewLogController()
	}

	d := &Dispatcher{
		handlers:   make(map[string]Handler),
		controller: controller,
	}

	for kind, handler := range builtinHandlers() {
		d.Register(kind, handler)
	}

	return d
}

// Register adds or replaces the handler for an action kind.
func (d *Dispatcher) Register(kind string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[kind] = handler
	logrus.Debugf("registered action kind: %s", kind)
}

// Supports reports whether a kind has a registered handler.
func (d *Dispatcher) Supports(kind string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.handlers[kind]
	return ok
}

// Kinds returns all registered action kinds.
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	kinds := make([]string, 0, len(d.handlers))
	for kind := range d.handlers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Dispatch executes a single action. Unknown kinds are a logged no-op,
// not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, act Action) (err error) {
	d.mu.RLock()
	handler, ok := d.handlers[act.Kind]
	controller := d.controller
	d.mu.RUnlock()

	if !ok {
		logrus.Warnf("no handler for action kind '%s', skipping", act.Kind)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", act.Kind, r)
		}
	}()

	return handler(ctx, act, controller)
}
