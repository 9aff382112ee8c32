package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/inkdeck/display-automation/pkg/metrics"
	"github.com/inkdeck/display-automation/pkg/rule"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the poll period when none is configured.
const DefaultInterval = 60 * time.Second

// Poller drives the automation engine: one goroutine, one ticker. Each
// tick executes every enabled due rule once and re-arms its schedule
// slot. Missed intervals are skipped, not queued: a rule fires at most
// once per tick no matter how late the tick is.
type Poller struct {
	engine   *rule.Engine
	interval time.Duration
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a poller over the engine. Non-positive intervals
// fall back to the default.
func NewPoller(engine *rule.Engine, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		engine:   engine,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the poll loop.
func (p *Poller) Start() {
	p.wg.Add(1)
	go p.loop()
	logrus.Infof("poller started (interval %v)", p.interval)
}

// Stop cancels future ticks and waits for an in-flight tick to finish.
// A running action is not interrupted.
func (p *Poller) Stop() {
	p.cancel()
	p.wg.Wait()
	logrus.Info("poller stopped")
}

func (p *Poller) loop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.Tick(p.ctx)
		}
	}
}

// Tick runs one poll iteration: execute every enabled due rule and
// recompute its schedule slot. Returns the number of rules executed.
func (p *Poller) Tick(ctx context.Context) int {
	now := p.now()
	executed := 0

	for _, r := range p.engine.GetRules() {
		if !r.Enabled || !Due(r, now) {
			continue
		}

		p.engine.ExecuteRule(ctx, r.ID)
		executed++

		// Scheduled rules are re-armed after the attempt regardless of
		// outcome; once-rules become unreachable.
		if r.Scheduled() {
			p.engine.SetNextRun(ctx, r.ID, Next(r, now))
		}
	}

	metrics.PollTicksTotal.Inc()
	if executed > 0 {
		logrus.Debugf("poll tick executed %d rules", executed)
	}
	return executed
}
