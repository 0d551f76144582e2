package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner drive defaults.
const (
	DefaultTargetFPS  = 30
	DefaultMaxFrameMs = 250.0
)

// Runner drives a Simulation with a fixed-timestep loop: real elapsed time
// accumulates and the world advances in uniform ticks, so simulation math
// sees the same step size no matter how the wall stutters. Frames longer
// than the clamp are truncated rather than replayed, trading accuracy for
// staying responsive after a stall.
//
// Runner implements the server Service interface. All outside access to the
// simulation must go through Do.
type Runner struct {
	logger *zap.Logger

	tickMs     float64
	maxFrameMs float64

	mu  sync.Mutex
	sim *Simulation

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRunner wraps a simulation in a fixed-timestep drive. targetFPS sets the
// tick size (1000/targetFPS ms); maxFrameMs bounds how much real time a
// single frame may inject. Zero values fall back to the defaults.
//
// Precondition: sim and logger are non-nil.
func NewRunner(sim *Simulation, logger *zap.Logger, targetFPS int, maxFrameMs float64) *Runner {
	if sim == nil || logger == nil {
		panic("sim: nil simulation or logger")
	}
	if targetFPS <= 0 {
		targetFPS = DefaultTargetFPS
	}
	if maxFrameMs <= 0 {
		maxFrameMs = DefaultMaxFrameMs
	}
	return &Runner{
		logger:     logger,
		tickMs:     1000 / float64(targetFPS),
		maxFrameMs: maxFrameMs,
		sim:        sim,
		stopCh:     make(chan struct{}),
	}
}

// TickMs is the fixed step size in milliseconds.
func (r *Runner) TickMs() float64 { return r.tickMs }

// Do runs fn against the simulation under the loop's lock. Commands and
// snapshot reads go through here so they never race a tick.
func (r *Runner) Do(fn func(*Simulation)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.sim)
}

// Start blocks running the loop until Stop is called.
func (r *Runner) Start() error {
	r.logger.Info("simulation loop starting",
		zap.Float64("tick_ms", r.tickMs),
		zap.Float64("max_frame_ms", r.maxFrameMs))

	ticker := time.NewTicker(time.Duration(r.tickMs * float64(time.Millisecond)))
	defer ticker.Stop()

	last := time.Now()
	accumulator := 0.0

	for {
		select {
		case <-r.stopCh:
			r.logger.Info("simulation loop stopped")
			return nil
		case now := <-ticker.C:
			frameMs := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			if frameMs > r.maxFrameMs {
				frameMs = r.maxFrameMs
			}
			r.step(frameMs, &accumulator)
		}
	}
}

// step injects one frame of real time and advances the simulation in fixed
// ticks. Leftover time below a tick stays in the accumulator.
func (r *Runner) step(frameMs float64, accumulator *float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	*accumulator += frameMs
	for *accumulator >= r.tickMs {
		r.sim.Advance(r.tickMs)
		*accumulator -= r.tickMs
	}
}

// Stop terminates the loop. Idempotent.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}
