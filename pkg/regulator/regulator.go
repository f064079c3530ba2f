package regulator

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	rerrors "github.com/vnykmshr/regulator/pkg/common/errors"
	"github.com/vnykmshr/regulator/pkg/common/validation"
	"github.com/vnykmshr/regulator/pkg/metrics"
)

const moduleName = "regulator"

// CancelFunc discards a pending scheduled execution.
type CancelFunc func()

// Config holds configuration options for creating a new Regulator.
type Config struct {
	// Wait is the throttle window or the debounce quiet period.
	Wait time.Duration

	// Options selects the mode and the Immediate and Once modifiers.
	Options Options

	// Clock provides the current time and timers. If nil, SystemClock is used.
	Clock Clock

	// Logger receives debug entries for scheduling decisions. If nil, logging is disabled.
	Logger *zap.Logger

	// Name identifies the regulator in logs and metrics. If empty, a random name is generated.
	Name string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// DefaultConfig returns a configuration for a trailing-edge throttle with no wait.
func DefaultConfig() Config {
	return Config{
		Clock:  SystemClock{},
		Logger: zap.NewNop(),
	}
}

// Regulator wraps a function and controls how often it actually runs when
// called repeatedly. All methods are safe for concurrent use; the wrapped
// function is never invoked while internal state is locked.
type Regulator[T any] struct {
	handle    func(T)
	wait      time.Duration
	mode      Mode
	immediate bool
	once      bool
	name      string
	clock     Clock
	logger    *zap.Logger

	mu            sync.Mutex
	stop          func() bool // pending timer; nil when idle
	gen           uint64      // invalidates timer callbacks that lost a race with stop
	lastInvokedAt time.Time
	fired         bool
	trailing      bool // args holds a call waiting for the timer
	args          T

	registry       *metrics.Registry
	metricsEnabled bool
}

// New creates a Regulator for handle with the given wait and options.
// A nil handle or a negative wait is rejected with a ValidationError.
func New[T any](handle func(T), wait time.Duration, opts Options) (*Regulator[T], error) {
	cfg := DefaultConfig()
	cfg.Wait = wait
	cfg.Options = opts
	return NewWithConfig(handle, cfg)
}

// NewWithConfig creates a Regulator for handle from config.
func NewWithConfig[T any](handle func(T), config Config) (*Regulator[T], error) {
	if err := validateConfig(handle, config); err != nil {
		return nil, err
	}
	config = applyConfigDefaults(config)

	r := &Regulator[T]{
		handle:    handle,
		wait:      config.Wait,
		mode:      config.Options.Mode,
		immediate: config.Options.Immediate,
		once:      config.Options.Once,
		name:      config.Name,
		clock:     config.Clock,
	}
	r.logger = config.Logger.With(zap.String("regulator", r.name), zap.Stringer("mode", r.mode))

	if config.Metrics.Enabled {
		if err := r.EnableMetrics(config.Metrics); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// validateConfig validates the handle and configuration.
func validateConfig(handle interface{}, config Config) error {
	if err := validation.ValidateNotNil(moduleName, "handle", handle); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeDuration(moduleName, "wait", config.Wait); err != nil {
		return err
	}
	if !config.Options.Mode.valid() {
		return rerrors.NewValidationError(moduleName, "mode", int(config.Options.Mode), "unknown mode").
			WithHint("use ModeThrottle or ModeDebounce")
	}
	return nil
}

// applyConfigDefaults sets default values for unspecified config fields.
func applyConfigDefaults(config Config) Config {
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Name == "" {
		config.Name = generateName()
	}
	return config
}

func generateName() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return moduleName + "-" + id[:12]
}

// Throttle regulates handle so it runs at most once per wait window and
// returns the wrapper and its cancel function. opts.Mode is ignored.
func Throttle[T any](handle func(T), wait time.Duration, opts Options) (func(T), CancelFunc, error) {
	opts.Mode = ModeThrottle
	r, err := New(handle, wait, opts)
	if err != nil {
		return nil, nil, err
	}
	call, cancel := r.Funcs()
	return call, cancel, nil
}

// Debounce regulates handle so it runs only once calls have stopped
// arriving for wait, and returns the wrapper and its cancel function.
// opts.Mode is ignored.
func Debounce[T any](handle func(T), wait time.Duration, opts Options) (func(T), CancelFunc, error) {
	opts.Mode = ModeDebounce
	r, err := New(handle, wait, opts)
	if err != nil {
		return nil, nil, err
	}
	call, cancel := r.Funcs()
	return call, cancel, nil
}

// ThrottleFunc is Throttle for functions without arguments.
func ThrottleFunc(handle func(), wait time.Duration, opts Options) (func(), CancelFunc, error) {
	call, cancel, err := Throttle(adapt(handle), wait, opts)
	if err != nil {
		return nil, nil, err
	}
	return func() { call(struct{}{}) }, cancel, nil
}

// DebounceFunc is Debounce for functions without arguments.
func DebounceFunc(handle func(), wait time.Duration, opts Options) (func(), CancelFunc, error) {
	call, cancel, err := Debounce(adapt(handle), wait, opts)
	if err != nil {
		return nil, nil, err
	}
	return func() { call(struct{}{}) }, cancel, nil
}

// adapt keeps a nil handle nil so construction still rejects it.
func adapt(handle func()) func(struct{}) {
	if handle == nil {
		return nil
	}
	return func(struct{}) { handle() }
}

// Funcs returns the wrapper and cancel function as plain funcs.
func (r *Regulator[T]) Funcs() (func(T), CancelFunc) {
	return r.Call, r.Cancel
}

// Call invokes the regulated function according to the regulator's mode.
// Immediate executions run on the caller's goroutine before Call returns,
// so a panic in the wrapped function propagates to the caller.
func (r *Regulator[T]) Call(args T) {
	r.mu.Lock()
	r.observeCall()

	if r.disabledLocked() {
		r.observeSuppressed()
		r.mu.Unlock()
		r.logger.Debug("dropped call on disabled regulator")
		return
	}

	var run bool
	switch r.mode {
	case ModeDebounce:
		run = r.debounceLocked(args)
	default:
		run = r.throttleLocked(args)
	}
	r.mu.Unlock()

	if run {
		r.handle(args)
	}
}

// throttleLocked reports whether args should run now.
func (r *Regulator[T]) throttleLocked(args T) bool {
	if r.stop != nil {
		if r.trailing {
			r.observeSuppressed()
		}
		r.args, r.trailing = args, true
		return false
	}

	now := r.clock.Now()
	delay := r.wait
	if !r.lastInvokedAt.IsZero() {
		if elapsed := now.Sub(r.lastInvokedAt); elapsed < r.wait {
			delay = r.wait - elapsed
		} else if r.immediate {
			r.commitLocked(now, metrics.EdgeLeading)
			return true
		}
	} else if r.immediate {
		r.commitLocked(now, metrics.EdgeLeading)
		return true
	}

	r.args, r.trailing = args, true
	r.startTimerLocked(delay)
	r.logger.Debug("scheduled trailing execution", zap.Duration("delay", delay))
	return false
}

// debounceLocked reports whether args should run now.
func (r *Regulator[T]) debounceLocked(args T) bool {
	if r.immediate {
		if r.stop == nil {
			r.commitLocked(r.clock.Now(), metrics.EdgeLeading)
			if !r.disabledLocked() {
				// Marks the burst; firing it runs nothing.
				r.startTimerLocked(r.wait)
			}
			return true
		}
		r.observeSuppressed()
		r.stopTimerLocked()
		r.startTimerLocked(r.wait)
		return false
	}

	if r.trailing {
		r.observeSuppressed()
	}
	r.args, r.trailing = args, true
	r.stopTimerLocked()
	r.startTimerLocked(r.wait)
	r.logger.Debug("rescheduled trailing execution", zap.Duration("delay", r.wait))
	return false
}

// Cancel discards any pending scheduled execution and resets the window so
// the next call is treated as a first call. It never undoes an execution
// that already happened and does not re-enable a regulator disabled by Once.
func (r *Regulator[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop == nil && !r.trailing && r.lastInvokedAt.IsZero() {
		return
	}
	if r.stop != nil {
		r.observeCancel()
		r.logger.Debug("cancelled pending execution", zap.Bool("had_trailing", r.trailing))
	}

	r.stopTimerLocked()
	r.clearTrailingLocked()
	r.lastInvokedAt = time.Time{}
}

// Flush runs a recorded trailing call right away on the caller's goroutine
// instead of waiting for its timer. It is a no-op if nothing is recorded.
func (r *Regulator[T]) Flush() {
	r.mu.Lock()
	if !r.trailing || r.disabledLocked() {
		r.mu.Unlock()
		return
	}
	args := r.args
	r.stopTimerLocked()
	r.commitLocked(r.clock.Now(), metrics.EdgeFlush)
	r.mu.Unlock()

	r.logger.Debug("flushed trailing execution")

	r.handle(args)
}

// Pending reports whether an execution timer is outstanding.
func (r *Regulator[T]) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Disabled reports whether Once is set and the wrapped function has run.
func (r *Regulator[T]) Disabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabledLocked()
}

// Mode returns the regulator's mode.
func (r *Regulator[T]) Mode() Mode {
	return r.mode
}

// Wait returns the configured window or quiet period.
func (r *Regulator[T]) Wait() time.Duration {
	return r.wait
}

// Name returns the regulator's name.
func (r *Regulator[T]) Name() string {
	return r.name
}

// fire runs when the timer started with generation gen elapses.
func (r *Regulator[T]) fire(gen uint64) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.stop = nil
	r.observePending(false)

	if !r.trailing || r.disabledLocked() {
		r.mu.Unlock()
		return
	}
	args := r.args
	r.commitLocked(r.clock.Now(), metrics.EdgeTrailing)
	r.mu.Unlock()

	r.logger.Debug("fired trailing execution")

	r.handle(args)
}

// commitLocked records an execution before the wrapped function runs, so
// a panic in it leaves the regulator consistent. Once counts attempts.
func (r *Regulator[T]) commitLocked(now time.Time, edge string) {
	r.lastInvokedAt = now
	r.fired = true
	r.clearTrailingLocked()
	r.observeExecution(edge)

	if r.once {
		r.stopTimerLocked()
		r.logger.Debug("disabled after first execution")
	}
}

func (r *Regulator[T]) disabledLocked() bool {
	return r.once && r.fired
}

func (r *Regulator[T]) clearTrailingLocked() {
	var zero T
	r.args, r.trailing = zero, false
}

func (r *Regulator[T]) startTimerLocked(d time.Duration) {
	r.gen++
	gen := r.gen
	r.stop = r.clock.AfterFunc(d, func() { r.fire(gen) })
	r.observePending(true)
}

func (r *Regulator[T]) stopTimerLocked() {
	if r.stop == nil {
		return
	}
	r.stop()
	r.stop = nil
	r.gen++
	r.observePending(false)
}
