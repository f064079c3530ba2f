/*
Package regulator controls how often a function actually runs when it is
called repeatedly and rapidly, for example from UI, file system or network
events.

A Regulator wraps a function and runs it in one of two modes:

  - ModeThrottle: at most once per wait window. The first call of a window
    schedules a trailing execution at the end of the window; later calls in
    the same window only replace the arguments that execution will use.
  - ModeDebounce: only after calls stop arriving for wait. Every call
    restarts the timer and the last call's arguments are used.

Two modifiers apply to either mode:

  - Immediate: the first call of a window or burst runs synchronously on the
    caller's goroutine. For a debounce, the rest of that burst is absorbed
    and nothing runs when it ends.
  - Once: after the wrapped function has run one time, the regulator is
    disabled and every further call is a no-op.

Basic usage:

	search, cancel, err := regulator.Debounce(func(q string) {
		runQuery(q)
	}, 300*time.Millisecond, regulator.Options{})
	if err != nil {
		log.Fatal(err)
	}
	defer cancel()

	search("g")
	search("go")
	search("gop") // only "gop" is queried, 300ms after this call

Cancellation:

The cancel function discards a pending scheduled execution and resets the
window, so the next call is treated as a first call. It cannot undo an
execution that already ran.

Errors:

Construction rejects a nil function, a negative wait and an unknown mode
with a *errors.ValidationError. A panic in the wrapped function is never
recovered: it reaches the caller of Call or Flush for synchronous
executions and the timer goroutine for scheduled ones. Once counts an
execution as soon as it is attempted.

Configuration:

Options can be decoded from YAML or JSON with ParseOptions, using the keys
immediate, debounce and once. NewWithConfig additionally accepts a Clock,
a zap Logger, a name and Prometheus metrics configuration.
*/
package regulator
