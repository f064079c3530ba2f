/*
Package regulator is the root of a Go library for throttling and debouncing
function invocations.

Regulation (pkg/regulator):
  - ModeThrottle: run at most once per wait window
  - ModeDebounce: run once calls stop arriving for the wait duration
  - Immediate and Once modifiers for either mode

Supporting packages:
  - pkg/metrics: Prometheus collectors for calls, executions and cancels
  - pkg/common/errors: validation and operation errors
  - pkg/common/validation: configuration checks

Example usage:

	import "github.com/vnykmshr/regulator/pkg/regulator"

	onResize, cancel, _ := regulator.Throttle(render, 100*time.Millisecond,
		regulator.Options{Immediate: true})
	defer cancel()

	for size := range sizes {
		onResize(size)
	}
*/
package regulator
