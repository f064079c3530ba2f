package regulator

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/vnykmshr/regulator/internal/testutil"
)

func TestThrottleFunc_ConcurrentCallers(t *testing.T) {
	var count int32
	call, cancel, err := ThrottleFunc(func() {
		atomic.AddInt32(&count, 1)
	}, 200*ms, Options{Immediate: true})
	testutil.AssertNoError(t, err)
	defer cancel()

	var wg conc.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Go(call)
	}
	wg.Wait()

	// One leading execution, then one trailing for the rest of the window.
	testutil.AssertEqual(t, atomic.LoadInt32(&count), int32(1))
	testutil.WaitForInt32(t, &count, 2, testutil.TestTimeout)

	time.Sleep(300 * ms)
	testutil.AssertEqual(t, atomic.LoadInt32(&count), int32(2))
}

func TestDebounceFunc_RealTimer(t *testing.T) {
	var count int32
	call, cancel, err := DebounceFunc(func() {
		atomic.AddInt32(&count, 1)
	}, 100*ms, Options{})
	testutil.AssertNoError(t, err)
	defer cancel()

	for i := 0; i < 5; i++ {
		call()
		time.Sleep(10 * ms)
	}
	testutil.AssertEqual(t, atomic.LoadInt32(&count), int32(0))

	testutil.WaitForInt32(t, &count, 1, testutil.TestTimeout)
	time.Sleep(150 * ms)
	testutil.AssertEqual(t, atomic.LoadInt32(&count), int32(1))
}

func TestCancel_RealTimer(t *testing.T) {
	var count int32
	call, cancel, err := DebounceFunc(func() {
		atomic.AddInt32(&count, 1)
	}, 30*ms, Options{})
	testutil.AssertNoError(t, err)

	call()
	cancel()
	time.Sleep(100 * ms)
	testutil.AssertEqual(t, atomic.LoadInt32(&count), int32(0))
}

func TestFuncs_RejectNilHandle(t *testing.T) {
	call, cancel, err := ThrottleFunc(nil, ms, Options{})
	testutil.AssertError(t, err)
	testutil.AssertTrue(t, call == nil && cancel == nil, "no wrapper on error")

	_, _, err = DebounceFunc(nil, ms, Options{})
	testutil.AssertError(t, err)

	_, _, err = Debounce(func(int) {}, -ms, Options{})
	testutil.AssertError(t, err)
}

func TestConcurrentOperations(t *testing.T) {
	for _, opts := range []Options{
		{},
		{Immediate: true},
		{Mode: ModeDebounce},
		{Mode: ModeDebounce, Immediate: true},
		{Mode: ModeDebounce, Once: true},
	} {
		t.Run(opts.Mode.String(), func(t *testing.T) {
			var count int64
			r, err := New(func(n int) {
				atomic.AddInt64(&count, int64(n))
			}, 5*ms, opts)
			testutil.AssertNoError(t, err)

			var wg conc.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Go(func() {
					for i := 0; i < 200; i++ {
						switch (g + i) % 7 {
						case 0:
							r.Cancel()
						case 1:
							r.Flush()
						case 2:
							_ = r.Pending()
						default:
							r.Call(1)
						}
					}
				})
			}
			wg.Wait()

			r.Cancel()
			testutil.AssertFalse(t, r.Pending(), "cancel should leave no timer behind")
			if n := atomic.LoadInt64(&count); opts.Once && n > 1 {
				t.Fatalf("once regulator ran %d times", n)
			}
		})
	}
}
