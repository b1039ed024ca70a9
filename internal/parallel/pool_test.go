package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateNonPositiveWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func() error {
			counter.Add(1)
			return nil
		}
	}

	if err := pool.ExecuteAll(tasks); err != nil {
		t.Fatalf("ExecuteAll error = %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_AllIndicesRun(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	seen := make([]bool, 10)
	tasks := make([]Task, len(seen))
	for i := range tasks {
		tasks[i] = func() error {
			seen[i] = true
			return nil
		}
	}

	_ = pool.ExecuteAll(tasks)

	for i, ok := range seen {
		if !ok {
			t.Errorf("task %d did not run", i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if err := pool.ExecuteAll(nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v, want nil", err)
	}
	if err := pool.ExecuteAll([]Task{nil}); err != nil {
		t.Errorf("ExecuteAll(nil task) = %v, want nil", err)
	}
}

func TestWorkerPool_ExecuteAll_JoinsErrors(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	errA := errors.New("a")
	errB := errors.New("b")
	err := pool.ExecuteAll([]Task{
		func() error { return errA },
		func() error { return nil },
		func() error { return errB },
	})

	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("ExecuteAll error = %v, want both task errors", err)
	}
}

func TestWorkerPool_ExecuteAll_RecoversPanic(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Int64
	err := pool.ExecuteAll([]Task{
		func() error { ran.Add(1); return nil },
		func() error { panic("boom") },
		func() error { ran.Add(1); return nil },
	})

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("ExecuteAll error = %v, want *PanicError", err)
	}
	if pe.Index != 1 || pe.Value != "boom" {
		t.Errorf("PanicError = {Index: %d, Value: %v}, want {1, boom}", pe.Index, pe.Value)
	}
	if ran.Load() != 2 {
		t.Errorf("other tasks ran %d times, want 2", ran.Load())
	}

	// The pool survives the panic.
	if err := pool.ExecuteAll([]Task{func() error { return nil }}); err != nil {
		t.Errorf("ExecuteAll after panic = %v, want nil", err)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	err := pool.ExecuteAll([]Task{func() error { executed.Store(true); return nil }})

	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("ExecuteAll after Close = %v, want ErrPoolClosed", err)
	}
	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

func TestWorkerPool_CloseWaitsForInFlight(t *testing.T) {
	pool := NewWorkerPool(2)

	started := make(chan struct{})
	var finished atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = pool.ExecuteAll([]Task{func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
			return nil
		}})
	}()

	<-started
	pool.Close()
	<-done

	if !finished.Load() {
		t.Error("Close returned before the running task finished")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const goroutines, perGoroutine = 10, 50

	var wg sync.WaitGroup
	for range goroutines {
		wg.Go(func() {
			tasks := make([]Task, perGoroutine)
			for i := range tasks {
				tasks[i] = func() error {
					counter.Add(1)
					return nil
				}
			}
			_ = pool.ExecuteAll(tasks)
		})
	}
	wg.Wait()

	if counter.Load() != goroutines*perGoroutine {
		t.Errorf("counter = %d, want %d", counter.Load(), goroutines*perGoroutine)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// All slow tasks land in queue 0; the other workers must steal them.
	tasks := make([]Task, 16)
	var slow atomic.Int64
	for i := range tasks {
		if i%4 == 0 {
			tasks[i] = func() error {
				time.Sleep(10 * time.Millisecond)
				slow.Add(1)
				return nil
			}
		} else {
			tasks[i] = func() error { return nil }
		}
	}

	start := time.Now()
	_ = pool.ExecuteAll(tasks)
	t.Logf("Elapsed time: %v", time.Since(start))

	if slow.Load() != 4 {
		t.Errorf("slow = %d, want 4", slow.Load())
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		tasks := make([]Task, 100)
		for j := range tasks {
			tasks[j] = func() error { return nil }
		}
		_ = pool.ExecuteAll(tasks)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func TestWorkerPool_QueuedWorkIdle(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if got := pool.QueuedWork(); got != 0 {
		t.Errorf("QueuedWork() = %d, want 0", got)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	tasks := make([]Task, 64)
	for i := range tasks {
		tasks[i] = func() error { return nil }
	}

	b.ResetTimer()
	for b.Loop() {
		_ = pool.ExecuteAll(tasks)
	}
}
