package invoke

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAggregator_Empty(t *testing.T) {
	agg := NewAggregator()
	if agg.HasErrors() {
		t.Error("new aggregator should have no errors")
	}
	if agg.Err() != nil {
		t.Errorf("Err() = %v, want nil", agg.Err())
	}
	agg.Add(nil)
	if agg.HasErrors() {
		t.Error("Add(nil) should be ignored")
	}
}

func TestAggregator_ErrSingleAndJoined(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	agg := NewAggregator()

	agg.Add(first)
	if agg.Err() != first {
		t.Errorf("Err() = %v, want the single error unchanged", agg.Err())
	}

	agg.Add(second)
	err := agg.Err()
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Errorf("Err() = %v, want both errors joined", err)
	}
	if got := agg.Errors(); len(got) != 2 || got[0] != first || got[1] != second {
		t.Errorf("Errors() = %v, want [first second]", got)
	}
}

func TestAggregator_Run(t *testing.T) {
	agg := NewAggregator()

	if err := agg.Run(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if agg.HasErrors() {
		t.Error("successful step should not record anything")
	}

	if err := agg.Run(context.Background(), func(context.Context) error { return errBoom }); err != errBoom {
		t.Errorf("Run() = %v, want %v", err, errBoom)
	}
	if agg.Err() != errBoom {
		t.Errorf("Err() = %v, want %v", agg.Err(), errBoom)
	}
}

func TestAggregator_RunRecoversPanic(t *testing.T) {
	agg := NewAggregator()

	err := agg.Run(context.Background(), func(context.Context) error { panic("kaboom") })

	if !errors.Is(err, ErrPanicked) {
		t.Fatalf("Run() = %v, want ErrPanicked", err)
	}
	if !errors.Is(agg.Err(), ErrPanicked) {
		t.Errorf("Err() = %v, want ErrPanicked", agg.Err())
	}
}

func TestAggregator_ErrorsReturnsCopy(t *testing.T) {
	agg := NewAggregator()
	agg.Add(errBoom)

	errs := agg.Errors()
	errs[0] = nil

	if agg.Err() != errBoom {
		t.Error("mutating Errors() result should not affect the aggregator")
	}
}

func TestAggregator_Concurrent(t *testing.T) {
	agg := NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = agg.Run(context.Background(), func(context.Context) error { return errBoom })
		}()
	}
	wg.Wait()

	if got := len(agg.Errors()); got != 50 {
		t.Errorf("len(Errors()) = %d, want 50", got)
	}
}

func TestTimer_Aggregate(t *testing.T) {
	timer := NewTimerWithClock(fakeClock(5 * time.Millisecond))

	for i := 0; i < 3; i++ {
		if err := timer.Aggregate(context.Background(), func(context.Context) error { return nil }); err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}
	}

	if got := timer.Total(); got != 15*time.Millisecond {
		t.Errorf("Total() = %v, want 15ms", got)
	}
}

func TestTimer_AggregateReturnsError(t *testing.T) {
	timer := NewTimer()
	if err := timer.Aggregate(context.Background(), func(context.Context) error { return errBoom }); err != errBoom {
		t.Errorf("Aggregate() = %v, want %v", err, errBoom)
	}
}

func TestTimer_AggregateCountsPanickingStep(t *testing.T) {
	timer := NewTimerWithClock(fakeClock(time.Millisecond))

	func() {
		defer func() { _ = recover() }()
		_ = timer.Aggregate(context.Background(), func(context.Context) error { panic("x") })
	}()

	if got := timer.Total(); got != time.Millisecond {
		t.Errorf("Total() = %v, want 1ms", got)
	}
}

func TestTimer_RealClock(t *testing.T) {
	timer := NewTimerWithClock(nil)
	_ = timer.Aggregate(context.Background(), func(context.Context) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})
	if timer.Total() < 5*time.Millisecond {
		t.Errorf("Total() = %v, want >= 5ms", timer.Total())
	}
}
