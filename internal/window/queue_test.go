package window_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mikmak/psga/internal/window"
)

func TestQueueReadOrder(t *testing.T) {
	q := window.NewQueue()
	q.PushKey("first", nil)
	q.PushKey("second", window.Values{"a": 1})

	ctx := context.Background()
	ev, err := q.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Key != "first" {
		t.Errorf("expected first, got %q", ev.Key)
	}

	ev, err = q.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Key != "second" || ev.Values["a"] != 1 {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestQueueWriteEventValue(t *testing.T) {
	q := window.NewQueue()
	q.WriteEventValue("demo/trails", 42)

	ev, err := q.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Key != "demo/trails" {
		t.Errorf("expected key demo/trails, got %q", ev.Key)
	}
	if ev.Values["demo/trails"] != 42 {
		t.Errorf("expected value keyed by event, got %v", ev.Values)
	}
}

func TestQueueReadBlocksUntilPush(t *testing.T) {
	q := window.NewQueue()

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.PushKey("late", nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ev, err := q.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Key != "late" {
		t.Errorf("expected late, got %q", ev.Key)
	}
}

func TestQueueReadContextCancel(t *testing.T) {
	q := window.NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Read(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestQueueClose(t *testing.T) {
	q := window.NewQueue()
	q.PushKey("pending", nil)
	q.Close()
	q.Close()

	_, err := q.Read(context.Background())
	if !errors.Is(err, window.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	q.PushKey("dropped", nil)
	if q.Len() != 0 {
		t.Errorf("expected pushes after close to be dropped, got %d", q.Len())
	}
}

func TestQueueCloseUnblocksRead(t *testing.T) {
	q := window.NewQueue()
	errCh := make(chan error, 1)

	go func() {
		_, err := q.Read(context.Background())
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, window.ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Read did not return after Close")
	}
}

func TestQueuePerformLongOperation(t *testing.T) {
	q := window.NewQueue()
	q.PerformLongOperation(func() any { return "done" }, "-WORK-")
	q.Wait()

	ev, err := q.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Key != "-WORK-" || ev.Values.String("-WORK-") != "done" {
		t.Errorf("unexpected event %+v", ev)
	}
	if _, err := uuid.Parse(ev.Values.Operation()); err != nil {
		t.Errorf("operation ID %q: %v", ev.Values.Operation(), err)
	}
}

func TestQueueOperationIDsDiffer(t *testing.T) {
	q := window.NewQueue()
	q.PerformLongOperation(func() any { return 1 }, "-A-")
	q.PerformLongOperation(func() any { return 2 }, "-B-")
	q.Wait()

	ids := make(map[string]bool)
	for i := 0; i < 2; i++ {
		ev, err := q.Read(context.Background())
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		ids[ev.Values.Operation()] = true
	}
	if len(ids) != 2 {
		t.Errorf("expected two distinct operation IDs, got %v", ids)
	}

	q.WriteEventValue("-C-", 3)
	ev, _ := q.Read(context.Background())
	if ev.Values.Operation() != "" {
		t.Errorf("posted event has operation ID %q", ev.Values.Operation())
	}
}

func TestQueueTryRead(t *testing.T) {
	q := window.NewQueue()

	if _, ok, err := q.TryRead(); ok || err != nil {
		t.Fatalf("TryRead() on empty queue = ok %v, err %v", ok, err)
	}

	q.PushKey("one", nil)
	select {
	case <-q.Ready():
	default:
		t.Fatal("Ready() not signalled after push")
	}

	ev, ok, err := q.TryRead()
	if !ok || err != nil || ev.Key != "one" {
		t.Fatalf("TryRead() = %+v, %v, %v", ev, ok, err)
	}

	q.Close()
	select {
	case <-q.Done():
	default:
		t.Fatal("Done() not closed after Close")
	}
	if _, _, err := q.TryRead(); !errors.Is(err, window.ErrClosed) {
		t.Errorf("TryRead() after close error = %v, want ErrClosed", err)
	}
}
