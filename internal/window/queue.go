package window

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mikmak/psga/internal/logging"
)

// Queue is an unbounded, channel-signalled Window without any display.
// Posting never blocks, so handlers running on the loop goroutine may post
// follow-up events freely.
type Queue struct {
	mu     sync.Mutex
	events []Event
	closed bool

	ready chan struct{}
	done  chan struct{}

	ops    sync.WaitGroup
	logger *logging.Logger
}

// NewQueue creates an empty queue window.
func NewQueue() *Queue {
	return &Queue{
		ready:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logging.NewNull(),
	}
}

// SetLogger sets the logger used to trace long operations.
func (q *Queue) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.NewNull()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.logger = l
}

// Push appends an event. Events pushed after Close are dropped.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// PushKey appends a plain event with the given key and values.
func (q *Queue) PushKey(key string, values Values) {
	q.Push(Event{Key: key, Values: values})
}

// WriteEventValue implements Window.
func (q *Queue) WriteEventValue(key string, value any) {
	q.Push(Event{Key: key, Values: Values{key: value}})
}

// PerformLongOperation implements Window. The posted event also carries
// the operation ID under OperationKey.
func (q *Queue) PerformLongOperation(fn func() any, key string) {
	id := uuid.NewString()
	q.mu.Lock()
	logger := q.logger
	q.mu.Unlock()

	q.ops.Add(1)
	go func() {
		defer q.ops.Done()
		logger.Debug("long operation %s started for %q", id, key)
		result := fn()
		logger.Debug("long operation %s finished for %q", id, key)
		q.Push(Event{Key: key, Values: Values{key: result, OperationKey: id}})
	}()
}

// Wait blocks until every long operation started so far has posted its result.
func (q *Queue) Wait() {
	q.ops.Wait()
}

// Read implements Source. Queued events are drained in order; once the
// queue is closed Read returns ErrClosed even if events remain.
func (q *Queue) Read(ctx context.Context) (Event, error) {
	for {
		ev, ok, err := q.TryRead()
		if err != nil || ok {
			return ev, err
		}

		select {
		case <-q.ready:
		case <-q.done:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// TryRead pops the next event without blocking. ok is false when the queue
// is empty; err is ErrClosed once the queue is closed.
func (q *Queue) TryRead() (ev Event, ok bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return Event{}, false, ErrClosed
	}
	if len(q.events) == 0 {
		return Event{}, false, nil
	}
	ev = q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	return ev, true, nil
}

// Ready is signalled when events are pushed. Pair it with Done and TryRead
// to wait on a queue alongside other channels.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Done is closed when the queue is closed.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close implements Window. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.events = nil
	close(q.done)
}
