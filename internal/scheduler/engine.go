package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/lifecycle"
	"github.com/sandeepkv93/tasklog/internal/model"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type BoundaryKind string

const (
	BoundaryStart    BoundaryKind = "start"
	BoundaryEnd      BoundaryKind = "end"
	BoundaryMidnight BoundaryKind = "midnight"
)

// midnightKey identifies the daily rollover event in the queue.
const midnightKey = "@midnight"

// BoundaryEvent fires when a record crosses its start day or the day after
// its end day, or when the local date rolls over.
type BoundaryEvent struct {
	RecordID string
	Title    string
	Kind     BoundaryKind
	At       time.Time
}

func (ev BoundaryEvent) key() string {
	if ev.Kind == BoundaryMidnight {
		return midnightKey
	}
	return ev.RecordID
}

type queueItem struct {
	event BoundaryEvent
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].event.At.Before(pq[j].event.At)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan BoundaryEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan BoundaryEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan BoundaryEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues ev, replacing any pending event for the same record.
func (e *Engine) Schedule(ev BoundaryEvent) error {
	if ev.At.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	e.removeLocked(ev.key())
	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// ScheduleRecords replaces the whole queue with the next boundary of every
// record plus the next local midnight. It returns the number of record
// boundaries queued.
func (e *Engine) ScheduleRecords(records []model.Record, now time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrStopped
	}

	e.queue = e.queue[:0]
	count := 0
	for _, r := range records {
		at, ok := lifecycle.NextBoundary(r, now)
		if !ok {
			continue
		}
		kind := BoundaryEnd
		if r.StartDate != "" && datemath.FromTime(at) == startDay(r.StartDate) {
			kind = BoundaryStart
		}
		e.queue = append(e.queue, queueItem{event: BoundaryEvent{RecordID: r.UUID, Title: r.Title, Kind: kind, At: at}})
		count++
	}
	e.queue = append(e.queue, queueItem{event: BoundaryEvent{Kind: BoundaryMidnight, At: NextMidnight(now)}})
	heap.Init(&e.queue)
	e.signalWakeup()
	return count, nil
}

// Cancel drops the pending event for a record, if any.
func (e *Engine) Cancel(recordID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeLocked(recordID)
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// NextMidnight returns the start of the local day after now.
func NextMidnight(now time.Time) time.Time {
	return datemath.FromTime(now).AddDays(1).Local()
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.At)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) removeLocked(key string) bool {
	for i := range e.queue {
		if e.queue[i].event.key() == key {
			heap.Remove(&e.queue, i)
			return true
		}
	}
	return false
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (BoundaryEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return BoundaryEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []BoundaryEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]BoundaryEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.At.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func startDay(date string) datemath.Timestamp {
	ts, err := datemath.ParseDate(date)
	if err != nil {
		return -1
	}
	return ts
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
