// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// tickInterval bounds how late a deadline can fire. Round windows are in the
// seconds range, so a coarse tick is plenty.
const tickInterval = 100 * time.Millisecond

// deadline is one scheduled one-shot task.
type deadline struct {
	id     int64
	fireAt time.Time
	run    func()
	index  int
}

type deadlineHeap []*deadline

func (h deadlineHeap) Len() int           { return len(h) }
func (h deadlineHeap) Less(i, j int) bool { return h[i].fireAt.Before(h[j].fireAt) }

func (h deadlineHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *deadlineHeap) Push(x interface{}) {
	d := x.(*deadline)
	d.index = len(*h)
	*h = append(*h, d)
}

func (h *deadlineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	d := old[n-1]
	d.index = -1
	*h = old[:n-1]
	return d
}

// Manager schedules cancellable one-shot deadlines; the rooms use it for
// round windows. Cancel only guarantees the task will not be started after
// it returns; a task already handed to its goroutine must re-check its own
// preconditions.
type Manager struct {
	pending  deadlineHeap
	nextID   int64
	mutex    sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewManager() *Manager {
	m := &Manager{
		pending:  make(deadlineHeap, 0),
		nextID:   1,
		stopChan: make(chan struct{}),
	}
	heap.Init(&m.pending)
	go m.loop()
	return m
}

// Schedule runs fn once after delay. The returned id is usable with Cancel.
func (m *Manager) Schedule(delay time.Duration, fn func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	d := &deadline{
		id:     m.nextID,
		fireAt: time.Now().Add(delay),
		run:    fn,
	}
	m.nextID++

	heap.Push(&m.pending, d)
	return d.id
}

// Cancel drops a pending deadline. Unknown or already-fired ids are ignored.
func (m *Manager) Cancel(id int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, d := range m.pending {
		if d.id == id {
			heap.Remove(&m.pending, i)
			break
		}
	}
}

// Stop shuts the scheduling loop down. Pending deadlines are discarded.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *Manager) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case now := <-ticker.C:
			for _, d := range m.takeDue(now) {
				go d.run()
			}
		}
	}
}

func (m *Manager) takeDue(now time.Time) []*deadline {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var due []*deadline
	for m.pending.Len() > 0 && !m.pending[0].fireAt.After(now) {
		due = append(due, heap.Pop(&m.pending).(*deadline))
	}
	return due
}
