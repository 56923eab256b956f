package client

// Scheduler decides on which execution context a unit of work runs. The
// Client takes two of them: one for issuing requests and one for delivering
// callbacks, so callers can keep network work off their own goroutine while
// funnelling results back onto a context they control.
type Scheduler interface {
	Schedule(task func())
}

// GoScheduler runs every task on a fresh goroutine.
type GoScheduler struct{}

func (GoScheduler) Schedule(task func()) {
	go task()
}

// SyncScheduler runs tasks inline on the calling goroutine. Useful for tests
// and simple command-line callers that want blocking semantics.
type SyncScheduler struct{}

func (SyncScheduler) Schedule(task func()) {
	task()
}

// SerialScheduler runs tasks one at a time, in submission order, on a single
// background goroutine.
type SerialScheduler struct {
	tasks chan func()
	done  chan struct{}
}

// NewSerialScheduler starts the worker goroutine. buffer bounds the number of
// pending tasks before Schedule blocks.
func NewSerialScheduler(buffer int) *SerialScheduler {
	s := &SerialScheduler{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *SerialScheduler) run() {
	defer close(s.done)
	for task := range s.tasks {
		task()
	}
}

func (s *SerialScheduler) Schedule(task func()) {
	s.tasks <- task
}

// Close stops accepting tasks and waits for the queue to drain.
func (s *SerialScheduler) Close() {
	close(s.tasks)
	<-s.done
}
