package neopixel

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Queue shares the LEDs between concurrent operations, where for example some
// animations can take a long time. A goroutine that wants the strips queues
// up, which sets an interrupted state that a running animation can poll. The
// current owner SHOULD release as soon as it sees the interruption and let
// the queued process continue.
type Queue struct {
	waiting       int
	runLock       sync.Mutex
	interruptLock sync.Mutex
}

type Unlocker func()

// Queue up and wait for a turn on the strips. Sets the interrupted state and
// then waits for the run lock.
func (q *Queue) Queue() Unlocker {
	q.interrupt()
	q.runLock.Lock()

	q.running()
	return func() {
		q.done()
	}
}

func (q *Queue) running() {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	q.waiting--
}

func (q *Queue) interrupt() {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	q.waiting++
	log.Debug("Added to queue: ", q.waiting)
}

// IsInterrupted reports whether someone is waiting for the strips.
func (q *Queue) IsInterrupted() bool {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	return q.waiting != 0
}

func (q *Queue) done() {
	defer q.runLock.Unlock()

	log.Debug("Marked done. Currently waiting: ", q.waiting)
	if q.waiting < 0 {
		log.Warn(errors.New("number waiting in queue less than zero"))
	}
}
