package dispatch

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	apierrors "github.com/sudo-self/sudollama/internal/errors"
)

// DefaultQueueSize is used when NewQueue receives a non-positive size
const DefaultQueueSize = 16

// Queue serializes prompts onto one worker. Results arrive on Results()
// in the order the prompts were submitted.
type Queue struct {
	runner   Runner
	requests chan Request
	results  chan Result

	ctx   context.Context
	stop  context.CancelFunc
	group errgroup.Group

	mu        sync.Mutex
	closed    bool
	currentID string
	cancelCur context.CancelFunc
	waiting   map[string]struct{}
	canceled  map[string]struct{}

	pending atomic.Int64
}

// NewQueue starts the worker. size is how many prompts may wait behind the running one.
func NewQueue(runner Runner, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}

	ctx, stop := context.WithCancel(context.Background())
	q := &Queue{
		runner:   runner,
		requests: make(chan Request, size),
		results:  make(chan Result, size+1),
		ctx:      ctx,
		stop:     stop,
		waiting:  make(map[string]struct{}),
		canceled: make(map[string]struct{}),
	}
	q.group.Go(q.loop)
	return q
}

// Submit enqueues prompt without blocking.
func (q *Queue) Submit(prompt string) (Request, error) {
	if strings.TrimSpace(prompt) == "" {
		return Request{}, apierrors.ErrEmptyPrompt
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return Request{}, apierrors.ErrQueueClosed
	}

	req := Request{
		ID:          uuid.NewString(),
		Prompt:      prompt,
		SubmittedAt: time.Now(),
	}

	select {
	case q.requests <- req:
	default:
		return Request{}, apierrors.ErrQueueFull
	}

	q.waiting[req.ID] = struct{}{}
	q.pending.Add(1)
	log.Debug().Str("request_id", req.ID).Int64("pending", q.pending.Load()).Msg("request queued")
	return req, nil
}

// Results returns the channel results are delivered on. It is closed by Close.
func (q *Queue) Results() <-chan Result {
	return q.results
}

// Pending returns the number of submitted requests whose result has not been delivered
func (q *Queue) Pending() int {
	return int(q.pending.Load())
}

// Cancel cancels a running or waiting request. It reports false if the
// request already finished or was never submitted.
func (q *Queue) Cancel(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if id == "" {
		return false
	}
	if id == q.currentID && q.cancelCur != nil {
		q.cancelCur()
		log.Debug().Str("request_id", id).Msg("running request canceled")
		return true
	}

	if _, ok := q.waiting[id]; ok {
		q.canceled[id] = struct{}{}
		log.Debug().Str("request_id", id).Msg("queued request canceled")
		return true
	}
	return false
}

// CancelAll cancels the running request and every waiting one.
// It returns how many requests were affected.
func (q *Queue) CancelAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	if q.cancelCur != nil {
		q.cancelCur()
		n++
	}
	for id := range q.waiting {
		if _, ok := q.canceled[id]; !ok {
			q.canceled[id] = struct{}{}
			n++
		}
	}
	return n
}

// Close stops accepting prompts, cancels outstanding work and waits for the
// worker to exit. Results still buffered remain readable until drained.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.requests)
	q.mu.Unlock()

	q.stop()
	err := q.group.Wait()
	close(q.results)
	return err
}

// loop is the single worker
func (q *Queue) loop() error {
	for req := range q.requests {
		res := q.run(req)
		res.RequestID = req.ID
		res.Prompt = req.Prompt

		select {
		case q.results <- res:
		case <-q.ctx.Done():
			// Nobody is reading after Close; drop the result.
		}
		q.pending.Add(-1)
	}
	return nil
}

// run executes req unless it was canceled while waiting
func (q *Queue) run(req Request) Result {
	ctx, cancel := context.WithCancel(q.ctx)
	defer cancel()

	q.mu.Lock()
	delete(q.waiting, req.ID)
	_, skipped := q.canceled[req.ID]
	delete(q.canceled, req.ID)
	if !skipped {
		q.currentID = req.ID
		q.cancelCur = cancel
	}
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.currentID = ""
		q.cancelCur = nil
		q.mu.Unlock()
	}()

	if skipped || ctx.Err() != nil {
		return Result{Err: apierrors.NewCanceledError(req.ID)}
	}

	res := q.runner.Dispatch(ctx, req.Prompt)
	if apierrors.IsCanceledError(res.Err) {
		res.Err = apierrors.NewCanceledError(req.ID)
	}
	return res
}
