package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	sendTimeout    = 30 * time.Second
)

// Delivery outcomes passed to Recorder.Notification.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

// Recorder receives delivery outcomes and queue depth. Implementations must be
// safe for concurrent use.
type Recorder interface {
	Notification(result string)
	QueueDepth(n int)
}

type nopRecorder struct{}

func (nopRecorder) Notification(string) {}
func (nopRecorder) QueueDepth(int) {}

// Dispatcher hands orders to a small worker pool so a slow relay never delays
// the order response. Enqueue never blocks; a full queue drops the notification.
type Dispatcher struct {
	queue   chan domain.Order
	workers int
	next    ports.Notifier
	rec     Recorder
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher wraps next. If workers <= 0, defaultWorkers is used; a nil rec
// records nothing.
func NewDispatcher(workers int, next ports.Notifier, rec Recorder, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Dispatcher{
		queue:   make(chan domain.Order, channelBuffer),
		workers: workers,
		next:    next,
		rec:     rec,
		log:     log,
	}
}

// Start launches the workers. When ctx is cancelled they stop and count
// whatever is still queued as dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify enqueues order and returns immediately.
func (d *Dispatcher) Notify(_ context.Context, order domain.Order) error {
	select {
	case d.queue <- order:
		d.rec.QueueDepth(len(d.queue))
	default:
		d.rec.Notification(ResultDropped)
		d.log.Warn().Str("order_id", order.ID).Msg("notification queue full, dropping")
	}
	return nil
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		if ctx.Err() != nil {
			d.discardPending(id)
			return
		}
		select {
		case <-ctx.Done():
			d.discardPending(id)
			return
		case order := <-d.queue:
			d.rec.QueueDepth(len(d.queue))
			d.deliver(ctx, id, order)
		}
	}
}

func (d *Dispatcher) discardPending(id int) {
	var ids []string
	for {
		select {
		case order := <-d.queue:
			d.rec.Notification(ResultDropped)
			ids = append(ids, order.ID)
		default:
			d.rec.QueueDepth(0)
			if len(ids) > 0 {
				d.log.Warn().
					Strs("order_ids", ids).
					Int("worker_id", id).
					Msg("dispatcher stopped, pending notifications dropped")
			}
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, order domain.Order) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.next.Notify(sendCtx, order); err != nil {
		d.rec.Notification(ResultFailed)
		d.log.Warn().Err(err).
			Str("order_id", order.ID).
			Int("worker_id", id).
			Msg("order notification failed")
		return
	}
	d.rec.Notification(ResultSent)
}
