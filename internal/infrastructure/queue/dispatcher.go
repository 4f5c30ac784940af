package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/ports"
	"github.com/Sirpyerre/book-reviews/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes review events to a fixed set of workers using consistent
// hashing on the ISBN, guaranteeing per-book event ordering.
type Dispatcher struct {
	workers []chan ports.ReviewEventInput
	service ports.ReviewEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReviewEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ReviewEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReviewEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its book. It never
// blocks: when that worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event ports.ReviewEventInput) {
	idx := d.shardIndex(event.ISBN)
	label := strconv.Itoa(idx)
	select {
	case d.workers[idx] <- event:
		metrics.ReviewEventsQueueDepth.WithLabelValues(label).Set(float64(len(d.workers[idx])))
	default:
		metrics.ReviewEventsDroppedTotal.WithLabelValues(string(event.Action)).Inc()
		d.log.Warn().
			Str("isbn", event.ISBN).
			Str("action", string(event.Action)).
			Int("worker_id", idx).
			Msg("review event queue full, event dropped")
	}
}

// shardIndex maps an ISBN deterministically to a worker index.
func (d *Dispatcher) shardIndex(isbn string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(isbn))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReviewEventInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReviewEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("isbn", event.ISBN).
					Int("worker_id", id).
					Msg("review event processing failed")
			}
		}
	}
}
