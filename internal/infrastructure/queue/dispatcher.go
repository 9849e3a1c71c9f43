package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/api/metrics"
	"github.com/wearloop/rental-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes rental notifications to a fixed set of workers using
// consistent hashing on the item id, guaranteeing per-item delivery ordering
// (a return notification never overtakes the matching creation notification).
type Dispatcher struct {
	workers   []chan ports.NotificationEvent
	processor ports.NotificationProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.NotificationProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.NotificationEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its item. The call is
// non-blocking up to channelBuffer capacity; the producing operation has
// already committed and must not wait on delivery.
func (d *Dispatcher) Enqueue(event ports.NotificationEvent) {
	i := d.shardIndex(event.ItemID)
	d.workers[i] <- event
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps an item id deterministically to a worker index.
func (d *Dispatcher) shardIndex(itemID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(itemID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.processor.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("rental_id", event.RentalID).
					Str("event", string(event.Type)).
					Int("worker_id", id).
					Msg("notification processing failed")
			}
		}
	}
}
