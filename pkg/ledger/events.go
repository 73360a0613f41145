package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// CycleEvent summarizes one committed cycle. Events are advisory and never read back.
type CycleEvent struct {
	Tick        int64  `json:"tick"`
	RunID       string `json:"run_id"`
	Missions    int    `json:"missions"`
	Failures    int    `json:"failures"`
	Invalidated bool   `json:"invalidated,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

// PublishCycle publishes a cycle event to the colony's cycle_events channel.
func (c *Client) PublishCycle(ctx context.Context, ev *CycleEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal cycle event: %w", err)
	}

	if err := c.rdb.Publish(ctx, CycleEventsChannel(c.colony), data).Err(); err != nil {
		return fmt.Errorf("failed to publish cycle event: %w", err)
	}
	return nil
}

// Subscription is an active subscription to cycle events.
// Caller must call Close() when done.
type Subscription struct {
	events <-chan *CycleEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of cycle events. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan *CycleEvent {
	return s.events
}

// Errors returns non-fatal subscription errors; malformed messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeCycleEvents subscribes to the colony's cycle events.
// The subscription is confirmed before returning, so events published afterwards
// are delivered. Delivery is at-most-once; a slow subscriber may miss events.
func (c *Client) SubscribeCycleEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, CycleEventsChannel(c.colony))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to cycle events: %w", err)
	}

	eventsChan := make(chan *CycleEvent, 10)
	errorsChan := make(chan error, 10)
	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev CycleEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal cycle event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
