package service

import (
	"context"
	"sync"

	"libroom/infras/kafka"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	EventRequested = "booking.requested"
	EventApproved  = "booking.approved"
	EventRejected  = "booking.rejected"
	EventCancelled = "booking.cancelled"
	EventCheckedIn = "booking.checked_in"
	EventViolation = "booking.violation_added"
)

// Event describes one booking lifecycle transition. Events are delivered to
// in-process subscribers and, best-effort, to the Kafka booking topic.
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
}

// Subscription is a registered listener on booking events. Consumers read
// from Events and must call Close for deterministic teardown; after Close the
// channel is drained and closed, and no further events are delivered.
type Subscription struct {
	id     string
	events chan Event
	close  func()
	once   sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() {
	s.once.Do(s.close)
}

type eventBroker struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

func newEventBroker() *eventBroker {
	return &eventBroker{
		subscribers: make(map[string]chan Event),
	}
}

func (b *eventBroker) subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 1
	}

	id := uuid.NewString()
	events := make(chan Event, buffer)

	b.mu.Lock()
	b.subscribers[id] = events
	b.mu.Unlock()

	return &Subscription{
		id:     id,
		events: events,
		close: func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()

			close(events)
		},
	}
}

// publish fans the event out to all live subscribers. Slow subscribers drop
// events rather than block the lifecycle operation that emitted them.
func (b *eventBroker) publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, events := range b.subscribers {
		select {
		case events <- event:
		default:
			log.Warn().Str("subscriber", id).Str("event", event.Type).Msg("subscriber buffer full, event dropped")
		}
	}
}

func (s *serviceImpl) emit(ctx context.Context, event Event) {
	s.broker.publish(event)

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{
			Key:   event.BookingID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("event", event.Type).Msg("failed to publish booking event")
		}
	}()
}
