package pubsub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event types published by the service. Topics are user IDs; an external
// notifier dispatching email or push would subscribe per user.
const (
	EventWorkSubmitted       = "work_submitted"
	EventLikeAdded           = "like_added"
	EventChallengeClosed     = "challenge_closed"
	EventApplicationReviewed = "application_reviewed"
)

// Broker is a simple in-memory pub/sub system for notification events.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte // topic -> list of subscriber channels
}

type Event struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

var (
	once   sync.Once
	broker *Broker
)

// GetBroker returns the singleton instance of the Broker.
func GetBroker() *Broker {
	once.Do(func() {
		broker = &Broker{
			subscribers: make(map[string][]chan []byte),
		}
	})
	return broker
}

// Subscribe subscribes to a topic and returns the receive channel plus an
// unsubscribe func.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()
	ch := make(chan []byte, 128)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subscribers := b.subscribers[topic]
		for i, sub := range subscribers {
			if sub == ch {
				b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debugf("unsubscribed from topic %s", topic)
	}

	zap.S().Debugf("new subscription to topic %s", topic)
	return ch, unsubscribe
}

// Publish publishes a message to all subscribers of a topic (non-blocking).
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// If a subscriber's channel is full, drop the message for them.
			// This prevents a slow consumer from blocking the publisher.
		}
	}
}

// FormatEvent encodes an event for publishing.
func FormatEvent(eventType string, data string) []byte {
	msg := Event{Type: eventType, Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{"type": "error", "data": "json format error"}`)
	}
	return bytes
}
