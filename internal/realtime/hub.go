// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

/*
Package realtime implements the in-process publish/subscribe hub behind the
live comment and like streams.

Every character has its own topic. Domain services publish change events to
the topic whenever a comment or like mutation commits; subscribers (websocket
clients and the in-memory like counters) receive them push-based, never by
polling.

# Cancellation

A subscription is a handle explicitly tied to its consumer's lifetime. After
Cancel returns, no further event is delivered on the subscription's channel —
this is a correctness requirement: a late notification writing into a view
that has moved on to another character could resurrect deleted state.
*/
package realtime

import (
	"log/slog"
	"sync"
)

// # Event Model

// Event kinds published by the social domain.
const (
	KindCommentAdded   = "comment_added"
	KindCommentDeleted = "comment_deleted"
	KindLikeChanged    = "like_changed"
)

// Event is a single change notification on a topic.
type Event struct {
	// Topic identifies the character stream, e.g. "character:<id>".
	Topic string `json:"topic"`
	// Kind is one of the Kind* constants.
	Kind string `json:"kind"`
	// Data is the event payload, marshaled as-is for websocket delivery.
	Data any `json:"data"`
}

// TopicCharacter builds the canonical topic name for a character stream.
func TopicCharacter(characterID string) string {
	return "character:" + characterID
}

// # Subscription Handle

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind is dropped rather than allowed to block publishers.
const subscriberBuffer = 64

// Subscription is a cancellable handle on a topic's event stream.
type Subscription struct {
	// C delivers events until the subscription is cancelled or dropped.
	// The channel is closed afterwards.
	C <-chan Event

	hub   *Hub
	topic string
	ch    chan Event
	once  sync.Once
}

// Cancel detaches the subscription and closes its channel.
//
// Safe to call more than once. On return the hub holds no reference to the
// subscription and will never deliver to it again.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.detach(s)
	})
}

// # Hub

// Hub fans events out to per-topic subscriber sets.
//
// Constructed once in main and injected into the social services and the
// websocket handler. Tests instantiate isolated hubs per case.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
	log    *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
		log:    log,
	}
}

// Subscribe attaches a new subscriber to a topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		hub:   h,
		topic: topic,
		ch:    make(chan Event, subscriberBuffer),
	}
	sub.C = sub.ch

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.topics[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.topics[topic] = set
	}
	set[sub] = struct{}{}

	return sub
}

// Publish delivers an event to every current subscriber of its topic.
//
// Delivery is non-blocking: a subscriber whose buffer is full is detached
// and its channel closed, so one stalled websocket cannot back-pressure the
// mutation path.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.topics[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			h.log.Warn("realtime_subscriber_dropped", slog.String("topic", event.Topic))
			h.removeLocked(sub)
		}
	}
}

// detach removes a subscription on behalf of Cancel.
func (h *Hub) detach(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// removeLocked unlinks and closes a subscription. Caller holds h.mu.
func (h *Hub) removeLocked(sub *Subscription) {
	set, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, member := set[sub]; !member {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.ch)
}

// SubscriberCount reports the current number of subscribers on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
