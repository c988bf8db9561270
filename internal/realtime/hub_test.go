// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package realtime_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/realtime"
)

func newHub() *realtime.Hub {
	return realtime.NewHub(slog.New(slog.DiscardHandler))
}

func TestHub_PublishReachesOnlyItsTopic(t *testing.T) {
	hub := newHub()
	asuna := hub.Subscribe(realtime.TopicCharacter("asuna"))
	defer asuna.Cancel()
	rem := hub.Subscribe(realtime.TopicCharacter("rem"))
	defer rem.Cancel()

	hub.Publish(realtime.Event{
		Topic: realtime.TopicCharacter("asuna"),
		Kind:  realtime.KindLikeChanged,
		Data:  map[string]int{"count": 3},
	})

	event := <-asuna.C
	assert.Equal(t, realtime.KindLikeChanged, event.Kind)
	assert.Empty(t, rem.C)
}

/*
TestHub_CancelStopsDelivery verifies the cancellation contract: after Cancel
returns, the channel is closed and nothing published afterwards reaches the
subscriber.
*/
func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := newHub()
	topic := realtime.TopicCharacter("ch1")
	sub := hub.Subscribe(topic)

	sub.Cancel()
	hub.Publish(realtime.Event{Topic: topic, Kind: realtime.KindCommentAdded})

	_, open := <-sub.C
	assert.False(t, open)
	assert.Zero(t, hub.SubscriberCount(topic))
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := newHub()
	sub := hub.Subscribe(realtime.TopicCharacter("ch1"))

	sub.Cancel()
	sub.Cancel() // must not panic or double-close
}

/*
TestHub_SlowSubscriberDropped fills a subscriber's buffer without draining it
and checks that the hub detaches the subscriber instead of blocking the
publisher, and that the topic keeps working for later subscribers.
*/
func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub := newHub()
	topic := realtime.TopicCharacter("busy")
	stalled := hub.Subscribe(topic)

	// One more than the buffer capacity forces the drop.
	for i := 0; i < 65; i++ {
		hub.Publish(realtime.Event{Topic: topic, Kind: realtime.KindCommentAdded, Data: i})
	}

	assert.Zero(t, hub.SubscriberCount(topic))

	drained := 0
	for range stalled.C {
		drained++
	}
	assert.Equal(t, 64, drained) // channel was closed after the buffered events

	fresh := hub.Subscribe(topic)
	defer fresh.Cancel()
	hub.Publish(realtime.Event{Topic: topic, Kind: realtime.KindLikeChanged})
	event := <-fresh.C
	assert.Equal(t, realtime.KindLikeChanged, event.Kind)
}

func TestHub_SubscriberCount(t *testing.T) {
	hub := newHub()
	topic := realtime.TopicCharacter("ch1")
	require.Zero(t, hub.SubscriberCount(topic))

	subs := make([]*realtime.Subscription, 0, 3)
	for i := 0; i < 3; i++ {
		subs = append(subs, hub.Subscribe(topic))
	}
	assert.Equal(t, 3, hub.SubscriberCount(topic))

	for i, sub := range subs {
		sub.Cancel()
		assert.Equal(t, 2-i, hub.SubscriberCount(topic), fmt.Sprintf("after cancel %d", i))
	}
}
