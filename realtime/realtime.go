// Package realtime carries row-change notifications between the write path
// and everything that caches or streams reads. Events say that something
// changed, never what; consumers re-fetch authoritative state.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"salonsphere-backend/cache"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	// TopicAll receives every event regardless of tenant; the cache
	// invalidator listens here.
	TopicAll = "changes"
)

// TopicForTenant is the per-tenant stream consumed by the SSE endpoint.
func TopicForTenant(tenantID uuid.UUID) string {
	return "changes." + tenantID.String()
}

// ChangeEvent describes one row mutation.
type ChangeEvent struct {
	TenantID   uuid.UUID    `json:"tenantId"`
	Entity     cache.Entity `json:"entity"`
	Action     string       `json:"action"`
	RecordID   uuid.UUID    `json:"recordId"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// Bus is the in-process change feed, backed by watermill's gochannel.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus() *Bus {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 100,
		},
		watermill.NewStdLogger(false, false),
	)
	return &Bus{pubsub: goChannel}
}

// Publish fans the event out to the tenant's topic and the global topic.
func (b *Bus) Publish(ctx context.Context, ev ChangeEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(TopicForTenant(ev.TenantID), msg.Copy()); err != nil {
		return err
	}
	return b.pubsub.Publish(TopicAll, msg)
}

// Subscribe returns the message stream for one topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// DecodeEvent unmarshals a watermill message back into a ChangeEvent.
func DecodeEvent(msg *message.Message) (ChangeEvent, error) {
	var ev ChangeEvent
	err := json.Unmarshal(msg.Payload, &ev)
	return ev, err
}
