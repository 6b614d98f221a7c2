package realtime

import (
	"context"
	"testing"
	"time"

	"salonsphere-backend/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrefixesFor(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		entity      cache.Entity
		alsoReports bool
	}{
		{cache.EntityBooking, true},
		{cache.EntityInvoice, true},
		{cache.EntityService, true},
		{cache.EntityClient, true},
		{cache.EntityProduct, false},
		{cache.EntityCampaign, false},
		{cache.EntityOverhead, false},
		{cache.EntityTenant, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			prefixes := PrefixesFor(ChangeEvent{TenantID: tenantID, Entity: tt.entity, Action: ActionUpdated})
			assert.Contains(t, prefixes, cache.TenantPrefix(tt.entity, tenantID))
			if tt.alsoReports {
				assert.Contains(t, prefixes, cache.TenantPrefix(cache.EntityReport, tenantID))
			} else {
				assert.NotContains(t, prefixes, cache.TenantPrefix(cache.EntityReport, tenantID))
			}
		})
	}
}

func TestApply_DropsStaleEntries(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryCache()
	tenantID := uuid.New()
	otherTenant := uuid.New()

	store.Set(ctx, cache.ListKey(cache.EntityBooking, tenantID), "bookings", time.Minute)
	store.Set(ctx, cache.QueryKey(cache.EntityReport, tenantID, "revenue"), "report", time.Minute)
	store.Set(ctx, cache.ListKey(cache.EntityBooking, otherTenant), "other", time.Minute)

	inv := NewInvalidator(NewBus(), store)
	inv.Apply(ctx, ChangeEvent{
		TenantID: tenantID,
		Entity:   cache.EntityBooking,
		Action:   ActionCreated,
		RecordID: uuid.New(),
	})

	_, found := store.Get(ctx, cache.ListKey(cache.EntityBooking, tenantID))
	assert.False(t, found, "booking list should be invalidated")

	_, found = store.Get(ctx, cache.QueryKey(cache.EntityReport, tenantID, "revenue"))
	assert.False(t, found, "report cache should be invalidated")

	_, found = store.Get(ctx, cache.ListKey(cache.EntityBooking, otherTenant))
	assert.True(t, found, "other tenants are untouched")
}

func TestBusDelivery_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewBus()
	defer bus.Close()

	store := cache.NewInMemoryCache()
	tenantID := uuid.New()
	store.Set(ctx, cache.ListKey(cache.EntityClient, tenantID), "clients", time.Minute)

	assert.NoError(t, NewInvalidator(bus, store).Start(ctx))

	tenantFeed, err := bus.Subscribe(ctx, TopicForTenant(tenantID))
	assert.NoError(t, err)

	sent := ChangeEvent{
		TenantID: tenantID,
		Entity:   cache.EntityClient,
		Action:   ActionDeleted,
		RecordID: uuid.New(),
	}
	assert.NoError(t, bus.Publish(ctx, sent))

	select {
	case msg := <-tenantFeed:
		got, err := DecodeEvent(msg)
		msg.Ack()
		assert.NoError(t, err)
		assert.Equal(t, sent.Entity, got.Entity)
		assert.Equal(t, sent.RecordID, got.RecordID)
		assert.False(t, got.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no event on tenant topic")
	}

	// the invalidator runs on its own goroutine; give it a moment
	assert.Eventually(t, func() bool {
		_, found := store.Get(ctx, cache.ListKey(cache.EntityClient, tenantID))
		return !found
	}, time.Second, 10*time.Millisecond)
}
