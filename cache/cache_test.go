package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeyBuilders(t *testing.T) {
	tenantID := uuid.New()
	recordID := uuid.New()
	prefix := TenantPrefix(EntityClient, tenantID)

	// every key builder for one entity and tenant lands under the same
	// prefix, so DeleteByPrefix on it clears all of them
	assert.True(t, strings.HasPrefix(ListKey(EntityClient, tenantID), prefix))
	assert.True(t, strings.HasPrefix(DetailKey(EntityClient, tenantID, recordID), prefix))
	assert.True(t, strings.HasPrefix(QueryKey(EntityClient, tenantID, "search", "jan", 10), prefix))
}

func TestKeyBuilders_Isolation(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()

	assert.NotEqual(t, ListKey(EntityClient, tenantA), ListKey(EntityClient, tenantB))
	assert.NotEqual(t, ListKey(EntityClient, tenantA), ListKey(EntityBooking, tenantA))
	assert.False(t, strings.HasPrefix(ListKey(EntityClient, tenantB), TenantPrefix(EntityClient, tenantA)))
}

func TestQueryKey_ParamsDistinguish(t *testing.T) {
	tenantID := uuid.New()
	a := QueryKey(EntityReport, tenantID, "revenue", "2026-03-01", "2026-03-31")
	b := QueryKey(EntityReport, tenantID, "revenue", "2026-03-01", "2026-04-30")
	assert.NotEqual(t, a, b)
}

func TestInMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()
	tenantA := uuid.New()
	tenantB := uuid.New()

	c.Set(ctx, ListKey(EntityClient, tenantA), "a-list", time.Minute)
	c.Set(ctx, DetailKey(EntityClient, tenantA, uuid.New()), "a-detail", time.Minute)
	c.Set(ctx, ListKey(EntityClient, tenantB), "b-list", time.Minute)

	c.DeleteByPrefix(ctx, TenantPrefix(EntityClient, tenantA))

	_, found := c.Get(ctx, ListKey(EntityClient, tenantA))
	assert.False(t, found)

	v, found := c.Get(ctx, ListKey(EntityClient, tenantB))
	assert.True(t, found)
	assert.Equal(t, "b-list", v)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	c.Set(ctx, "short-lived", 1, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get(ctx, "short-lived")
	assert.False(t, found)
}
