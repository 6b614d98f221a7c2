package realtime

import (
	"context"
	"log"

	"salonsphere-backend/cache"
)

// Invalidator drops cached reads when their underlying rows change. It never
// rewrites cache contents; the next read re-fetches from the database.
type Invalidator struct {
	bus   *Bus
	cache cache.Cache
}

func NewInvalidator(bus *Bus, c cache.Cache) *Invalidator {
	return &Invalidator{bus: bus, cache: c}
}

// Start consumes the global change topic until ctx is cancelled.
func (i *Invalidator) Start(ctx context.Context) error {
	messages, err := i.bus.Subscribe(ctx, TopicAll)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			ev, err := DecodeEvent(msg)
			if err != nil {
				log.Printf("[REALTIME] dropping malformed change event: %v", err)
				msg.Ack()
				continue
			}
			i.Apply(ctx, ev)
			msg.Ack()
		}
	}()
	return nil
}

// Apply removes every cache entry the event makes stale.
func (i *Invalidator) Apply(ctx context.Context, ev ChangeEvent) {
	for _, prefix := range PrefixesFor(ev) {
		i.cache.DeleteByPrefix(ctx, prefix)
	}
}

// PrefixesFor maps a change event to the cache prefixes it invalidates:
// always the entity's own tenant prefix (covering list, detail, and query
// keys), plus the report prefix for entities that feed the dashboard
// aggregations.
func PrefixesFor(ev ChangeEvent) []string {
	prefixes := []string{cache.TenantPrefix(ev.Entity, ev.TenantID)}
	switch ev.Entity {
	case cache.EntityBooking, cache.EntityInvoice, cache.EntityService, cache.EntityClient:
		prefixes = append(prefixes, cache.TenantPrefix(cache.EntityReport, ev.TenantID))
	}
	return prefixes
}
