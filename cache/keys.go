package cache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity names the cacheable collections. Key builders take an Entity so
// the invalidation scope of a mutation is fixed by type, not by convention.
type Entity string

const (
	EntityClient       Entity = "client"
	EntityService      Entity = "service"
	EntityBooking      Entity = "booking"
	EntityInvoice      Entity = "invoice"
	EntityProduct      Entity = "product"
	EntityCampaign     Entity = "campaign"
	EntityStaff        Entity = "staff"
	EntityOverhead     Entity = "overhead"
	EntitySubscription Entity = "subscription"
	EntityTenant       Entity = "tenant"
	EntityReport       Entity = "report"
)

const keyVersion = "v1"

// TenantPrefix is the prefix shared by every cached key of one entity type
// for one tenant. DeleteByPrefix on this string is the invalidation unit.
func TenantPrefix(entity Entity, tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s:", entity, keyVersion, tenantID)
}

// ListKey caches a tenant's collection read.
func ListKey(entity Entity, tenantID uuid.UUID) string {
	return TenantPrefix(entity, tenantID) + "list"
}

// DetailKey caches a single record read.
func DetailKey(entity Entity, tenantID, id uuid.UUID) string {
	return TenantPrefix(entity, tenantID) + id.String()
}

// QueryKey caches a parameterized read, keyed (operation, tenant, params).
func QueryKey(entity Entity, tenantID uuid.UUID, op string, params ...interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, op)
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%v", p))
	}
	return TenantPrefix(entity, tenantID) + strings.Join(parts, ":")
}

// DomainKey caches host header to tenant resolution. It is not tenant
// scoped: at resolution time the tenant is exactly what we do not know yet.
func DomainKey(host string) string {
	return fmt.Sprintf("domain:%s:%s", keyVersion, host)
}
