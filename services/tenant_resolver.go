// services/tenant_resolver.go
package services

import (
	"context"
	"errors"
	"os"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/utils"

	"gorm.io/gorm"
)

var ErrTenantNotFound = errors.New("no tenant for this host")

const domainCacheTTL = 10 * time.Minute

// TenantResolver maps a request Host header to a tenant. A custom domain
// wins over a subdomain of the base domain. Resolutions are cached; the
// cache invalidator drops them when the tenant row changes.
type TenantResolver struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewTenantResolver(db *gorm.DB, c cache.Cache) *TenantResolver {
	return &TenantResolver{db: db, cache: c}
}

// Resolve looks up the tenant behind a Host header.
func (r *TenantResolver) Resolve(ctx context.Context, host string) (models.Tenant, error) {
	host = utils.NormalizeHost(host)
	if host == "" {
		return models.Tenant{}, ErrTenantNotFound
	}

	key := cache.DomainKey(host)
	if cached, found := r.cache.Get(ctx, key); found {
		if tenant, ok := cached.(models.Tenant); ok {
			return tenant, nil
		}
	}

	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("domain = ?", host).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub, ok := utils.SubdomainOf(host, os.Getenv("BASE_DOMAIN"))
		if !ok {
			return models.Tenant{}, ErrTenantNotFound
		}
		err = r.db.WithContext(ctx).Where("subdomain = ?", sub).First(&tenant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tenant{}, ErrTenantNotFound
		}
	}
	if err != nil {
		return models.Tenant{}, err
	}

	r.cache.Set(ctx, key, tenant, domainCacheTTL)
	return tenant, nil
}
