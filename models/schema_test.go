package models

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// A client phone number is unique within one salon, never across salons.
func TestClientPhoneUniquePerTenant(t *testing.T) {
	s := parseSchema(t, &Client{})

	idx := s.LookIndex("idx_tenant_phone")
	require.NotNil(t, idx)
	assert.Equal(t, "UNIQUE", idx.Class)

	columns := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		columns = append(columns, f.DBName)
	}
	assert.Equal(t, []string{"tenant_id", "phone"}, columns)
}

// Tenants without a custom domain store NULL; two such tenants must not
// collide under the unique index.
func TestTenantDomainNullable(t *testing.T) {
	s := parseSchema(t, &Tenant{})

	field := s.FieldsByName["Domain"]
	require.NotNil(t, field)
	assert.Equal(t, reflect.Ptr, field.FieldType.Kind())
	assert.False(t, field.NotNull)

	var domainIndex *schema.Index
	for _, idx := range s.ParseIndexes() {
		for _, f := range idx.Fields {
			if f.DBName == "domain" {
				domainIndex = idx
			}
		}
	}
	require.NotNil(t, domainIndex)
	assert.Equal(t, "UNIQUE", domainIndex.Class)
}
