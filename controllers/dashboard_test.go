package controllers

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"salonsphere-backend/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type unreachableDriver struct{}

func (unreachableDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

type unreachableConnector struct{}

func (unreachableConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

func (unreachableConnector) Driver() driver.Driver { return unreachableDriver{} }

// unreachableDB builds a gorm handle whose every query fails at connect
// time, without touching a real database.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sql.OpenDB(unreachableConnector{})}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func overviewRequest(tenantID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	c.Set("tenantId", tenantID.String())
	c.Set("userId", uuid.New().String())
	return c, w
}

// A broken database must not take the dashboard down: the overview comes
// back zero-valued and every failed query leaves a log line.
func TestGetOverviewDegradesWhenDatabaseDown(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	dc := NewDashboardController(unreachableDB(t), cache.NewInMemoryCache(), nil)

	c, w := overviewRequest(uuid.New())
	dc.GetOverview(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var overview DashboardOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.Zero(t, overview.TotalClients)
	assert.Zero(t, overview.MonthlyRevenue)
	assert.Empty(t, overview.TodaysBookings)

	assert.Contains(t, buf.String(), "[DASHBOARD]")
	assert.Contains(t, buf.String(), "connection refused")
}
