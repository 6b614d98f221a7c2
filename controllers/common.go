package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"salonsphere-backend/cache"
	"salonsphere-backend/realtime"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tenantFromContext reads the tenant id the auth middleware put on the
// request. Handlers bail out before touching the database when it is
// missing; an unscoped query is never issued.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get("tenantId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tenant ID not found in context")
		return uuid.Nil, false
	}
	tenantUUID, err := uuid.Parse(tenantID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tenant ID format")
		return uuid.Nil, false
	}
	return tenantUUID, true
}

func userFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}

// publishChange notifies the realtime bus after a successful mutation. The
// cache invalidator and SSE subscribers both hang off this.
func publishChange(ctx context.Context, bus *realtime.Bus, tenantID uuid.UUID, entity cache.Entity, action string, recordID uuid.UUID) {
	if bus == nil {
		return
	}
	err := bus.Publish(ctx, realtime.ChangeEvent{
		TenantID: tenantID,
		Entity:   entity,
		Action:   action,
		RecordID: recordID,
	})
	if err != nil {
		// a lost event leaves stale cache entries until their TTL expires
		log.Printf("[REALTIME] failed to publish %s %s change event for tenant %s: %v", entity, action, tenantID, err)
	}
}
