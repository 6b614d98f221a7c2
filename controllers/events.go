package controllers

import (
	"io"
	"net/http"

	"salonsphere-backend/realtime"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
)

type EventsController struct {
	Bus *realtime.Bus
}

func NewEventsController(bus *realtime.Bus) *EventsController {
	return &EventsController{Bus: bus}
}

// Stream pushes the tenant's change events over SSE. The feed carries no
// record data; the frontend re-fetches whatever it shows for that entity.
func (ec *EventsController) Stream(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	messages, err := ec.Bus.Subscribe(ctx, realtime.TopicForTenant(tenantUUID))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to subscribe to change feed")
		return
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-messages:
			if !open {
				return false
			}
			ev, err := realtime.DecodeEvent(msg)
			msg.Ack()
			if err != nil {
				return true
			}
			c.SSEvent("change", ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
