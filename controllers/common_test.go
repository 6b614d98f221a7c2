package controllers

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"salonsphere-backend/cache"
	"salonsphere-backend/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishChangeLogsDeliveryFailure(t *testing.T) {
	bus := realtime.NewBus()
	require.NoError(t, bus.Close())

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	publishChange(context.Background(), bus, uuid.New(), cache.EntityClient, realtime.ActionCreated, uuid.New())

	assert.Contains(t, buf.String(), "failed to publish")
	assert.Contains(t, buf.String(), string(cache.EntityClient))
}

func TestPublishChangeToleratesNilBus(t *testing.T) {
	assert.NotPanics(t, func() {
		publishChange(context.Background(), nil, uuid.New(), cache.EntityClient, realtime.ActionCreated, uuid.New())
	})
}
