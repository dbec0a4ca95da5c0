package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "flightconnect"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_WithEndpoint(t *testing.T) {
	// grpc.NewClient connects lazily, so no collector is needed to build the providers.
	shutdown, err := Init(context.Background(), Config{
		ServiceName:  "flightconnect",
		Environment:  "test",
		OTLPEndpoint: "127.0.0.1:4317",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
