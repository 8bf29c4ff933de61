package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/app"
	"github.com/autopropelidos/portal/internal/core/domain"
)

// newTestServer builds a server over the embedded seed datasets.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	settings := domain.DefaultAppSettings()
	settings.Storage.Backend = domain.StorageBackendMemory
	settings.Storage.DataDir = t.TempDir()

	a, err := app.New(context.Background(), &settings)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	s, err := NewServer(&Ports{Unified: a.Unified, Catalog: a.Catalog})
	require.NoError(t, err)
	return s
}
