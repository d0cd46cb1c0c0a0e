package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/defo-server/internal/config"
	"github.com/dtroode/defo-server/internal/storage/local"
)

func TestNew_Local(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Backend: BackendLocal, Dir: filepath.Join(t.TempDir(), "uploads")}}

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &local.Storage{}, s)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Backend: "ftp"}}

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown storage backend")
}
