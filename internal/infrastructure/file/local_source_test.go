package file_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/profile-import/internal/infrastructure/file"
)

func TestLocalSourceSaveThenOpen(t *testing.T) {
	t.Parallel()

	source := file.NewLocalSource(t.TempDir())

	path, err := source.Save(context.Background(), "Profiles.CSV", strings.NewReader("full_name,email\n"))
	require.NoError(t, err)
	assert.Equal(t, "uploads", filepath.Dir(path))
	assert.Equal(t, ".csv", filepath.Ext(path))

	rc, err := source.Open(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "full_name,email\n", string(data))
}

func TestLocalSourceSaveCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := file.NewLocalSource(t.TempDir()).Save(ctx, "profiles.csv", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSourceOpenMissing(t *testing.T) {
	t.Parallel()

	_, err := file.NewLocalSource(t.TempDir()).Open(context.Background(), "missing.csv")
	assert.Error(t, err)
}
