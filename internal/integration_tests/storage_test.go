package integrationtests

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"speech-bench/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3ObjectStore_BootstrapContainers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	objectStore := setupTestObjectStore(t, ctx)

	for _, bucket := range []string{"test-results", "configuration"} {
		require.NoError(t, objectStore.EnsureBucket(ctx, bucket))
		// Second create must be a no-op.
		require.NoError(t, objectStore.EnsureBucket(ctx, bucket))
	}
}

func TestS3ObjectStore_PutAndGetObject(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	objectStore := setupTestObjectStore(t, ctx)
	require.NoError(t, objectStore.EnsureBucket(ctx, "test-results"))

	key := "test-summary-from-test_data_update-0123456.json"
	content := []byte(`{"status": "Succeeded", "wordErrorRate": 9.7}`)

	require.NoError(t, objectStore.PutObject(ctx, "test-results", key, bytes.NewReader(content)))

	obj, err := objectStore.GetObject(ctx, "test-results", key)
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestS3ObjectStore_BenchmarkPointer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	objectStore := setupTestObjectStore(t, ctx)
	require.NoError(t, objectStore.EnsureBucket(ctx, "configuration"))

	exists, err := objectStore.ObjectExists(ctx, "configuration", pipeline.BenchmarkPointerBlob)
	require.NoError(t, err)
	assert.False(t, exists)

	pointer := "test-summary-from-test_baseline-BASELINE.json"
	require.NoError(t, objectStore.PutObject(ctx, "configuration", pipeline.BenchmarkPointerBlob, strings.NewReader(pointer)))

	exists, err = objectStore.ObjectExists(ctx, "configuration", pipeline.BenchmarkPointerBlob)
	require.NoError(t, err)
	assert.True(t, exists)

	obj, err := objectStore.GetObject(ctx, "configuration", pipeline.BenchmarkPointerBlob)
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, pointer, string(data))
}
