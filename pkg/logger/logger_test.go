package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memopad/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development logger", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("production logger with default level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "not-a-level")
		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestContextRoundTrip(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), log)

	found, err := logger.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, log, found)
}

func TestFromContext_Missing(t *testing.T) {
	found, err := logger.FromContext(context.Background())
	require.ErrorIs(t, err, logger.ErrLoggerNotFound)
	assert.Nil(t, found)
}

func TestLog_FallsBackWithoutContextLogger(t *testing.T) {
	log := logger.Log(context.Background())
	assert.NotNil(t, log)
}

func TestRequestIDContext(t *testing.T) {
	t.Run("generates an id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("keeps a provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("absent id", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, id)
	})
}
