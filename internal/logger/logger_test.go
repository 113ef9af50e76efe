package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultIsUsableBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("info", zap.String("k", "v"))
		WarnCtx(context.Background(), "warn")
		Error(errors.New("boom"))
		Flush(time.Millisecond)
	})
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(Config{Debug: true, Service: "test"}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zap.DebugLevel))
	assert.NotNil(t, FromContext(context.Background()))
}
