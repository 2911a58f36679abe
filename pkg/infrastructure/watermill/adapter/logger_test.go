package adapter_test

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/go-busstation/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/zaplogger/adapter"
)

func Test_WatermillLogger_With_Merges_Fields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := adapter.NewWatermillLoggerAdapter(zapAdapter.NewZapAppLoggerFrom(zap.New(core)))

	logger.With(watermill.LogFields{"topic": "ticket.created"}).Info("subscribed", watermill.LogFields{"handler": "export"})

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "ticket.created", ctx["topic"])
	assert.Equal(t, "export", ctx["handler"])
	assert.Equal(t, adapter.Component, ctx["component"])
}

func Test_WatermillLogger_Error_Tolerates_Nil_Error(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := adapter.NewWatermillLoggerAdapter(zapAdapter.NewZapAppLoggerFrom(zap.New(core)))

	assert.NotPanics(t, func() { logger.Error("closing", nil, nil) })
	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "error")
}
