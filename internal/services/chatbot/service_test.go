package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainboard/internal/adapters/chat"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

type stubAsker struct {
	reply string
	err   error
}

func (s stubAsker) Ask(ctx context.Context, message string) (string, error) {
	return s.reply, s.err
}

func TestService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesReplyThrough", func(t *testing.T) {
		svc := New(stubAsker{reply: "price is up"}, logger.Get())

		reply, err := svc.Ask(ctx, "how is btc doing?")
		require.NoError(t, err)
		assert.Equal(t, "price is up", reply.Message)
		assert.False(t, reply.Sample)
	})

	t.Run("EmptyMessageIsAnError", func(t *testing.T) {
		svc := New(stubAsker{err: errors.Wrap(errors.ErrInvalidInput, "empty chat message")}, logger.Get())

		_, err := svc.Ask(ctx, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("UpstreamFailureDegradesToOfflineReply", func(t *testing.T) {
		svc := New(stubAsker{err: errors.ErrUpstreamUnavailable}, logger.Get())

		reply, err := svc.Ask(ctx, "hello")
		require.NoError(t, err)
		assert.True(t, reply.Sample)
		assert.Equal(t, offlineReply, reply.Message)
	})

	t.Run("UnrecognizedShapeServesDecoderFallback", func(t *testing.T) {
		// NormalizeReply hands back its fallback text with the shape error
		svc := New(stubAsker{reply: chat.FallbackReply, err: errors.Wrap(errors.ErrInvalidInput, "unrecognized chat response shape")}, logger.Get())

		reply, err := svc.Ask(ctx, "hello")
		require.NoError(t, err)
		assert.True(t, reply.Sample)
		assert.Equal(t, chat.FallbackReply, reply.Message)
	})
}
