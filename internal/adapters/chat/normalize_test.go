package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainboard/pkg/errors"
)

func TestNormalizeReply(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"MessageField", `{"message": "hello"}`, "hello"},
		{"ResponseField", `{"response": "from response"}`, "from response"},
		{"OutputField", `{"output": "from output"}`, "from output"},
		{"MessageWins", `{"message": "first", "response": "second"}`, "first"},
		{"ArrayFirstElement", `["first element", "second"]`, "first element"},
		{"PlainString", `"just text"`, "just text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeReply([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("UnrecognizedShapeFallsBack", func(t *testing.T) {
		got, err := NormalizeReply([]byte(`{"unexpected": 42}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
		assert.Equal(t, FallbackReply, got)
	})

	t.Run("EmptyBodyFallsBack", func(t *testing.T) {
		got, err := NormalizeReply([]byte("  "))
		require.Error(t, err)
		assert.Equal(t, FallbackReply, got)
	})

	t.Run("EmptyArrayFallsBack", func(t *testing.T) {
		got, err := NormalizeReply([]byte(`[]`))
		require.Error(t, err)
		assert.Equal(t, FallbackReply, got)
	})
}

func TestClient_Ask(t *testing.T) {
	t.Run("ProxiesAndNormalizes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"response": "BTC is trading at $64k"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", 2*time.Second)

		reply, err := client.Ask(context.Background(), "what is the price?")
		require.NoError(t, err)
		assert.Equal(t, "BTC is trading at $64k", reply)
	})

	t.Run("EmptyMessageRejected", func(t *testing.T) {
		client := NewClient("http://localhost", "", time.Second)
		_, err := client.Ask(context.Background(), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("UnconfiguredUpstream", func(t *testing.T) {
		client := NewClient("", "", time.Second)
		_, err := client.Ask(context.Background(), "hi")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))
	})

	t.Run("UpstreamErrorStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", time.Second)
		_, err := client.Ask(context.Background(), "hi")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))
	})
}
