package requestctx

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestLoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	ctx := WithRequestID(context.Background(), "req-2")
	Logger(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-2"`)

	buf.Reset()
	Logger(context.Background()).Info().Msg("plain")
	assert.NotContains(t, buf.String(), "request_id")
	assert.Contains(t, buf.String(), "plain")
}
