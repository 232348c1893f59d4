package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homescout/crawl"
)

func TestHostLimiter_spaces_requests_to_one_host(t *testing.T) {
	t.Parallel()

	l := crawl.NewHostLimiter(20) // 50ms between requests

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background(), "www.realtor.com"))
	}

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestHostLimiter_hosts_are_independent(t *testing.T) {
	t.Parallel()

	l := crawl.NewHostLimiter(1)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), "a.example.com"))
	require.NoError(t, l.Wait(context.Background(), "b.example.com"))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHostLimiter_respects_context(t *testing.T) {
	t.Parallel()

	l := crawl.NewHostLimiter(0.001)
	require.NoError(t, l.Wait(context.Background(), "www.realtor.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, l.Wait(ctx, "www.realtor.com"))
}
