package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(true)
	etag := c.Set("season:1:periods", []byte(`{"periods":[]}`), time.Minute)

	data, got, ok := c.Get("season:1:periods")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"periods":[]}`), data)
	assert.Equal(t, etag, got)
	assert.Equal(t, ComputeETag(data), got)
}

func TestExpiredEntryMisses(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(true)
	c.Set("season:1:periods", []byte("a"), time.Minute)
	c.Set("season:1:trend", []byte("b"), time.Minute)
	c.Set("season:2:periods", []byte("c"), time.Minute)

	dropped := c.InvalidatePrefix("season:1:")
	assert.Equal(t, 2, dropped)

	_, _, ok := c.Get("season:1:periods")
	assert.False(t, ok)
	_, _, ok = c.Get("season:2:periods")
	assert.True(t, ok)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.False(t, CheckETagMatch("", etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
