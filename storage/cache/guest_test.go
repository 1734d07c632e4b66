package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himethwe/Gradely-Webapp/core"
)

func newCache(ttl time.Duration) *guestCache {
	return NewGuestCache(&core.Config{Academic: core.AcademicConfig{GuestCacheTTL: ttl}})
}

func TestGuestCache(t *testing.T) {
	gc := newCache(time.Hour)

	_, ok := gc.Get("g1:guestGrades")
	assert.False(t, ok)

	gc.Set("g1:guestGrades", []byte(`{"1":"A"}`))
	gc.Set("g1:guestSuppGrades", []byte(`{}`))

	data, ok := gc.Get("g1:guestGrades")
	require.True(t, ok)
	assert.JSONEq(t, `{"1":"A"}`, string(data))
	assert.Equal(t, 2, gc.Len())

	gc.Delete("g1:guestGrades")
	_, ok = gc.Get("g1:guestGrades")
	assert.False(t, ok)

	// slots are independent
	_, ok = gc.Get("g1:guestSuppGrades")
	assert.True(t, ok)
}

func TestGuestCache_expiry(t *testing.T) {
	gc := newCache(20 * time.Millisecond)
	gc.Set("g2:guestGrades", []byte(`{}`))

	assert.Eventually(t, func() bool {
		_, ok := gc.Get("g2:guestGrades")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
