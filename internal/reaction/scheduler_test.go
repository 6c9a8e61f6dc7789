package reaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLivesUntilItsExpiryAndNotBeyond(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(2 * time.Second)

	token := s.Enqueue("😂", base)
	assert.Equal(t, base.Add(2*time.Second), token.ExpiresAt)

	assert.Len(t, s.Live(base), 1)
	assert.Len(t, s.Live(base.Add(2*time.Second-time.Millisecond)), 1)
	assert.Len(t, s.Live(base.Add(2*time.Second)), 0)
	assert.Len(t, s.Live(base.Add(2*time.Second+time.Millisecond)), 0)
}

func TestIdenticalSymbolsStayIndependentTokens(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(2 * time.Second)

	first := s.Enqueue("😂", base)
	second := s.Enqueue("😂", base)
	require.NotEqual(t, first.ID, second.ID)

	live := s.Live(base)
	require.Len(t, live, 2)

	// Enqueue the same symbol later; the earlier pair expires on its own
	// schedule while the newcomer stays.
	s.Enqueue("😂", base.Add(time.Second))
	live = s.Live(base.Add(2 * time.Second))
	require.Len(t, live, 1)
	assert.Equal(t, base.Add(3*time.Second), live[0].ExpiresAt)
}

func TestIDsAreMonotonic(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(0) // falls back to the default lifetime
	assert.Equal(t, DefaultLifetime, s.Lifetime())

	var last int64 = -1
	for i := 0; i < 10; i++ {
		token := s.Enqueue("👍", base)
		require.Greater(t, token.ID, last)
		last = token.ID
	}
}

func TestClearDropsEverything(t *testing.T) {
	base := time.Unix(1700000000, 0)
	s := NewScheduler(time.Minute)
	s.Enqueue("❤️", base)
	s.Enqueue("👍", base)

	s.Clear()
	assert.Empty(t, s.Live(base))
}
