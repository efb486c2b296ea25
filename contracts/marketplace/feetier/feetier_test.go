package feetier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeeBps(t *testing.T) {
	// Fresh worker pays the base rate.
	require.Equal(t, BaseBps, FeeBps(0, 0))

	// Gold requires both score and count.
	require.Equal(t, GoldBps, FeeBps(400, 3))
	require.Equal(t, BaseBps, FeeBps(400, 2))
	require.Equal(t, BaseBps, FeeBps(399, 3))

	// Platinum requires both score and count; an adequate score with a
	// count of 4 still falls through to Gold.
	require.Equal(t, PlatinumBps, FeeBps(450, 5))
	require.Equal(t, GoldBps, FeeBps(450, 4))
	require.Equal(t, GoldBps, FeeBps(449, 5))

	// A perfect score with a single job is not Platinum material yet.
	require.Equal(t, BaseBps, FeeBps(500, 1))
	require.Equal(t, PlatinumBps, FeeBps(500, 100))
}
