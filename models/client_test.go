package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoyaltyTierForSpend(t *testing.T) {
	tests := []struct {
		spend float64
		want  string
	}{
		{0, TierSilver},
		{19999, TierSilver},
		{20000, TierGold},
		{49999, TierGold},
		{50000, TierPlatinum},
		{120000, TierPlatinum},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, LoyaltyTierForSpend(tt.spend), "spend %v", tt.spend)
	}
}
