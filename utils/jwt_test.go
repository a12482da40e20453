package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "tenant-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, tenantID, err := ExtractIDsFromToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
	require.Equal(t, "tenant-1", tenantID)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "tenant-1", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIDsFromToken(token)
	require.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractIDsFromToken("not-a-token")
	require.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	require.Equal(t, a, b)
	require.Len(t, a, 64)
	require.NotEqual(t, a, HashToken("abd"))
}
