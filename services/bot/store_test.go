package bot

import (
	"context"
	"testing"
	"time"

	"glowdesk/models"
	"glowdesk/utils"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := &models.ConversationState{
		Phone:        "+911234567890",
		TenantID:     "tenant-1",
		Step:         models.StepTime,
		ServiceID:    "svc-1",
		ServiceName:  "Haircut",
		SelectedDate: "2026-03-10",
		StaffOptions: []models.StaffOption{{ID: "staff-1", Name: "Asha", Role: "Stylist"}},
	}
	require.NoError(t, store.Set(ctx, state))

	loaded, err := store.Get(ctx, "+911234567890")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, models.StepTime, loaded.Step)
	require.Equal(t, "Haircut", loaded.ServiceName)
	require.Equal(t, state.StaffOptions, loaded.StaffOptions)
	require.False(t, loaded.UpdatedAt.IsZero())
}

func TestRedisStoreGetMissingReturnsNil(t *testing.T) {
	store, _ := newTestStore(t)

	state, err := store.Get(context.Background(), "+910000000000")
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.ConversationState{Phone: "+911234567890", Step: models.StepService}))
	require.NoError(t, store.Delete(ctx, "+911234567890"))

	state, err := store.Get(ctx, "+911234567890")
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestRedisStoreExpiresIdleConversations(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.ConversationState{Phone: "+911234567890", Step: models.StepService}))
	mr.FastForward(utils.ConversationTTL + time.Minute)

	state, err := store.Get(ctx, "+911234567890")
	require.NoError(t, err)
	require.Nil(t, state, "abandoned conversations expire")
}
