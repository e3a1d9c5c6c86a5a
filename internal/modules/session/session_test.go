// README: Session store and service tests on miniredis, with redismock for failure paths.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/assistant"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *Service) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewService(NewStore(rdb), time.Hour)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	_, svc := setupMiniredis(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	res := assistant.Respond(assistant.Turn{Message: "Trip to Tokyo for 5 days"})
	in := Session{
		ConversationID: "conv-1",
		TripSnapshot:   res.Data.TripSnapshot,
		LatestBlock:    res.Data.ResponseBlock,
		TurnCount:      1,
	}
	require.NoError(t, svc.Save(ctx, in))

	got, err := svc.Load(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", got.ConversationID)
	assert.Equal(t, 1, got.TurnCount)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.UpdatedAt)
	assert.Equal(t, *res.Data.TripSnapshot, *got.TripSnapshot)
	assert.Equal(t, *res.Data.ResponseBlock, *got.LatestBlock)
}

func TestLoadUnknown(t *testing.T) {
	_, svc := setupMiniredis(t)
	_, err := svc.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpires(t *testing.T) {
	mr, svc := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, Session{ConversationID: "short"}))
	assert.Equal(t, time.Hour, mr.TTL(key("short")))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, svc.Save(ctx, Session{ConversationID: "short", TurnCount: 2}))
	assert.Equal(t, time.Hour, mr.TTL(key("short")), "save slides the TTL")

	mr.FastForward(61 * time.Minute)
	_, err := svc.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	_, svc := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, Session{ConversationID: "gone"}))
	require.NoError(t, svc.Delete(ctx, "gone"))
	_, err := svc.Load(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptValue(t *testing.T) {
	mr, svc := setupMiniredis(t)
	require.NoError(t, mr.Set(key("bad"), "{not json"))

	_, err := svc.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStoreRedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectGet(key("c")).SetErr(boom)
	_, err := store.Get(ctx, "c")
	assert.ErrorIs(t, err, boom)

	sess := Session{ConversationID: "c"}
	raw, err := json.Marshal(sess)
	require.NoError(t, err)
	mock.ExpectSet(key("c"), raw, time.Minute).SetErr(boom)
	assert.ErrorIs(t, store.Put(ctx, sess, time.Minute), boom)

	mock.ExpectDel(key("c")).SetErr(boom)
	assert.ErrorIs(t, store.Delete(ctx, "c"), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
