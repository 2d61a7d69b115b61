package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/veles-works/ems-console/internal/session"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Unique(t *testing.T) {
	t.Parallel()

	first := session.NewID()
	second := session.NewID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(time.Minute)
	sess := session.Session{ID: session.NewID(), Token: "tok-1"}

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(time.Millisecond)
	sess := session.Session{ID: "short-lived", Token: "tok"}

	require.NoError(t, store.Save(ctx, sess))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	store := session.NewRedisStore(rdb, time.Hour)

	mock.ExpectSet("emsconsole:session:abc", "tok-9", time.Hour).SetVal("OK")
	require.NoError(t, store.Save(ctx, session.Session{ID: "abc", Token: "tok-9"}))

	mock.ExpectGet("emsconsole:session:abc").SetVal("tok-9")
	loaded, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", loaded.Token)

	mock.ExpectDel("emsconsole:session:abc").SetVal(1)
	require.NoError(t, store.Delete(ctx, "abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetMissing(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	store := session.NewRedisStore(rdb, time.Hour)

	mock.ExpectGet("emsconsole:session:missing").RedisNil()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, session.ErrNotFound)
}
