package memory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncroom/server/internal/domain"
	roomRepo "github.com/syncroom/server/internal/repository/room"
)

func TestRoomLifecycle(t *testing.T) {
	repo := NewRepo(slog.Default())
	ctx := context.Background()

	_, err := repo.GetRoom(ctx, "abcd")
	assert.ErrorIs(t, err, roomRepo.ErrRoomNotFound)

	exists, err := repo.RoomExists(ctx, "abcd")
	require.NoError(t, err)
	assert.False(t, exists)

	state := domain.NewRoom("abcd", true)
	state.State.OwnerName = "alice"
	require.NoError(t, repo.SetRoom(ctx, "abcd", state))

	exists, err = repo.RoomExists(ctx, "abcd")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetRoom(ctx, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.State.OwnerName)

	count, err := repo.CountRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := repo.DeleteRoom(ctx, "abcd")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteRoom(ctx, "abcd")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSetRoomReplacesAndCopies(t *testing.T) {
	repo := NewRepo(slog.Default())
	ctx := context.Background()

	state := domain.NewRoom("abcd", false)
	state.State.Users = []domain.User{{Id: "u1", Name: "alice", IsOwner: true}}
	require.NoError(t, repo.SetRoom(ctx, "abcd", state))

	// mutating the caller's copy must not leak into the store
	state.State.Users[0].Name = "mallory"

	got, err := repo.GetRoom(ctx, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.State.Users[0].Name)

	// last writer wins on full replace
	state.State.OwnerName = "bob"
	require.NoError(t, repo.SetRoom(ctx, "abcd", state))
	got, err = repo.GetRoom(ctx, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.State.OwnerName)
}

func TestListPublicRooms(t *testing.T) {
	repo := NewRepo(slog.Default())
	ctx := context.Background()

	require.NoError(t, repo.SetRoom(ctx, "pub1", domain.NewRoom("pub1", true)))
	require.NoError(t, repo.SetRoom(ctx, "priv", domain.NewRoom("priv", false)))
	require.NoError(t, repo.SetRoom(ctx, "pub2", domain.NewRoom("pub2", true)))

	ids, err := repo.ListRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"priv", "pub1", "pub2"}, ids)

	public, err := repo.ListPublicRooms(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "pub1", public[0].State.Id)
	assert.Equal(t, "pub2", public[1].State.Id)
}

func TestUserCounterFloor(t *testing.T) {
	repo := NewRepo(slog.Default())
	ctx := context.Background()

	n, err := repo.DecUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for i := 0; i < 3; i++ {
		_, err = repo.IncUsers(ctx)
		require.NoError(t, err)
	}

	n, err = repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for i := 0; i < 5; i++ {
		n, err = repo.DecUsers(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, n)
}

func TestWipe(t *testing.T) {
	repo := NewRepo(slog.Default())
	ctx := context.Background()

	require.NoError(t, repo.SetRoom(ctx, "abcd", domain.NewRoom("abcd", true)))
	_, err := repo.IncUsers(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Wipe(ctx))

	count, err := repo.CountRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, users)
}
