package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

func newSnapshot(t *testing.T, id string, names ...string) *entity.RoomSnapshot {
	t.Helper()

	room := entity.NewRoom(id, "secret")
	for _, name := range names {
		_, err := room.Join(name, "secret", name)
		require.NoError(t, err)
	}

	return room.Snapshot()
}

func TestRoomRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage)

	// Given: a room snapshot
	snapshot := newSnapshot(t, "R1", "alice")

	// When: Save is called with a TTL
	err := roomRepo.Save(ctx, snapshot, time.Minute)

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "room:R1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// And: the passphrase is never stored
	raw, err := st.Storage.Get(ctx, "room:R1").Result()
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret")
}

func TestRoomRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// Given: a stored room with a stone on the board
		room := entity.NewRoom("R1", "x")
		_, _ = room.Join("alice", "x", "Alice")
		_, _ = room.Join("bob", "x", "Bob")
		_, _ = room.SetReady("alice")
		_, _ = room.SetReady("bob")
		_, err := room.MakeMove("alice", 7, 7)
		require.NoError(t, err)

		snapshot := room.Snapshot()
		require.NoError(t, roomRepo.Save(ctx, snapshot, 0))

		// When: GetByID is called with the room id
		retrieved, err := roomRepo.GetByID(ctx, "R1")

		// Then: the retrieved room matches the saved one
		require.NoError(t, err)
		assert.Equal(t, snapshot.ID, retrieved.ID)
		assert.Equal(t, snapshot.Participants, retrieved.Participants)
		assert.Equal(t, snapshot.State, retrieved.State)
		assert.True(t, snapshot.UpdatedAt.Equal(retrieved.UpdatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// When: GetByID is called with a non-existent id
		retrieved, err := roomRepo.GetByID(ctx, "9999999")

		// Then: an ErrRoomNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestRoomRepository_List(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage)

	// Given: two stored rooms and an unrelated key
	require.NoError(t, roomRepo.Save(ctx, newSnapshot(t, "beta", "carol"), 0))
	require.NoError(t, roomRepo.Save(ctx, newSnapshot(t, "alpha", "alice", "bob"), 0))
	require.NoError(t, st.Storage.Set(ctx, "other:key", "value", 0).Err())

	// When: List is called
	rooms, err := roomRepo.List(ctx)

	// Then: only rooms are returned, ordered by id
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "alpha", rooms[0].ID)
	assert.True(t, rooms[0].IsFull())
	assert.Equal(t, "beta", rooms[1].ID)
	assert.False(t, rooms[1].IsFull())
}

func TestRoomRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// Given: a stored room
		require.NoError(t, roomRepo.Save(ctx, newSnapshot(t, "R1", "alice"), 0))

		// When: DeleteByID is called with its id
		err := roomRepo.DeleteByID(ctx, "R1")

		// Then: no error and the room is gone
		require.NoError(t, err)

		_, err = roomRepo.GetByID(ctx, "R1")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// When: DeleteByID is called with a non-existent id
		err := roomRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrRoomNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}
