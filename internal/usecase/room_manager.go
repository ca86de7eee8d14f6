package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// broadcaster fans room events out to the connections subscribed to a room.
// Every method is called with the room lock held and must not block.
type broadcaster interface {
	Subscribe(roomID, connID string)
	Unsubscribe(roomID, connID string)
	Broadcast(event *entity.Event)
}

type roomMirror interface {
	Store(snapshot *entity.RoomSnapshot)
	Remove(roomID string)
}

type roomSlot struct {
	mu     sync.Mutex
	room   *entity.Room
	closed bool
}

// RoomManager is the process-wide registry of rooms.
//
// Lock order is slot.mu before that.mu. that.mu only guards the two maps and
// is never held while waiting for a slot.
type RoomManager struct {
	logger      *slog.Logger
	broadcaster broadcaster
	mirror      roomMirror

	mu      sync.Mutex
	rooms   map[string]*roomSlot
	members map[string]string // connID -> roomID
}

func NewRoomManager(logger *slog.Logger, broadcaster broadcaster, mirror roomMirror) *RoomManager {
	return &RoomManager{
		logger:      logger.With("component", "room_manager"),
		broadcaster: broadcaster,
		mirror:      mirror,

		rooms:   make(map[string]*roomSlot),
		members: make(map[string]string),
	}
}

// Join admits connID into roomID, creating the room with passphrase when it does
// not exist. Only ErrPassphraseMismatch, ErrRoomFull and ErrAlreadyInRoom are returned.
func (that *RoomManager) Join(ctx context.Context, connID, roomID, passphrase, name string) error {
	log := that.logger.With("method", "Join", "roomID", roomID, "connID", connID)

	for {
		slot, err := that.getOrCreate(connID, roomID, passphrase)
		if err != nil {
			return err
		}

		slot.mu.Lock()
		if slot.closed {
			// lost the race against the last leave of the previous room
			slot.mu.Unlock()
			continue
		}

		event, err := slot.room.Join(connID, passphrase, name)
		if err != nil {
			that.removeIfEmpty(slot)
			slot.mu.Unlock()

			log.DebugContext(ctx, "join rejected", "error", err)

			return fmt.Errorf("failed to join room %s: %w", roomID, err)
		}

		that.bind(connID, roomID)
		that.broadcaster.Subscribe(roomID, connID)
		that.publish(event, slot.room)
		slot.mu.Unlock()

		log.InfoContext(ctx, "player joined room", "name", name)

		return nil
	}
}

func (that *RoomManager) SetReady(ctx context.Context, connID string) {
	that.apply(ctx, "SetReady", connID, func(room *entity.Room) (*entity.Event, error) {
		return room.SetReady(connID)
	})
}

func (that *RoomManager) MakeMove(ctx context.Context, connID string, row, col int) {
	that.apply(ctx, "MakeMove", connID, func(room *entity.Room) (*entity.Event, error) {
		return room.MakeMove(connID, row, col)
	})
}

func (that *RoomManager) Reset(ctx context.Context, connID string) {
	that.apply(ctx, "Reset", connID, func(room *entity.Room) (*entity.Event, error) {
		return room.Reset(), nil
	})
}

// Leave removes connID from its room and destroys the room once it is empty.
func (that *RoomManager) Leave(ctx context.Context, connID string) {
	log := that.logger.With("method", "Leave", "connID", connID)

	slot, ok := that.lockRoomOf(connID)
	if !ok {
		return
	}
	defer slot.mu.Unlock()

	roomID := slot.room.ID
	log = log.With("roomID", roomID)

	event, err := slot.room.Leave(connID)
	if err != nil {
		log.DebugContext(ctx, "leave ignored", "error", err)
		return
	}

	that.unbind(connID)
	that.broadcaster.Unsubscribe(roomID, connID)

	if that.removeIfEmpty(slot) {
		log.InfoContext(ctx, "room closed")
		return
	}

	that.publish(event, slot.room)

	log.InfoContext(ctx, "player left room")
}

// GetByID returns a snapshot of a live room.
func (that *RoomManager) GetByID(_ context.Context, roomID string) (*entity.RoomSnapshot, error) {
	that.mu.Lock()
	slot, ok := that.rooms[roomID]
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.closed {
		return nil, apperror.ErrRoomNotFound
	}

	return slot.room.Snapshot(), nil
}

// List returns snapshots of all live rooms ordered by id.
func (that *RoomManager) List(ctx context.Context) ([]*entity.RoomSnapshot, error) {
	that.mu.Lock()
	ids := make([]string, 0, len(that.rooms))
	for id := range that.rooms {
		ids = append(ids, id)
	}
	that.mu.Unlock()

	sort.Strings(ids)

	snapshots := make([]*entity.RoomSnapshot, 0, len(ids))
	for _, id := range ids {
		snapshot, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrRoomNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (that *RoomManager) apply(ctx context.Context, method, connID string, action func(*entity.Room) (*entity.Event, error)) {
	log := that.logger.With("method", method, "connID", connID)

	slot, ok := that.lockRoomOf(connID)
	if !ok {
		log.DebugContext(ctx, "action ignored", "error", apperror.ErrRoomNotFound)
		return
	}
	defer slot.mu.Unlock()

	event, err := action(slot.room)
	if err != nil {
		log.DebugContext(ctx, "action ignored", "roomID", slot.room.ID, "error", err)
		return
	}

	that.publish(event, slot.room)
}

func (that *RoomManager) publish(event *entity.Event, room *entity.Room) {
	that.broadcaster.Broadcast(event)
	that.mirror.Store(room.Snapshot())
}

func (that *RoomManager) getOrCreate(connID, roomID, passphrase string) (*roomSlot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.members[connID]; ok {
		return nil, apperror.ErrAlreadyInRoom
	}

	slot, ok := that.rooms[roomID]
	if !ok {
		slot = &roomSlot{room: entity.NewRoom(roomID, passphrase)}
		that.rooms[roomID] = slot
	}

	return slot, nil
}

// lockRoomOf returns the locked slot connID belongs to.
func (that *RoomManager) lockRoomOf(connID string) (*roomSlot, bool) {
	that.mu.Lock()
	roomID, ok := that.members[connID]
	slot := that.rooms[roomID]
	that.mu.Unlock()

	if !ok || slot == nil {
		return nil, false
	}

	slot.mu.Lock()
	if slot.closed {
		slot.mu.Unlock()
		return nil, false
	}

	return slot, true
}

// removeIfEmpty must be called with slot.mu held.
func (that *RoomManager) removeIfEmpty(slot *roomSlot) bool {
	if !slot.room.IsEmpty() {
		return false
	}

	slot.closed = true

	that.mu.Lock()
	if that.rooms[slot.room.ID] == slot {
		delete(that.rooms, slot.room.ID)
	}
	that.mu.Unlock()

	that.mirror.Remove(slot.room.ID)

	return true
}

func (that *RoomManager) bind(connID, roomID string) {
	that.mu.Lock()
	that.members[connID] = roomID
	that.mu.Unlock()
}

func (that *RoomManager) unbind(connID string) {
	that.mu.Lock()
	delete(that.members, connID)
	that.mu.Unlock()
}
