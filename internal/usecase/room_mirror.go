package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type roomRepo interface {
	Save(ctx context.Context, snapshot *entity.RoomSnapshot, ttl time.Duration) error
	DeleteByID(ctx context.Context, id string) error
}

type mirrorOp struct {
	roomID   string
	snapshot *entity.RoomSnapshot // nil means remove
}

// RoomMirror copies room snapshots into the room directory in the background.
// Operations are applied in the order they were queued; when the queue is full
// they are dropped and the key expires through its TTL.
type RoomMirror struct {
	logger *slog.Logger
	repo   roomRepo
	ttl    time.Duration

	queue chan mirrorOp
}

func NewRoomMirror(logger *slog.Logger, repo roomRepo, ttl time.Duration, queueSize int) *RoomMirror {
	return &RoomMirror{
		logger: logger.With("component", "room_mirror"),
		repo:   repo,
		ttl:    ttl,
		queue:  make(chan mirrorOp, queueSize),
	}
}

func (that *RoomMirror) Store(snapshot *entity.RoomSnapshot) {
	that.enqueue(mirrorOp{roomID: snapshot.ID, snapshot: snapshot})
}

func (that *RoomMirror) Remove(roomID string) {
	that.enqueue(mirrorOp{roomID: roomID})
}

// Run writes queued operations until ctx is done.
func (that *RoomMirror) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			log.Info("room mirror stopped")
			return nil
		case op := <-that.queue:
			that.write(ctx, op)
		}
	}
}

func (that *RoomMirror) write(ctx context.Context, op mirrorOp) {
	log := that.logger.With("method", "write", "roomID", op.roomID)

	if op.snapshot == nil {
		err := that.repo.DeleteByID(ctx, op.roomID)
		if err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
			log.Error("failed to remove room snapshot", "error", err)
		}
		return
	}

	if err := that.repo.Save(ctx, op.snapshot, that.ttl); err != nil {
		log.Error("failed to save room snapshot", "error", err)
	}
}

func (that *RoomMirror) enqueue(op mirrorOp) {
	select {
	case that.queue <- op:
	default:
		that.logger.Warn("room mirror queue is full, dropping update", "roomID", op.roomID)
	}
}

// NopMirror is used when the room directory is disabled.
type NopMirror struct{}

func (NopMirror) Store(*entity.RoomSnapshot) {}

func (NopMirror) Remove(string) {}
