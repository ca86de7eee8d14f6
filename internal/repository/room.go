package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	roomKeyPrefix = "room:"
	scanBatch     = 100
)

type RoomRepository interface {
	Save(ctx context.Context, snapshot *entity.RoomSnapshot, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (*entity.RoomSnapshot, error)
	List(ctx context.Context) ([]*entity.RoomSnapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbRoom struct {
	client *redis.Client
}

func NewRoomRepository(client *redis.Client) RoomRepository {
	return &dbRoom{
		client: client,
	}
}

func (that *dbRoom) Save(ctx context.Context, snapshot *entity.RoomSnapshot, ttl time.Duration) error {
	roomJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	if err = that.client.Set(ctx, roomKeyPrefix+snapshot.ID, roomJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (that *dbRoom) GetByID(ctx context.Context, id string) (*entity.RoomSnapshot, error) {
	response, err := that.client.Get(ctx, roomKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	var snapshot entity.RoomSnapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &snapshot, nil
}

// List returns every stored room ordered by id.
func (that *dbRoom) List(ctx context.Context) ([]*entity.RoomSnapshot, error) {
	var keys []string

	iter := that.client.Scan(ctx, 0, roomKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan rooms: %w", err)
	}

	snapshots := make([]*entity.RoomSnapshot, 0, len(keys))
	if len(keys) == 0 {
		return snapshots, nil
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	for _, value := range values {
		// the key expired between SCAN and MGET
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var snapshot entity.RoomSnapshot
		if err = json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal room: %w", err)
		}

		snapshots = append(snapshots, &snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})

	return snapshots, nil
}

func (that *dbRoom) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, roomKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete room by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrRoomNotFound
	}

	return nil
}
