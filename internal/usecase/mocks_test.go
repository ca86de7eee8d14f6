package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockBroadcaster struct {
	mock.Mock
}

func newMockBroadcaster() *mockBroadcaster {
	m := &mockBroadcaster{}
	m.On("Subscribe", mock.Anything, mock.Anything).Maybe()
	m.On("Unsubscribe", mock.Anything, mock.Anything).Maybe()
	m.On("Broadcast", mock.Anything).Maybe()

	return m
}

func (that *mockBroadcaster) Subscribe(roomID, connID string) {
	that.Called(roomID, connID)
}

func (that *mockBroadcaster) Unsubscribe(roomID, connID string) {
	that.Called(roomID, connID)
}

func (that *mockBroadcaster) Broadcast(event *entity.Event) {
	that.Called(event)
}

// events returns every broadcast event in call order.
func (that *mockBroadcaster) events() []*entity.Event {
	var events []*entity.Event
	for _, call := range that.Calls {
		if call.Method == "Broadcast" {
			events = append(events, call.Arguments.Get(0).(*entity.Event))
		}
	}

	return events
}

func (that *mockBroadcaster) kinds() []entity.EventKind {
	var kinds []entity.EventKind
	for _, event := range that.events() {
		kinds = append(kinds, event.Kind)
	}

	return kinds
}

type mockMirror struct {
	mock.Mock
}

func (that *mockMirror) Store(snapshot *entity.RoomSnapshot) {
	that.Called(snapshot)
}

func (that *mockMirror) Remove(roomID string) {
	that.Called(roomID)
}

type mockRoomRepo struct {
	mock.Mock
}

func (that *mockRoomRepo) Save(ctx context.Context, snapshot *entity.RoomSnapshot, ttl time.Duration) error {
	args := that.Called(ctx, snapshot, ttl)
	return args.Error(0)
}

func (that *mockRoomRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
