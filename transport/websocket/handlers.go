package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const invalidJoinMessage = "invalid join request"

var errMissingCoordinates = errors.New("row and col are required")

func (that *Server) handleJoinRoom(ctx context.Context, conn *client, msg *Message) error {
	log := that.logger.With("method", "handleJoinRoom", "connID", conn.id)

	var request joinRoomRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendJoinError(conn, invalidJoinMessage)
	}

	if request.RoomID == "" || request.PlayerName == "" ||
		utf8.RuneCountInString(request.PlayerName) > that.conf.MaxNameLength {
		return that.sendJoinError(conn, invalidJoinMessage)
	}

	err := that.uRoom.Join(ctx, conn.id, request.RoomID, request.Password, request.PlayerName)
	if err == nil {
		return nil
	}

	if reported := apperror.Reported(err); reported != nil {
		log.Info("join rejected", "roomID", request.RoomID, "reason", reported)
		return that.sendJoinError(conn, reported.Error())
	}

	return fmt.Errorf("failed to join room: %w", err)
}

func (that *Server) handlePlayerReady(ctx context.Context, conn *client, _ *Message) error {
	that.uRoom.SetReady(ctx, conn.id)
	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, conn *client, msg *Message) error {
	var request makeMoveRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if request.Row == nil || request.Col == nil {
		return errMissingCoordinates
	}

	that.uRoom.MakeMove(ctx, conn.id, *request.Row, *request.Col)

	return nil
}

func (that *Server) handleResetGame(ctx context.Context, conn *client, _ *Message) error {
	that.uRoom.Reset(ctx, conn.id)
	return nil
}

func (that *Server) sendJoinError(conn *client, message string) error {
	data, err := encode(eventJoinError, joinErrorPayload{Message: message})
	if err != nil {
		return fmt.Errorf("failed to send join error: %w", err)
	}

	that.hub.Send(conn.id, data)

	return nil
}
