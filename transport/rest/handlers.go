package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "listRoomsHandler")

	rooms, err := that.rooms.List(r.Context())
	if err != nil {
		log.Error("failed to list rooms", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, rooms)
}

func (that *Server) getRoomHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getRoomHandler")

	id := mux.Vars(r)["id"]

	room, err := that.rooms.GetByID(r.Context(), id)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get room", "roomID", id, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, room)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
