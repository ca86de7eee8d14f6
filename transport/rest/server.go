package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

// RoomReader is the room directory: the in-process registry or its Redis mirror.
type RoomReader interface {
	GetByID(ctx context.Context, id string) (*entity.RoomSnapshot, error)
	List(ctx context.Context) ([]*entity.RoomSnapshot, error)
}

type Server struct {
	logger *slog.Logger
	rooms  RoomReader
}

func New(logger *slog.Logger, rooms RoomReader) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
	}
}

func (that *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ping", that.pingHandler).Methods(http.MethodGet)
	router.HandleFunc("/rooms", that.listRoomsHandler).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}", that.getRoomHandler).Methods(http.MethodGet)

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
