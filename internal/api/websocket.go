package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/models"
)

// Server -> Client message types
const (
	MsgTypeProgress = "progress"
	MsgTypeComplete = "complete"
	MsgTypeError    = "error"
)

// WSJobMessage carries one job snapshot to the client
type WSJobMessage struct {
	Type      string                `json:"type"`
	Job       *models.ConversionJob `json:"job,omitempty"`
	Message   string                `json:"message,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

// WebSocketHandler streams conversion job progress
type WebSocketHandler struct {
	jobs     JobManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new job stream handler
func NewWebSocketHandler(jobs JobManager, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		jobs: jobs,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		logger: logger,
	}
}

// HandleJobStream upgrades the connection and sends a snapshot every time
// the job advances. The connection is closed after the final snapshot.
func (wsh *WebSocketHandler) HandleJobStream(c echo.Context) error {
	id := c.Param("jobId")
	updates, cancel, err := wsh.jobs.Subscribe(id)
	if errors.Is(err, batch.ErrJobNotFound) {
		return NewNotFoundError("job", id)
	}
	if err != nil {
		return NewInternalError("failed to subscribe", err)
	}
	defer cancel()

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	// Drain client frames so close and ping control messages are handled.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsh.log(c.Request().Context(), slog.LevelDebug, "job stream read failed", id, err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return nil
		case job, ok := <-updates:
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := ws.WriteJSON(jobMessage(job)); err != nil {
				wsh.log(c.Request().Context(), slog.LevelDebug, "job stream write failed", id, err)
				return nil
			}
		}
	}
}

func jobMessage(job models.ConversionJob) WSJobMessage {
	msg := WSJobMessage{
		Type:      MsgTypeProgress,
		Job:       &job,
		Timestamp: time.Now().UnixMilli(),
	}
	switch job.Status {
	case models.JobStatusComplete:
		msg.Type = MsgTypeComplete
	case models.JobStatusError:
		msg.Type = MsgTypeError
		msg.Message = job.Error
	}
	return msg
}

func (wsh *WebSocketHandler) log(ctx context.Context, level slog.Level, msg, jobID string, err error) {
	if wsh.logger == nil {
		return
	}
	wsh.logger.LogAttrs(ctx, level, msg,
		slog.String("job", jobID),
		slog.String("error", err.Error()))
}
