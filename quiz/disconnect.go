package quiz

import (
	"context"
	"log/slog"
	"time"

	"github.com/erwinbonsma/PartyQuiz/events"
	"github.com/erwinbonsma/PartyQuiz/storage"
)

// DisconnectionHandler cleans up after a connection drops without an
// explicit disconnect request. Cleanup is best-effort: the connection is
// already gone, so failures are logged but never reported anywhere.
type DisconnectionHandler struct {
	db        storage.Storage
	comms     Comms
	events    events.Publisher
	logger    *slog.Logger
	retryUnit time.Duration
}

func NewDisconnectionHandler(db storage.Storage, comms Comms, publisher events.Publisher,
	logger *slog.Logger) *DisconnectionHandler {
	return &DisconnectionHandler{
		db:        db,
		comms:     comms,
		events:    publisher,
		logger:    logger,
		retryUnit: time.Second,
	}
}

// SetRetryUnit overrides the base delay of the client-removal retry loop.
func (d *DisconnectionHandler) SetRetryUnit(unit time.Duration) {
	d.retryUnit = unit
}

func (d *DisconnectionHandler) HandleDisconnect(ctx context.Context, connection string) {
	d.logger.Info("handling disconnect", "connection", connection)

	quizID, err := d.db.QuizForConnection(ctx, connection)
	if err != nil {
		d.logger.Warn("failed to look up quiz for connection",
			"connection", connection, "error", err)
		return
	}
	if quizID == "" {
		// Connection never joined a quiz. Nothing to clean up.
		return
	}

	h := NewMessageHandler(d.db, d.comms, d.events, d.logger, connection)
	h.SetRetryUnit(d.retryUnit)
	if err := h.fetchQuiz(ctx, quizID); err != nil {
		d.logger.Warn("failed to fetch quiz on disconnect",
			"connection", connection, "quiz_id", quizID, "error", err)
		return
	}
	if err := h.disconnect(ctx); err != nil {
		d.logger.Warn("failed to clean up connection",
			"connection", connection, "quiz_id", quizID, "error", err)
	}
}
