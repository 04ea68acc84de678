package quiz

import (
	"context"
	"slices"
	"sync"

	"github.com/erwinbonsma/PartyQuiz/shared"
)

// broadcast delivers payload to every connection of the quiz whose role is
// not in skipRoles. Sends run concurrently but broadcast waits for all of
// them, so two sequential broadcasts cannot overtake each other at any
// single recipient. Delivery failures are logged and otherwise ignored.
func (h *MessageHandler) broadcast(ctx context.Context, payload []byte, skipRoles ...shared.ClientRole) {
	var wg sync.WaitGroup
	recipients := 0
	for connection, clientID := range h.quiz.Clients() {
		if slices.Contains(skipRoles, h.roleOf(clientID)) {
			continue
		}
		recipients++

		wg.Add(1)
		go func(connection string) {
			defer wg.Done()
			if err := h.comms.Send(ctx, connection, payload); err != nil {
				h.logger.Warn("failed to deliver broadcast",
					"connection", connection, "quiz_id", h.quiz.QuizID(), "error", err)
			}
		}(connection)
	}
	h.logger.Info("broadcasting message",
		"quiz_id", h.quiz.QuizID(), "recipients", recipients)
	wg.Wait()
}

// notifyHost sends a typed message to the quiz's non-player connections.
func (h *MessageHandler) notifyHost(ctx context.Context, messageType string, fields map[string]any) {
	h.broadcast(ctx, message(messageType, fields), shared.RolePlayer)
}
