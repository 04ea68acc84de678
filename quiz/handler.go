// Package quiz implements the session coordinator: it validates inbound
// requests, enforces role checks, mutates quiz state through the storage
// contract and notifies the other connections of a quiz.
package quiz

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/erwinbonsma/PartyQuiz/events"
	"github.com/erwinbonsma/PartyQuiz/ids"
	"github.com/erwinbonsma/PartyQuiz/shared"
	"github.com/erwinbonsma/PartyQuiz/storage"
)

// Comms delivers messages to connections. Sends are best-effort; a send to
// a dead connection may fail silently.
type Comms interface {
	Send(ctx context.Context, connection string, payload []byte) error
}

// MessageHandler handles the requests of one connection. Handlers share no
// mutable state: a fresh handler is created per request or per connection,
// and all coordination happens through the store's conditional writes.
type MessageHandler struct {
	db         storage.Storage
	comms      Comms
	events     events.Publisher
	logger     *slog.Logger
	connection string

	// retryUnit scales the jittered delays when retrying client removal.
	retryUnit time.Duration

	quiz storage.QuizAccess
}

func NewMessageHandler(db storage.Storage, comms Comms, publisher events.Publisher,
	logger *slog.Logger, connection string) *MessageHandler {
	return &MessageHandler{
		db:         db,
		comms:      comms,
		events:     publisher,
		logger:     logger,
		connection: connection,
		retryUnit:  time.Second,
	}
}

// SetRetryUnit overrides the base delay of the client-removal retry loop.
func (h *MessageHandler) SetRetryUnit(unit time.Duration) {
	h.retryUnit = unit
}

// HandleMessage dispatches one request. Expected rejections (an *Error)
// are reported to the requesting connection and never escalate; anything
// else is logged and propagates to the caller.
func (h *MessageHandler) HandleMessage(ctx context.Context, req Request) error {
	h.logger.Info("handling message", "action", req.Action, "connection", h.connection)

	err := h.dispatch(ctx, req)
	if err == nil {
		return nil
	}

	var reject *Error
	if errors.As(err, &reject) {
		h.logger.Warn("request rejected",
			"action", req.Action, "connection", h.connection,
			"error_code", int(reject.Code), "details", reject.Message)
		return h.send(ctx, errorMessage(reject.Code, reject.Message))
	}

	h.logger.Error("request failed",
		"action", req.Action, "connection", h.connection, "error", err)
	return err
}

func (h *MessageHandler) dispatch(ctx context.Context, req Request) error {
	// Actions that do not target an existing quiz connection.
	switch req.Action {
	case ActionSetRootUser:
		value, err := requireString("value", req.Value)
		if err != nil {
			return err
		}
		return h.setRootUser(ctx, value, req.OldValue)
	case ActionSetDefaultQuiz:
		quizID, err := requireString("quiz_id", req.QuizID)
		if err != nil {
			return err
		}
		clientID, err := requireString("client_id", req.ClientID)
		if err != nil {
			return err
		}
		return h.setDefaultQuiz(ctx, quizID, clientID)
	case ActionCreateQuiz:
		name, err := requireString("quiz_name", req.QuizName)
		if err != nil {
			return err
		}
		return h.createQuiz(ctx, name, req.HostID, req.MakeDefault)
	case ActionRegister:
		name, err := requireString("player_name", req.PlayerName)
		if err != nil {
			return err
		}
		return h.register(ctx, name, req.Avatar, req.QuizID)
	}

	// Everything below operates on a quiz. Clients normally pass quiz_id;
	// when omitted, fall back to the connection's linked quiz.
	quizID := req.QuizID
	if quizID == "" {
		var err error
		if quizID, err = h.db.QuizForConnection(ctx, h.connection); err != nil {
			h.logger.Error("failed to look up quiz for connection",
				"connection", h.connection, "error", err)
			return newError(ErrorInternalServer, "Failed to look up quiz")
		}
		if quizID == "" {
			return newError(ErrorNotConnected, "Not connected to quiz yet")
		}
	}
	if err := h.fetchQuiz(ctx, quizID); err != nil {
		return err
	}

	switch req.Action {
	case ActionConnect:
		clientID, err := requireString("client_id", req.ClientID)
		if err != nil {
			return err
		}
		return h.connect(ctx, clientID)
	case ActionDisconnect:
		return h.disconnect(ctx)
	case ActionGetStatus:
		return h.getStatus(ctx, req.ClientID)
	case ActionGetClients:
		return h.getClients(ctx)
	case ActionNotifyHosts:
		if req.Message == nil {
			return newError(ErrorMissingField, "Field 'message' is missing")
		}
		return h.notifyHosts(ctx, req.Message)
	case ActionSetPoolQuestion:
		return h.setPoolQuestion(ctx, req)
	case ActionGetPoolQuestions:
		return h.getPoolQuestions(ctx)
	case ActionOpenQuestion:
		return h.openQuestion(ctx, req)
	case ActionGetQuestion:
		return h.getQuestion(ctx)
	case ActionGetQuestions:
		return h.getQuestions(ctx)
	case ActionCloseQuestion:
		return h.closeQuestion(ctx)
	case ActionAnswer:
		return h.answer(ctx, req)
	case ActionGetAnswers:
		return h.getAnswers(ctx)
	default:
		return newError(ErrorUnknownCommand, "Unrecognized command %q", string(req.Action))
	}
}

func (h *MessageHandler) send(ctx context.Context, payload []byte) error {
	return h.comms.Send(ctx, h.connection, payload)
}

// fetchQuiz loads the quiz snapshot, rejecting with QuizNotFound when the
// quiz does not exist.
func (h *MessageHandler) fetchQuiz(ctx context.Context, quizID string) error {
	access := h.db.QuizAccess(quizID)
	exists, err := access.Fetch(ctx)
	if err != nil {
		h.logger.Error("failed to fetch quiz", "quiz_id", quizID, "error", err)
		return newError(ErrorInternalServer, "Failed to fetch Quiz %s", quizID)
	}
	if !exists {
		return newError(ErrorQuizNotFound, "Quiz %s not found", quizID)
	}
	h.quiz = access
	return nil
}

func (h *MessageHandler) roleOf(clientID string) shared.ClientRole {
	if clientID == h.quiz.Info().HostID {
		return shared.RoleHost
	}
	if _, ok := h.quiz.Players()[clientID]; ok {
		return shared.RolePlayer
	}
	return shared.RoleObserver
}

// checkRole resolves the caller's client ID from its connection and
// verifies it holds the required role within the quiz.
func (h *MessageHandler) checkRole(required shared.ClientRole) (string, error) {
	clientID, ok := h.quiz.Clients()[h.connection]
	if !ok {
		return "", newError(ErrorNotAllowed, "Must join quiz first")
	}
	if role := h.roleOf(clientID); role != required {
		return "", newError(ErrorNotAllowed,
			"%s does not have required role (%s != %s)", clientID, role, required)
	}
	return clientID, nil
}

// checkIsRoot allows the action when no root user is configured yet, or
// when the caller is the configured root user.
func (h *MessageHandler) checkIsRoot(ctx context.Context, clientID string) error {
	rootUser, err := h.db.RootUser(ctx)
	if err != nil {
		h.logger.Error("failed to get root user", "error", err)
		return newError(ErrorInternalServer, "Failed to get root user")
	}
	if rootUser != "" && clientID != rootUser {
		return newError(ErrorNotAllowed, "Root access required")
	}
	return nil
}

func (h *MessageHandler) publish(ctx context.Context, event events.Event) {
	if err := h.events.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish event",
			"event", event.Type, "quiz_id", event.QuizID, "error", err)
	}
}

func (h *MessageHandler) setRootUser(ctx context.Context, value, oldValue string) error {
	if err := h.checkIsRoot(ctx, oldValue); err != nil {
		return err
	}
	if err := h.db.SetRootUser(ctx, value); err != nil {
		h.logger.Error("failed to update root user", "error", err)
		return newError(ErrorInternalServer, "Failed to update root user")
	}
	return h.send(ctx, okMessage(nil))
}

func (h *MessageHandler) setDefaultQuiz(ctx context.Context, quizID, clientID string) error {
	if err := h.checkIsRoot(ctx, clientID); err != nil {
		return err
	}
	if err := h.db.SetDefaultQuizID(ctx, quizID); err != nil {
		h.logger.Error("failed to update default quiz", "error", err)
		return newError(ErrorInternalServer, "Failed to update default quiz")
	}
	return h.send(ctx, okMessage(nil))
}

func (h *MessageHandler) createQuiz(ctx context.Context, name, hostID string, makeDefault bool) error {
	if hostID == "" {
		hostID = ids.NewCode()
	}

	var quizID string
	created := false
	// Generated IDs are not guaranteed unique; retry on a clash.
	for attempt := 0; attempt < shared.MaxAttempts; attempt++ {
		quizID = ids.NewCode()
		err := h.db.CreateQuiz(ctx, quizID, hostID, name)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, storage.ErrAlreadyExists) {
			h.logger.Warn("quiz ID clash", "quiz_id", quizID)
			continue
		}
		h.logger.Error("failed to create quiz", "quiz_id", quizID, "error", err)
		return newError(ErrorInternalServer, "Failed to create quiz")
	}
	if !created {
		return newError(ErrorInternalServer, "Failed to create quiz")
	}
	h.logger.Info("created quiz", "quiz_id", quizID, "host_id", hostID)

	if makeDefault {
		if err := h.checkIsRoot(ctx, hostID); err != nil {
			return err
		}
		if err := h.db.SetDefaultQuizID(ctx, quizID); err != nil {
			h.logger.Error("failed to make quiz default", "quiz_id", quizID, "error", err)
			return newError(ErrorInternalServer, "Failed to make quiz default")
		}
	}

	h.publish(ctx, events.Event{Type: events.QuizCreated, QuizID: quizID})

	return h.send(ctx, okMessage(map[string]any{
		"quiz_id": quizID,
		"host_id": hostID,
	}))
}

// connect joins this connection to the quiz, as host, player or observer.
// A returning client passes its previously issued client ID to resume its
// identity.
func (h *MessageHandler) connect(ctx context.Context, clientID string) error {
	if len(h.quiz.Clients()) >= shared.MaxClientsPerQuiz {
		return newError(ErrorPlayerLimitReached,
			"Connection limit reached for Quiz %s", h.quiz.QuizID())
	}

	if err := h.db.SetQuizForConnection(ctx, h.connection, h.quiz.QuizID()); err != nil {
		h.logger.Error("failed to link connection to quiz",
			"connection", h.connection, "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer,
			"Failed to link connection to Quiz %s", h.quiz.QuizID())
	}

	if _, err := h.quiz.AddClient(ctx, h.connection, clientID); err != nil {
		h.logger.Error("failed to add client",
			"client_id", clientID, "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer,
			"Failed to add client %s to Quiz %s", clientID, h.quiz.QuizID())
	}

	if err := h.send(ctx, okMessage(nil)); err != nil {
		return err
	}

	h.notifyHost(ctx, "client-connected", map[string]any{
		"client_id":  clientID,
		"connection": h.connection,
	})
	return nil
}

// disconnect removes this connection from the quiz. Removal can lose a
// race when multiple connections disconnect at once; it is retried with
// jittered backoff because the disconnected party cannot retry on its own
// behalf. Exhausting the retries is logged but never escalates: there is
// nobody left to reply to.
func (h *MessageHandler) disconnect(ctx context.Context) error {
	clientID, ok := h.quiz.Clients()[h.connection]
	if !ok {
		return newError(ErrorInternalServer,
			"Connection %s not part of Quiz %s", h.connection, h.quiz.QuizID())
	}

	removed := false
	for attempt := 1; attempt <= shared.MaxAttempts; attempt++ {
		_, err := h.quiz.RemoveClient(ctx, h.connection)
		if err == nil {
			removed = true
			break
		}
		if !errors.Is(err, storage.ErrConflict) {
			h.logger.Warn("client removal failed",
				"connection", h.connection, "quiz_id", h.quiz.QuizID(), "error", err)
		}

		delay := time.Duration(rand.Float64() * float64(attempt) * float64(h.retryUnit))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if !removed {
		h.logger.Error("failed to remove client",
			"client_id", clientID, "quiz_id", h.quiz.QuizID())
		return nil
	}

	if err := h.db.ClearQuizForConnection(ctx, h.connection); err != nil {
		h.logger.Warn("failed to clear connection mapping",
			"connection", h.connection, "error", err)
	}

	h.notifyHost(ctx, "client-disconnected", map[string]any{
		"client_id":  clientID,
		"connection": h.connection,
	})
	return nil
}

// register creates a player identity for this quiz. The returned client ID
// lets the player rejoin after a disconnect.
func (h *MessageHandler) register(ctx context.Context, playerName, avatar, quizID string) error {
	if err := checkStringValue("name", playerName,
		shared.MinNameLength, shared.MaxNameLength); err != nil {
		return err
	}

	if quizID == "" {
		var err error
		if quizID, err = h.db.DefaultQuizID(ctx); err != nil {
			h.logger.Error("failed to get default quiz", "error", err)
			return newError(ErrorInternalServer, "Failed to get default quiz")
		}
		if quizID == "" {
			return newError(ErrorEmptyResult, "No default quiz")
		}
	}
	if err := h.fetchQuiz(ctx, quizID); err != nil {
		return err
	}

	if len(h.quiz.Players()) >= shared.MaxPlayersPerQuiz {
		return newError(ErrorPlayerLimitReached, "Player limit reached for Quiz %s", quizID)
	}

	clientID := ids.NewCode()
	player := shared.Player{Name: playerName, Avatar: avatar}
	if _, err := h.quiz.AddPlayer(ctx, clientID, player); err != nil {
		h.logger.Error("failed to add player",
			"client_id", clientID, "player_name", playerName, "error", err)
		return newError(ErrorInternalServer,
			"Failed to add player %s as %s", playerName, clientID)
	}

	err := h.send(ctx, okMessage(map[string]any{
		"quiz_id":   quizID,
		"quiz_name": h.quiz.Info().Name,
		"client_id": clientID,
	}))
	if err != nil {
		return err
	}

	h.notifyHost(ctx, "player-registered", map[string]any{
		"client_id":   clientID,
		"player_name": playerName,
		"avatar":      avatar,
	})
	return nil
}

func (h *MessageHandler) getStatus(ctx context.Context, clientID string) error {
	if clientID == "" {
		clientID = h.quiz.Clients()[h.connection]
	}
	if clientID == "" {
		return newError(ErrorMissingField, "Client ID missing")
	}
	if h.roleOf(clientID) != shared.RoleHost {
		if err := h.checkIsRoot(ctx, clientID); err != nil {
			return err
		}
	}

	info := h.quiz.Info()
	numHostConnections := 0
	numPlayersPresent := 0
	for _, id := range h.quiz.Clients() {
		if id == info.HostID {
			numHostConnections++
		}
		if _, ok := h.quiz.Players()[id]; ok {
			numPlayersPresent++
		}
	}

	pool, err := h.quiz.PoolQuestions(ctx)
	if err != nil {
		h.logger.Error("failed to get pool questions", "quiz_id", info.QuizID, "error", err)
		return newError(ErrorInternalServer, "Failed to get pool questions")
	}

	return h.send(ctx, message("status", map[string]any{
		"quiz_id":              info.QuizID,
		"host_id":              info.HostID,
		"num_host_connections": numHostConnections,
		"num_players":          len(h.quiz.Players()),
		"num_players_present":  numPlayersPresent,
		"num_pool_questions":   len(pool),
		"question_id":          info.QuestionID,
		"is_question_open":     info.IsQuestionOpen,
	}))
}

func (h *MessageHandler) getClients(ctx context.Context) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	connsByClient := make(map[string][]string)
	for connection, clientID := range h.quiz.Clients() {
		connsByClient[clientID] = append(connsByClient[clientID], connection)
	}
	connsFor := func(clientID string) []string {
		if conns := connsByClient[clientID]; conns != nil {
			return conns
		}
		return []string{}
	}

	players := make(map[string]any)
	for clientID, player := range h.quiz.Players() {
		players[clientID] = map[string]any{
			"name":        player.Name,
			"avatar":      player.Avatar,
			"connections": connsFor(clientID),
		}
	}

	return h.send(ctx, message("clients", map[string]any{
		"players":          players,
		"host_connections": connsFor(h.quiz.Info().HostID),
	}))
}

// setPoolQuestion adds a question to the pool, or replaces the player's
// existing one. Each player owns at most one pool entry; the host decides
// how (and whether) to use it.
func (h *MessageHandler) setPoolQuestion(ctx context.Context, req Request) error {
	clientID, err := h.checkRole(shared.RolePlayer)
	if err != nil {
		return err
	}

	questionText, choices, answer, err := questionFields(req)
	if err != nil {
		return err
	}
	question, err := newQuestion(clientID, questionText, choices, answer)
	if err != nil {
		return err
	}

	existing, err := h.quiz.PoolQuestion(ctx, clientID)
	if err != nil {
		h.logger.Error("failed to get pool question",
			"client_id", clientID, "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to set question")
	}

	if err := h.quiz.SetPoolQuestion(ctx, question); err != nil {
		h.logger.Error("failed to set pool question",
			"client_id", clientID, "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to set question")
	}

	if err := h.send(ctx, okMessage(map[string]any{
		"replaced": existing != nil,
	})); err != nil {
		return err
	}

	h.notifyHost(ctx, "pool-question-updated", map[string]any{
		"question": question,
	})
	return nil
}

func (h *MessageHandler) getPoolQuestions(ctx context.Context) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	pool, err := h.quiz.PoolQuestions(ctx)
	if err != nil {
		h.logger.Error("failed to get pool questions",
			"quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to get pool questions")
	}

	return h.send(ctx, message("pool-questions", map[string]any{
		"questions": pool,
	}))
}

func questionFields(req Request) (string, []string, int, error) {
	questionText, err := requireString("question", req.Question)
	if err != nil {
		return "", nil, 0, err
	}
	choices, err := requireStrings("choices", req.Choices)
	if err != nil {
		return "", nil, 0, err
	}
	answer, err := requireInt("answer", req.Answer)
	if err != nil {
		return "", nil, 0, err
	}
	return questionText, choices, answer, nil
}

// openQuestion publishes a new active question and starts accepting
// answers for it.
func (h *MessageHandler) openQuestion(ctx context.Context, req Request) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	authorID, err := requireString("author_id", req.AuthorID)
	if err != nil {
		return err
	}
	questionText, choices, answer, err := questionFields(req)
	if err != nil {
		return err
	}
	question, err := newQuestion(authorID, questionText, choices, answer)
	if err != nil {
		return err
	}

	questionID, err := h.quiz.OpenQuestion(ctx, question)
	if err != nil {
		h.logger.Error("failed to open question",
			"quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to open question")
	}

	h.publish(ctx, events.Event{
		Type:       events.QuestionOpened,
		QuizID:     h.quiz.QuizID(),
		QuestionID: questionID,
	})

	// Hosts get the question with the answer; players get it stripped.
	h.broadcast(ctx, message("question-opened", map[string]any{
		"question_id": questionID,
		"question":    question,
	}), shared.RolePlayer)
	h.broadcast(ctx, message("question-opened", map[string]any{
		"question_id": questionID,
		"question":    question.Stripped(),
	}), shared.RoleHost)
	return nil
}

// getQuestion lets a (re-)joining player catch up with the question that
// is currently open.
func (h *MessageHandler) getQuestion(ctx context.Context) error {
	if _, err := h.checkRole(shared.RolePlayer); err != nil {
		return err
	}

	info := h.quiz.Info()
	if !info.IsQuestionOpen {
		return h.send(ctx, message("question-closed", map[string]any{
			"question_id": info.QuestionID,
		}))
	}

	question, err := h.quiz.Question(ctx, info.QuestionID)
	if err != nil || question == nil {
		h.logger.Error("failed to get question",
			"quiz_id", info.QuizID, "question_id", info.QuestionID, "error", err)
		return newError(ErrorInternalServer, "Failed to get question %d", info.QuestionID)
	}

	return h.send(ctx, message("question-opened", map[string]any{
		"question_id": info.QuestionID,
		"question":    question.Stripped(),
	}))
}

// answer records the caller's answer to the currently open question.
func (h *MessageHandler) answer(ctx context.Context, req Request) error {
	clientID, err := h.checkRole(shared.RolePlayer)
	if err != nil {
		return err
	}

	questionID, err := requireInt("question_id", req.QuestionID)
	if err != nil {
		return err
	}
	answer, err := requireInt("answer", req.Answer)
	if err != nil {
		return err
	}

	info := h.quiz.Info()
	if questionID != info.QuestionID {
		return newError(ErrorInvalidValue,
			"Answer does not match current question: %d != %d", questionID, info.QuestionID)
	}
	if !info.IsQuestionOpen {
		return newError(ErrorNotAllowed, "Cannot answer question anymore")
	}
	if err := checkIntValue("answer", answer, 1, info.NumChoices); err != nil {
		return err
	}

	if err := h.quiz.StoreAnswer(ctx, questionID, clientID, answer); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return newError(ErrorAlreadyAnswered, "Can only answer question once")
		}
		h.logger.Error("failed to store answer",
			"client_id", clientID, "question_id", questionID, "error", err)
		return newError(ErrorInternalServer, "Failed to store answer")
	}

	// Tell the host another answer came in. The total count is omitted;
	// it is relatively expensive to obtain and the host can keep a local
	// count.
	h.notifyHost(ctx, "answer-received", map[string]any{
		"question_id": questionID,
		"player_id":   clientID,
		"answer":      answer,
	})

	return h.send(ctx, okMessage(nil))
}

// closeQuestion stops accepting answers. The sequence number is untouched
// and historical questions and answers remain queryable.
func (h *MessageHandler) closeQuestion(ctx context.Context) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	if err := h.quiz.CloseQuestion(ctx); err != nil {
		h.logger.Error("failed to close question",
			"quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to close question")
	}

	h.publish(ctx, events.Event{
		Type:       events.QuestionClosed,
		QuizID:     h.quiz.QuizID(),
		QuestionID: h.quiz.Info().QuestionID,
	})

	h.broadcast(ctx, message("question-closed", map[string]any{
		"question_id": h.quiz.Info().QuestionID,
	}))
	return nil
}

func (h *MessageHandler) getQuestions(ctx context.Context) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	questions, err := h.quiz.Questions(ctx)
	if err != nil {
		h.logger.Error("failed to get questions", "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to get questions")
	}

	info := h.quiz.Info()
	return h.send(ctx, message("questions", map[string]any{
		"questions":        questions,
		"question_id":      info.QuestionID,
		"is_question_open": info.IsQuestionOpen,
	}))
}

func (h *MessageHandler) getAnswers(ctx context.Context) error {
	if _, err := h.checkRole(shared.RoleHost); err != nil {
		return err
	}

	answers, err := h.quiz.Answers(ctx)
	if err != nil {
		h.logger.Error("failed to get answers", "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to get answers")
	}
	solutions, err := h.quiz.Solutions(ctx)
	if err != nil {
		h.logger.Error("failed to get solutions", "quiz_id", h.quiz.QuizID(), "error", err)
		return newError(ErrorInternalServer, "Failed to get solutions")
	}

	return h.send(ctx, message("answers", map[string]any{
		"answers":   answers,
		"solutions": solutions,
	}))
}

// notifyHosts forwards an arbitrary message to the quiz's host
// connections.
func (h *MessageHandler) notifyHosts(ctx context.Context, payload []byte) error {
	h.broadcast(ctx, payload, shared.RolePlayer)
	return nil
}
