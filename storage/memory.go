package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/erwinbonsma/PartyQuiz/shared"
)

// Memory is an in-process Storage implementation used by tests and local
// development. A single mutex makes every operation atomic, which gives it
// the same conditional-write semantics as the Redis store.
type Memory struct {
	mu       sync.Mutex
	quizzes  map[string]*memQuiz
	connQuiz map[string]string

	rootUser      string
	defaultQuizID string
}

type memQuiz struct {
	info      shared.QuizInfo
	clients   shared.ClientMap
	players   shared.PlayerMap
	pool      map[string]shared.Question
	questions map[int]shared.Question
	answers   map[int]map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		quizzes:  make(map[string]*memQuiz),
		connQuiz: make(map[string]string),
	}
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) CreateQuiz(ctx context.Context, quizID, hostID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.quizzes[quizID]; exists {
		return ErrAlreadyExists
	}
	m.quizzes[quizID] = &memQuiz{
		info: shared.QuizInfo{
			QuizID: quizID,
			HostID: hostID,
			Name:   name,
		},
		clients:   make(shared.ClientMap),
		players:   make(shared.PlayerMap),
		pool:      make(map[string]shared.Question),
		questions: make(map[int]shared.Question),
		answers:   make(map[int]map[string]int),
	}
	return nil
}

func (m *Memory) QuizAccess(quizID string) QuizAccess {
	return &memoryQuizAccess{store: m, quizID: quizID}
}

func (m *Memory) SetQuizForConnection(ctx context.Context, connection, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connQuiz[connection] = quizID
	return nil
}

func (m *Memory) QuizForConnection(ctx context.Context, connection string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connQuiz[connection], nil
}

func (m *Memory) ClearQuizForConnection(ctx context.Context, connection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connQuiz, connection)
	return nil
}

func (m *Memory) RootUser(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rootUser, nil
}

func (m *Memory) SetRootUser(ctx context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootUser = clientID
	return nil
}

func (m *Memory) DefaultQuizID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultQuizID, nil
}

func (m *Memory) SetDefaultQuizID(ctx context.Context, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultQuizID = quizID
	return nil
}

// memoryQuizAccess keeps a snapshot of the quiz loaded by Fetch. Mutating
// methods refresh the snapshot from the authoritative maps.
type memoryQuizAccess struct {
	store  *Memory
	quizID string

	info    shared.QuizInfo
	clients shared.ClientMap
	players shared.PlayerMap
}

func (a *memoryQuizAccess) QuizID() string { return a.quizID }

func (a *memoryQuizAccess) Fetch(ctx context.Context) (bool, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q, exists := a.store.quizzes[a.quizID]
	if !exists {
		return false, nil
	}
	a.snapshot(q)
	return true, nil
}

// snapshot copies quiz state into the access wrapper. Caller must hold the
// store mutex.
func (a *memoryQuizAccess) snapshot(q *memQuiz) {
	a.info = q.info
	a.clients = maps.Clone(q.clients)
	a.players = maps.Clone(q.players)
}

func (a *memoryQuizAccess) Info() shared.QuizInfo     { return a.info }
func (a *memoryQuizAccess) Clients() shared.ClientMap { return a.clients }
func (a *memoryQuizAccess) Players() shared.PlayerMap { return a.players }

// quiz returns the live quiz entry. Caller must hold the store mutex.
func (a *memoryQuizAccess) quiz() *memQuiz {
	return a.store.quizzes[a.quizID]
}

func (a *memoryQuizAccess) AddClient(ctx context.Context, connection, clientID string) (shared.ClientMap, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q := a.quiz()
	q.clients[connection] = clientID
	a.snapshot(q)
	return a.clients, nil
}

func (a *memoryQuizAccess) RemoveClient(ctx context.Context, connection string) (shared.ClientMap, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q := a.quiz()
	delete(q.clients, connection)
	a.snapshot(q)
	return a.clients, nil
}

func (a *memoryQuizAccess) AddPlayer(ctx context.Context, clientID string, player shared.Player) (shared.PlayerMap, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q := a.quiz()
	if _, exists := q.players[clientID]; exists {
		return nil, ErrAlreadyExists
	}
	q.players[clientID] = player
	a.snapshot(q)
	return a.players, nil
}

func (a *memoryQuizAccess) SetPoolQuestion(ctx context.Context, question shared.Question) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	a.quiz().pool[question.AuthorID] = question
	return nil
}

func (a *memoryQuizAccess) PoolQuestion(ctx context.Context, clientID string) (*shared.Question, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	if q, exists := a.quiz().pool[clientID]; exists {
		return &q, nil
	}
	return nil, nil
}

func (a *memoryQuizAccess) PoolQuestions(ctx context.Context) (map[string]shared.Question, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	return maps.Clone(a.quiz().pool), nil
}

func (a *memoryQuizAccess) OpenQuestion(ctx context.Context, question shared.Question) (int, error) {
	oldID := a.info.QuestionID
	newID := oldID + 1

	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	// Phase one: store the question payload. Overwriting is tolerated; it
	// recovers from a previous open that crashed before advancing the
	// counter.
	q := a.quiz()
	q.questions[newID] = question

	// Phase two: advance the counter, conditional on it being unchanged.
	if q.info.QuestionID != oldID {
		return 0, ErrConflict
	}
	q.info.QuestionID = newID
	q.info.IsQuestionOpen = true
	q.info.NumChoices = len(question.Choices)
	a.snapshot(q)

	return newID, nil
}

func (a *memoryQuizAccess) CloseQuestion(ctx context.Context) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q := a.quiz()
	q.info.IsQuestionOpen = false
	a.snapshot(q)
	return nil
}

func (a *memoryQuizAccess) StoreAnswer(ctx context.Context, questionID int, clientID string, answer int) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	q := a.quiz()
	byClient := q.answers[questionID]
	if byClient == nil {
		byClient = make(map[string]int)
		q.answers[questionID] = byClient
	}
	if _, exists := byClient[clientID]; exists {
		return ErrAlreadyExists
	}
	byClient[clientID] = answer
	return nil
}

func (a *memoryQuizAccess) Question(ctx context.Context, questionID int) (*shared.Question, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	if q, exists := a.quiz().questions[questionID]; exists {
		return &q, nil
	}
	return nil, nil
}

func (a *memoryQuizAccess) Questions(ctx context.Context) (map[int]shared.Question, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	return maps.Clone(a.quiz().questions), nil
}

func (a *memoryQuizAccess) Answers(ctx context.Context) (map[int]map[string]int, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	answers := make(map[int]map[string]int)
	for questionID, byClient := range a.quiz().answers {
		answers[questionID] = maps.Clone(byClient)
	}
	return answers, nil
}

func (a *memoryQuizAccess) Solutions(ctx context.Context) (map[int]int, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	solutions := make(map[int]int)
	for questionID, q := range a.quiz().questions {
		solutions[questionID] = q.Answer
	}
	return solutions, nil
}
