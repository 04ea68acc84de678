// Package storage defines the contract for the shared quiz state store.
//
// All shared mutable state lives behind this interface. Implementations
// must express every mutation as a single atomic conditional operation;
// there is no application-level locking, so concurrent handlers rely on
// ErrConflict and ErrAlreadyExists to detect lost races.
package storage

import (
	"context"
	"errors"

	"github.com/erwinbonsma/PartyQuiz/shared"
)

var (
	// ErrConflict reports a lost race on a conditional write. It is
	// transient: the caller decides whether to retry.
	ErrConflict = errors.New("storage: conditional write conflict")

	// ErrAlreadyExists reports a create-only write that found an existing
	// item (quiz ID clash, duplicate player, repeated answer).
	ErrAlreadyExists = errors.New("storage: item already exists")
)

// Storage is the top-level store: quiz creation, the connection-to-quiz
// mapping used by the disconnect handler, and global settings.
type Storage interface {
	Ping(ctx context.Context) error

	// CreateQuiz atomically creates a quiz instance, conditional on the ID
	// not existing. Returns ErrAlreadyExists on an ID clash.
	CreateQuiz(ctx context.Context, quizID, hostID, name string) error

	// QuizAccess returns a per-quiz access wrapper. The wrapper may only
	// be used after Fetch has confirmed the quiz exists.
	QuizAccess(quizID string) QuizAccess

	SetQuizForConnection(ctx context.Context, connection, quizID string) error
	// QuizForConnection returns the quiz a connection belongs to, or ""
	// if the connection is not linked to any quiz.
	QuizForConnection(ctx context.Context, connection string) (string, error)
	ClearQuizForConnection(ctx context.Context, connection string) error

	RootUser(ctx context.Context) (string, error)
	SetRootUser(ctx context.Context, clientID string) error
	DefaultQuizID(ctx context.Context) (string, error)
	SetDefaultQuizID(ctx context.Context, quizID string) error
}

// QuizAccess scopes store operations to one quiz. Fetch loads a snapshot
// of the instance record, client map and player map; the mutating methods
// keep that snapshot current so callers do not need a separate re-read.
type QuizAccess interface {
	QuizID() string

	// Fetch loads the quiz snapshot. Returns false if the quiz does not
	// exist; no other method may be called in that case.
	Fetch(ctx context.Context) (bool, error)

	Info() shared.QuizInfo
	Clients() shared.ClientMap
	Players() shared.PlayerMap

	// AddClient upserts the connection into the quiz's client map and
	// returns the updated map.
	AddClient(ctx context.Context, connection, clientID string) (shared.ClientMap, error)

	// RemoveClient deletes the connection's row and returns the resulting
	// map. ErrConflict signals a lost race with a concurrent writer, not
	// "not found".
	RemoveClient(ctx context.Context, connection string) (shared.ClientMap, error)

	// AddPlayer registers a player and returns the updated player map.
	// Returns ErrAlreadyExists if a player with that ID is already
	// registered; it never silently overwrites.
	AddPlayer(ctx context.Context, clientID string, player shared.Player) (shared.PlayerMap, error)

	// SetPoolQuestion upserts the author's pool entry. Each player owns at
	// most one pool question; resubmission overwrites.
	SetPoolQuestion(ctx context.Context, q shared.Question) error
	PoolQuestion(ctx context.Context, clientID string) (*shared.Question, error)
	PoolQuestions(ctx context.Context) (map[string]shared.Question, error)

	// OpenQuestion publishes q as the next question and returns its
	// sequence number. The write is two-phase: the question payload is
	// stored unconditionally at seq+1, then the instance record advances
	// with a write conditioned on the sequence number being unchanged.
	// ErrConflict means a concurrent open won the race.
	OpenQuestion(ctx context.Context, q shared.Question) (int, error)

	// CloseQuestion clears the open flag. It does not touch the sequence
	// number and is idempotent.
	CloseQuestion(ctx context.Context) error

	// StoreAnswer records an answer, conditional on no answer existing
	// for (questionID, clientID). ErrAlreadyExists is the at-most-once
	// guarantee.
	StoreAnswer(ctx context.Context, questionID int, clientID string, answer int) error

	// Question returns the published question at the given sequence
	// number, or nil if absent. Absence is not an error.
	Question(ctx context.Context, questionID int) (*shared.Question, error)
	Questions(ctx context.Context) (map[int]shared.Question, error)
	Answers(ctx context.Context) (map[int]map[string]int, error)
	Solutions(ctx context.Context) (map[int]int, error)
}
