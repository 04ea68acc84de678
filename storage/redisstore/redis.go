// Package redisstore implements the storage contract on Redis.
//
// Every mutation is either a single atomic command (SET NX, HSET, HSETNX)
// or an optimistic WATCH/MULTI transaction. A transaction that loses a
// race fails with redis.TxFailedErr, which is surfaced as
// storage.ErrConflict; no locks are held across round trips.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/erwinbonsma/PartyQuiz/shared"
	"github.com/erwinbonsma/PartyQuiz/storage"
)

const globalsKey = "globals"

// Store implements storage.Storage on a Redis client.
type Store struct {
	rdb *redis.Client
}

// New initializes a Store connected to the given Redis instance.
func New(addr, password string, db int) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func instanceKey(quizID string) string  { return fmt.Sprintf("quiz:%s:instance", quizID) }
func clientsKey(quizID string) string   { return fmt.Sprintf("quiz:%s:clients", quizID) }
func playersKey(quizID string) string   { return fmt.Sprintf("quiz:%s:players", quizID) }
func poolKey(quizID string) string      { return fmt.Sprintf("quiz:%s:pool", quizID) }
func questionsKey(quizID string) string { return fmt.Sprintf("quiz:%s:questions", quizID) }
func answersKey(quizID string) string   { return fmt.Sprintf("quiz:%s:answers", quizID) }
func connKey(connection string) string  { return "conn:" + connection }

func (s *Store) CreateQuiz(ctx context.Context, quizID, hostID, name string) error {
	info := shared.QuizInfo{
		QuizID: quizID,
		HostID: hostID,
		Name:   name,
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	created, err := s.rdb.SetNX(ctx, instanceKey(quizID), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return storage.ErrAlreadyExists
	}
	return nil
}

func (s *Store) QuizAccess(quizID string) storage.QuizAccess {
	return &quizAccess{store: s, quizID: quizID}
}

func (s *Store) SetQuizForConnection(ctx context.Context, connection, quizID string) error {
	return s.rdb.Set(ctx, connKey(connection), quizID, 0).Err()
}

func (s *Store) QuizForConnection(ctx context.Context, connection string) (string, error) {
	quizID, err := s.rdb.Get(ctx, connKey(connection)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return quizID, err
}

func (s *Store) ClearQuizForConnection(ctx context.Context, connection string) error {
	return s.rdb.Del(ctx, connKey(connection)).Err()
}

// globalRecord is the single JSON value holding store-wide settings.
type globalRecord struct {
	RootUser      string `json:"root_user,omitempty"`
	DefaultQuizID string `json:"default_quiz_id,omitempty"`
}

func (s *Store) getGlobals(ctx context.Context) (globalRecord, error) {
	var g globalRecord
	data, err := s.rdb.Get(ctx, globalsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return g, nil
	}
	if err != nil {
		return g, err
	}
	return g, json.Unmarshal(data, &g)
}

func (s *Store) updateGlobals(ctx context.Context, update func(*globalRecord)) error {
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		var g globalRecord
		data, err := tx.Get(ctx, globalsKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &g); err != nil {
				return err
			}
		}
		update(&g)
		updated, err := json.Marshal(g)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, globalsKey, updated, 0)
			return nil
		})
		return err
	}, globalsKey)
	if errors.Is(err, redis.TxFailedErr) {
		return storage.ErrConflict
	}
	return err
}

func (s *Store) RootUser(ctx context.Context) (string, error) {
	g, err := s.getGlobals(ctx)
	return g.RootUser, err
}

func (s *Store) SetRootUser(ctx context.Context, clientID string) error {
	return s.updateGlobals(ctx, func(g *globalRecord) { g.RootUser = clientID })
}

func (s *Store) DefaultQuizID(ctx context.Context) (string, error) {
	g, err := s.getGlobals(ctx)
	return g.DefaultQuizID, err
}

func (s *Store) SetDefaultQuizID(ctx context.Context, quizID string) error {
	return s.updateGlobals(ctx, func(g *globalRecord) { g.DefaultQuizID = quizID })
}

// quizAccess scopes operations to one quiz and keeps the snapshot loaded
// by Fetch current across mutations.
type quizAccess struct {
	store  *Store
	quizID string

	info    shared.QuizInfo
	clients shared.ClientMap
	players shared.PlayerMap
}

func (a *quizAccess) QuizID() string { return a.quizID }

func (a *quizAccess) rdb() *redis.Client { return a.store.rdb }

func (a *quizAccess) Fetch(ctx context.Context) (bool, error) {
	pipe := a.rdb().Pipeline()
	instCmd := pipe.Get(ctx, instanceKey(a.quizID))
	clientsCmd := pipe.Get(ctx, clientsKey(a.quizID))
	playersCmd := pipe.HGetAll(ctx, playersKey(a.quizID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	data, err := instCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, &a.info); err != nil {
		return false, err
	}

	a.clients = make(shared.ClientMap)
	if data, err := clientsCmd.Bytes(); err == nil {
		if err := json.Unmarshal(data, &a.clients); err != nil {
			return false, err
		}
	} else if !errors.Is(err, redis.Nil) {
		return false, err
	}

	a.players = make(shared.PlayerMap)
	for clientID, raw := range playersCmd.Val() {
		var player shared.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return false, err
		}
		a.players[clientID] = player
	}

	return true, nil
}

func (a *quizAccess) Info() shared.QuizInfo     { return a.info }
func (a *quizAccess) Clients() shared.ClientMap { return a.clients }
func (a *quizAccess) Players() shared.PlayerMap { return a.players }

// updateClients mutates the client map inside an optimistic transaction.
// Concurrent writers of the same map conflict; the loser gets
// storage.ErrConflict and decides whether to retry.
func (a *quizAccess) updateClients(ctx context.Context, update func(shared.ClientMap)) (shared.ClientMap, error) {
	key := clientsKey(a.quizID)
	var updated shared.ClientMap

	err := a.rdb().Watch(ctx, func(tx *redis.Tx) error {
		clients := make(shared.ClientMap)
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &clients); err != nil {
				return err
			}
		}

		update(clients)
		newData, err := json.Marshal(clients)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			return nil
		})
		if err == nil {
			updated = clients
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	a.clients = updated
	return updated, nil
}

func (a *quizAccess) AddClient(ctx context.Context, connection, clientID string) (shared.ClientMap, error) {
	return a.updateClients(ctx, func(clients shared.ClientMap) {
		clients[connection] = clientID
	})
}

func (a *quizAccess) RemoveClient(ctx context.Context, connection string) (shared.ClientMap, error) {
	return a.updateClients(ctx, func(clients shared.ClientMap) {
		delete(clients, connection)
	})
}

func (a *quizAccess) AddPlayer(ctx context.Context, clientID string, player shared.Player) (shared.PlayerMap, error) {
	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	added, err := a.rdb().HSetNX(ctx, playersKey(a.quizID), clientID, data).Result()
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, storage.ErrAlreadyExists
	}

	raw, err := a.rdb().HGetAll(ctx, playersKey(a.quizID)).Result()
	if err != nil {
		return nil, err
	}
	players := make(shared.PlayerMap, len(raw))
	for id, rawPlayer := range raw {
		var p shared.Player
		if err := json.Unmarshal([]byte(rawPlayer), &p); err != nil {
			return nil, err
		}
		players[id] = p
	}

	a.players = players
	return players, nil
}

func (a *quizAccess) SetPoolQuestion(ctx context.Context, question shared.Question) error {
	data, err := json.Marshal(question)
	if err != nil {
		return err
	}
	return a.rdb().HSet(ctx, poolKey(a.quizID), question.AuthorID, data).Err()
}

func (a *quizAccess) PoolQuestion(ctx context.Context, clientID string) (*shared.Question, error) {
	raw, err := a.rdb().HGet(ctx, poolKey(a.quizID), clientID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var question shared.Question
	if err := json.Unmarshal([]byte(raw), &question); err != nil {
		return nil, err
	}
	question.AuthorID = clientID
	return &question, nil
}

func (a *quizAccess) PoolQuestions(ctx context.Context) (map[string]shared.Question, error) {
	raw, err := a.rdb().HGetAll(ctx, poolKey(a.quizID)).Result()
	if err != nil {
		return nil, err
	}
	pool := make(map[string]shared.Question, len(raw))
	for authorID, rawQuestion := range raw {
		var question shared.Question
		if err := json.Unmarshal([]byte(rawQuestion), &question); err != nil {
			return nil, err
		}
		question.AuthorID = authorID
		pool[authorID] = question
	}
	return pool, nil
}

func (a *quizAccess) setQuestion(ctx context.Context, questionID int, question shared.Question) error {
	data, err := json.Marshal(question)
	if err != nil {
		return err
	}
	// Plain HSET: overwriting an existing entry is the recovery path for
	// an open that crashed between storing the question and advancing the
	// counter.
	return a.rdb().HSet(ctx, questionsKey(a.quizID), strconv.Itoa(questionID), data).Err()
}

func (a *quizAccess) OpenQuestion(ctx context.Context, question shared.Question) (int, error) {
	oldID := a.info.QuestionID
	newID := oldID + 1

	if err := a.setQuestion(ctx, newID, question); err != nil {
		return 0, err
	}

	key := instanceKey(a.quizID)
	err := a.rdb().Watch(ctx, func(tx *redis.Tx) error {
		var info shared.QuizInfo
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return err
		}
		if info.QuestionID != oldID {
			return storage.ErrConflict
		}

		info.QuestionID = newID
		info.IsQuestionOpen = true
		info.NumChoices = len(question.Choices)
		newData, err := json.Marshal(info)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			return nil
		})
		if err == nil {
			a.info = info
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		err = storage.ErrConflict
	}
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (a *quizAccess) CloseQuestion(ctx context.Context) error {
	key := instanceKey(a.quizID)
	err := a.rdb().Watch(ctx, func(tx *redis.Tx) error {
		var info shared.QuizInfo
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return err
		}

		info.IsQuestionOpen = false
		newData, err := json.Marshal(info)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			return nil
		})
		if err == nil {
			a.info = info
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return storage.ErrConflict
	}
	return err
}

func answerField(questionID int, clientID string) string {
	return fmt.Sprintf("%d#%s", questionID, clientID)
}

func (a *quizAccess) StoreAnswer(ctx context.Context, questionID int, clientID string, answer int) error {
	stored, err := a.rdb().HSetNX(ctx, answersKey(a.quizID), answerField(questionID, clientID), answer).Result()
	if err != nil {
		return err
	}
	if !stored {
		return storage.ErrAlreadyExists
	}
	return nil
}

func (a *quizAccess) Question(ctx context.Context, questionID int) (*shared.Question, error) {
	raw, err := a.rdb().HGet(ctx, questionsKey(a.quizID), strconv.Itoa(questionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var question shared.Question
	if err := json.Unmarshal([]byte(raw), &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (a *quizAccess) Questions(ctx context.Context) (map[int]shared.Question, error) {
	raw, err := a.rdb().HGetAll(ctx, questionsKey(a.quizID)).Result()
	if err != nil {
		return nil, err
	}
	questions := make(map[int]shared.Question, len(raw))
	for field, rawQuestion := range raw {
		questionID, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("malformed question key %q: %w", field, err)
		}
		var question shared.Question
		if err := json.Unmarshal([]byte(rawQuestion), &question); err != nil {
			return nil, err
		}
		questions[questionID] = question
	}
	return questions, nil
}

func (a *quizAccess) Answers(ctx context.Context) (map[int]map[string]int, error) {
	raw, err := a.rdb().HGetAll(ctx, answersKey(a.quizID)).Result()
	if err != nil {
		return nil, err
	}
	answers := make(map[int]map[string]int)
	for field, rawAnswer := range raw {
		questionField, clientID, found := strings.Cut(field, "#")
		if !found {
			return nil, fmt.Errorf("malformed answer key %q", field)
		}
		questionID, err := strconv.Atoi(questionField)
		if err != nil {
			return nil, fmt.Errorf("malformed answer key %q: %w", field, err)
		}
		answer, err := strconv.Atoi(rawAnswer)
		if err != nil {
			return nil, fmt.Errorf("malformed answer value %q: %w", rawAnswer, err)
		}
		if answers[questionID] == nil {
			answers[questionID] = make(map[string]int)
		}
		answers[questionID][clientID] = answer
	}
	return answers, nil
}

func (a *quizAccess) Solutions(ctx context.Context) (map[int]int, error) {
	questions, err := a.Questions(ctx)
	if err != nil {
		return nil, err
	}
	solutions := make(map[int]int, len(questions))
	for questionID, question := range questions {
		solutions[questionID] = question.Answer
	}
	return solutions, nil
}
