package storage_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erwinbonsma/PartyQuiz/shared"
	"github.com/erwinbonsma/PartyQuiz/storage"
)

func newTestQuiz(t *testing.T, store storage.Storage, quizID string) storage.QuizAccess {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, store.CreateQuiz(ctx, quizID, "HOSTID", "Test Quiz"))

	access := store.QuizAccess(quizID)
	exists, err := access.Fetch(ctx)
	require.NoError(t, err)
	require.True(t, exists)
	return access
}

func TestCreateQuizConflict(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	require.NoError(t, store.CreateQuiz(ctx, "ABCDEF", "host1", "Quiz"))
	err := store.CreateQuiz(ctx, "ABCDEF", "host2", "Other quiz")
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// The original instance is untouched.
	access := store.QuizAccess("ABCDEF")
	exists, err := access.Fetch(ctx)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, "host1", access.Info().HostID)
}

func TestFetchMissingQuiz(t *testing.T) {
	store := storage.NewMemory()

	exists, err := store.QuizAccess("NOSUCH").Fetch(context.Background())
	require.NoError(t, err)
	require.False(t, exists)
}

func TestClientMap(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	clients, err := access.AddClient(ctx, "conn1", "client1")
	require.NoError(t, err)
	require.Equal(t, shared.ClientMap{"conn1": "client1"}, clients)

	clients, err = access.AddClient(ctx, "conn2", "client1")
	require.NoError(t, err)
	require.Len(t, clients, 2)

	clients, err = access.RemoveClient(ctx, "conn1")
	require.NoError(t, err)
	require.Equal(t, shared.ClientMap{"conn2": "client1"}, clients)
	require.Equal(t, clients, access.Clients())
}

func TestAddPlayerNoOverwrite(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	players, err := access.AddPlayer(ctx, "client1", shared.Player{Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "Alice", players["client1"].Name)

	_, err = access.AddPlayer(ctx, "client1", shared.Player{Name: "Mallory"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
	require.Equal(t, "Alice", access.Players()["client1"].Name)
}

func TestQuestionSequencing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	require.Zero(t, access.Info().QuestionID)
	require.False(t, access.Info().IsQuestionOpen)

	for i := 1; i <= 3; i++ {
		q := shared.Question{
			AuthorID: "client1",
			Question: "What is the answer to everything?",
			Choices:  []string{"41", "42", "43", "44"},
			Answer:   2,
		}
		questionID, err := access.OpenQuestion(ctx, q)
		require.NoError(t, err)
		require.Equal(t, i, questionID)
		require.Equal(t, i, access.Info().QuestionID)
		require.True(t, access.Info().IsQuestionOpen)
		require.Equal(t, 4, access.Info().NumChoices)
	}

	stored, err := access.Question(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, 2, stored.Answer)

	questions, err := access.Questions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	solutions, err := access.Solutions(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int]int{1: 2, 2: 2, 3: 2}, solutions)
}

func TestOpenQuestionConflict(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	newTestQuiz(t, store, "ABCDEF")

	// Two access wrappers with the same stale snapshot race to open.
	a1 := store.QuizAccess("ABCDEF")
	a2 := store.QuizAccess("ABCDEF")
	for _, a := range []storage.QuizAccess{a1, a2} {
		exists, err := a.Fetch(ctx)
		require.NoError(t, err)
		require.True(t, exists)
	}

	q := shared.Question{
		AuthorID: "client1",
		Question: "Which access wrapper wins the race?",
		Choices:  []string{"first", "second", "both", "neither"},
		Answer:   1,
	}
	_, err := a1.OpenQuestion(ctx, q)
	require.NoError(t, err)

	_, err = a2.OpenQuestion(ctx, q)
	require.ErrorIs(t, err, storage.ErrConflict)

	// The loser's phase-one write hit the same key; the winner's question
	// is still the one stored at sequence 1.
	stored, err := a1.Question(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCloseQuestionIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	_, err := access.OpenQuestion(ctx, shared.Question{
		AuthorID: "client1",
		Question: "Will closing twice break anything?",
		Choices:  []string{"yes", "no", "maybe", "always"},
		Answer:   2,
	})
	require.NoError(t, err)

	require.NoError(t, access.CloseQuestion(ctx))
	require.NoError(t, access.CloseQuestion(ctx))
	require.False(t, access.Info().IsQuestionOpen)
	require.Equal(t, 1, access.Info().QuestionID)
}

func TestStoreAnswerAtMostOnce(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	require.NoError(t, access.StoreAnswer(ctx, 1, "client1", 2))
	err := access.StoreAnswer(ctx, 1, "client1", 3)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Same client answering a different question is fine.
	require.NoError(t, access.StoreAnswer(ctx, 2, "client1", 3))

	answers, err := access.Answers(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int]map[string]int{
		1: {"client1": 2},
		2: {"client1": 3},
	}, answers)
}

func TestStoreAnswerConcurrent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = access.StoreAnswer(ctx, 1, "client1", i+1)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, storage.ErrAlreadyExists)
		}
	}
	require.Equal(t, 1, won)
}

func TestPoolQuestionUpsert(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	access := newTestQuiz(t, store, "ABCDEF")

	q := shared.Question{
		AuthorID: "client1",
		Question: "What colour is the sky at noon?",
		Choices:  []string{"blue", "green", "red", "black"},
		Answer:   1,
	}
	require.NoError(t, access.SetPoolQuestion(ctx, q))

	q.Answer = 2
	require.NoError(t, access.SetPoolQuestion(ctx, q))

	got, err := access.PoolQuestion(ctx, "client1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 2, got.Answer)

	pool, err := access.PoolQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 1)

	missing, err := access.PoolQuestion(ctx, "client2")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestConnectionMapping(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	quizID, err := store.QuizForConnection(ctx, "conn1")
	require.NoError(t, err)
	require.Empty(t, quizID)

	require.NoError(t, store.SetQuizForConnection(ctx, "conn1", "ABCDEF"))
	quizID, err = store.QuizForConnection(ctx, "conn1")
	require.NoError(t, err)
	require.Equal(t, "ABCDEF", quizID)

	require.NoError(t, store.ClearQuizForConnection(ctx, "conn1"))
	quizID, err = store.QuizForConnection(ctx, "conn1")
	require.NoError(t, err)
	require.Empty(t, quizID)
}

func TestGlobals(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	root, err := store.RootUser(ctx)
	require.NoError(t, err)
	require.Empty(t, root)

	require.NoError(t, store.SetRootUser(ctx, "client1"))
	root, err = store.RootUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "client1", root)

	require.NoError(t, store.SetDefaultQuizID(ctx, "ABCDEF"))
	quizID, err := store.DefaultQuizID(ctx)
	require.NoError(t, err)
	require.Equal(t, "ABCDEF", quizID)
}
