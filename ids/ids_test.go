package ids_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erwinbonsma/PartyQuiz/ids"
)

func TestNewCode(t *testing.T) {
	code := ids.NewCode()
	require.Len(t, code, ids.CodeLength)
	for _, c := range code {
		require.GreaterOrEqual(t, c, 'A')
		require.LessOrEqual(t, c, 'Z')
	}
}

func TestNewCodeN(t *testing.T) {
	require.Len(t, ids.NewCodeN(10), 10)
	require.Empty(t, ids.NewCodeN(0))
}

func TestNewCodeVariability(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[ids.NewCode()] = true
	}
	// 100 draws from a 26^6 space should essentially never collide.
	require.Greater(t, len(seen), 95)
}
