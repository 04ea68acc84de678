package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestion(t *testing.T) {
	choices := []string{"Red", "Green", "Blue", "Yellow"}

	t.Run("valid", func(t *testing.T) {
		q, err := newQuestion("AUTHOR", "What is your favourite colour?", choices, 3)
		require.NoError(t, err)
		assert.Equal(t, "AUTHOR", q.AuthorID)
		assert.Equal(t, 3, q.Answer)
		assert.Empty(t, q.Stripped().Answer)
	})

	testCases := []struct {
		name     string
		question string
		choices  []string
		answer   int
	}{
		{"question too short", "Why?", choices, 1},
		{"question too long", strings.Repeat("x", 161), choices, 1},
		{"question padded", " What is your favourite colour?", choices, 1},
		{"too few choices", "What is your favourite colour?", choices[:3], 1},
		{"too many choices", "What is your favourite colour?", append([]string{"Cyan"}, choices...), 1},
		{"empty choice", "What is your favourite colour?", []string{"Red", "", "Blue", "Yellow"}, 1},
		{"choice too long", "What is your favourite colour?", []string{"Red", strings.Repeat("x", 81), "Blue", "Yellow"}, 1},
		{"answer too small", "What is your favourite colour?", choices, 0},
		{"answer too big", "What is your favourite colour?", choices, 5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newQuestion("AUTHOR", tc.question, tc.choices, tc.answer)
			var reject *Error
			require.ErrorAs(t, err, &reject)
			assert.Equal(t, ErrorInvalidValue, reject.Code)
		})
	}
}

func TestCheckStringValue(t *testing.T) {
	assert.NoError(t, checkStringValue("name", "ok", 2, 20))
	assert.Error(t, checkStringValue("name", "x", 2, 20))
	assert.Error(t, checkStringValue("name", strings.Repeat("x", 21), 2, 20))
	assert.Error(t, checkStringValue("name", " padded", 2, 20))
	assert.Error(t, checkStringValue("name", "padded ", 2, 20))
}

func TestErrorFormatting(t *testing.T) {
	err := newError(ErrorQuizNotFound, "Quiz %s not found", "ABCDEF")
	assert.Equal(t, "Quiz ABCDEF not found (error code 1)", err.Error())
}
