package quiz

import (
	"fmt"
	"strings"

	"github.com/erwinbonsma/PartyQuiz/shared"
)

func checkIntValue(name string, value, min, max int) error {
	if value < min {
		return newError(ErrorInvalidValue, "%s is too small (%d < %d)", name, value, min)
	}
	if value > max {
		return newError(ErrorInvalidValue, "%s is too big (%d > %d)", name, value, max)
	}
	return nil
}

func checkStringValue(name, value string, minLen, maxLen int) error {
	if value != strings.TrimSpace(value) {
		return newError(ErrorInvalidValue, "%s contains leading or trailing whitespace", name)
	}
	if len(value) < minLen {
		return newError(ErrorInvalidValue, "%s is too short (%d < %d)", name, len(value), minLen)
	}
	if len(value) > maxLen {
		return newError(ErrorInvalidValue, "%s is too long (%d > %d)", name, len(value), maxLen)
	}
	return nil
}

// newQuestion validates all question fields and builds the question. The
// answer is the 1-based index of the correct choice.
func newQuestion(authorID, question string, choices []string, answer int) (shared.Question, error) {
	if err := checkStringValue("question", question,
		shared.MinQuestionLength, shared.MaxQuestionLength); err != nil {
		return shared.Question{}, err
	}
	if err := checkIntValue("number of choices", len(choices),
		shared.MinChoicesPerQuestion, shared.MaxChoicesPerQuestion); err != nil {
		return shared.Question{}, err
	}
	for i, choice := range choices {
		if err := checkStringValue(fmt.Sprintf("answer %d", i+1), choice,
			shared.MinChoiceLength, shared.MaxChoiceLength); err != nil {
			return shared.Question{}, err
		}
	}
	if err := checkIntValue("answer", answer, 1, len(choices)); err != nil {
		return shared.Question{}, err
	}

	return shared.Question{
		AuthorID: authorID,
		Question: question,
		Choices:  choices,
		Answer:   answer,
	}, nil
}
