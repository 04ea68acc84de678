package shared

// Limits on quiz contents and participation. Connection counts include the
// host's own connections; the player cap is independent of connectivity.
const (
	MaxPlayersPerQuiz = 40
	MaxClientsPerQuiz = 50

	// MaxAttempts bounds retry loops around conditional writes: quiz
	// creation on ID clash and client removal on a lost race.
	MaxAttempts = 3

	MinNameLength = 2
	MaxNameLength = 20

	MinChoicesPerQuestion = 4
	MaxChoicesPerQuestion = 4

	MinQuestionLength = 10
	MaxQuestionLength = 160

	MinChoiceLength = 1
	MaxChoiceLength = 80
)
