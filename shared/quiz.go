// Package shared holds the data model that the storage, quiz and gateway
// packages exchange: quiz instance state, clients, players and questions.
package shared

// ClientRole is the role a client holds within one quiz.
type ClientRole int

const (
	RoleHost ClientRole = iota + 1
	RolePlayer
	RoleObserver
)

func (r ClientRole) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RolePlayer:
		return "player"
	case RoleObserver:
		return "observer"
	default:
		return "unknown"
	}
}

// QuizInfo is the instance record of a quiz. QuizID and HostID are fixed at
// creation; QuestionID, IsQuestionOpen and NumChoices change as the host
// opens and closes questions.
type QuizInfo struct {
	QuizID         string `json:"quiz_id"`
	HostID         string `json:"host_id"`
	Name           string `json:"name"`
	QuestionID     int    `json:"question_id"`
	IsQuestionOpen bool   `json:"is_question_open"`
	NumChoices     int    `json:"num_choices"`
}

// Player is a registered participant, keyed by client ID. It persists for
// the quiz's lifetime regardless of connect/disconnect cycles.
type Player struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Question is a multiple-choice question. Answer is the 1-based index of
// the correct choice; it is zero in stripped copies sent to players.
type Question struct {
	AuthorID string   `json:"author_id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer,omitempty"`
}

// Stripped returns a copy of the question without the answer, for delivery
// to players while the question is open.
func (q Question) Stripped() Question {
	q.Answer = 0
	return q
}

// ClientMap maps live connection IDs to client IDs within one quiz. A
// client ID may appear under multiple connections (e.g. the host joined
// from several devices).
type ClientMap map[string]string

// PlayerMap maps client IDs to registered players.
type PlayerMap map[string]Player
