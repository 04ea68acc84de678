package quiz

import "encoding/json"

// Action enumerates every request the session engine accepts. The
// dispatcher switches exhaustively over these; anything else is rejected
// with ErrorUnknownCommand.
type Action string

const (
	ActionCreateQuiz       = Action("create-quiz")
	ActionRegister         = Action("register")
	ActionConnect          = Action("connect")
	ActionDisconnect       = Action("disconnect")
	ActionGetStatus        = Action("get-status")
	ActionGetClients       = Action("get-clients")
	ActionSetPoolQuestion  = Action("set-pool-question")
	ActionGetPoolQuestions = Action("get-pool-questions")
	ActionOpenQuestion     = Action("open-question")
	ActionGetQuestion      = Action("get-question")
	ActionGetQuestions     = Action("get-questions")
	ActionCloseQuestion    = Action("close-question")
	ActionAnswer           = Action("answer")
	ActionGetAnswers       = Action("get-answers")
	ActionNotifyHosts      = Action("notify-hosts")
	ActionSetRootUser      = Action("set-root-user")
	ActionSetDefaultQuiz   = Action("set-default-quiz")
)

// Request is the decoded form of an inbound message. It is decoded once at
// the transport boundary; which fields are required depends on the action
// and is checked before any mutating operation runs.
type Request struct {
	Action Action `json:"action"`

	QuizID      string `json:"quiz_id,omitempty"`
	QuizName    string `json:"quiz_name,omitempty"`
	HostID      string `json:"host_id,omitempty"`
	MakeDefault bool   `json:"make_default,omitempty"`

	ClientID   string `json:"client_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	Avatar     string `json:"avatar,omitempty"`

	AuthorID   string   `json:"author_id,omitempty"`
	Question   string   `json:"question,omitempty"`
	Choices    []string `json:"choices,omitempty"`
	Answer     *int     `json:"answer,omitempty"`
	QuestionID *int     `json:"question_id,omitempty"`

	// set-root-user
	Value    string `json:"value,omitempty"`
	OldValue string `json:"old_value,omitempty"`

	// notify-hosts: forwarded verbatim
	Message json.RawMessage `json:"message,omitempty"`
}

func requireString(name, value string) (string, error) {
	if value == "" {
		return "", newError(ErrorMissingField, "Field '%s' is missing", name)
	}
	return value, nil
}

func requireStrings(name string, value []string) ([]string, error) {
	if value == nil {
		return nil, newError(ErrorMissingField, "Field '%s' is missing", name)
	}
	return value, nil
}

func requireInt(name string, value *int) (int, error) {
	if value == nil {
		return 0, newError(ErrorMissingField, "Field '%s' is missing", name)
	}
	return *value, nil
}
