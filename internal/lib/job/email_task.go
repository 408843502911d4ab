package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type sent after a user registers.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload stored in Redis for TaskWelcome.
type WelcomeEmailPayload struct {
	UserID   int64  `json:"user_id"`
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask builds a welcome task. Usernames are email-shaped, so
// the username doubles as the recipient.
func NewWelcomeEmailTask(userID int64, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		UserID:   userID,
		To:       username,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
