package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const welcomeTemplate = "welcome.html"

func (h *Handler) processWelcomeMail(ctx context.Context, task *asynq.Task) error {
	var payload WelcomeMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal welcome mail payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" {
		return fmt.Errorf("welcome mail without recipient: %w", asynq.SkipRetry)
	}

	data := map[string]any{
		"Name":  payload.Name,
		"Email": payload.Email,
		"Year":  time.Now().In(h.loc).Year(),
	}

	if err := h.mailer.Send(ctx, payload.Email, "Bem-vindo ao Meetapp!", welcomeTemplate, data); err != nil {
		return fmt.Errorf("failed to send welcome mail: %w", err)
	}
	return nil
}
