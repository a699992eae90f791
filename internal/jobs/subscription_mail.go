package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodsign/monday"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	subscriptionTemplate = "subscription.html"
	mailDateLayout       = "dia 02 de January, às 15:04h"
)

// SubscriptionMailData is what the subscription template renders.
type SubscriptionMailData struct {
	Organizer string
	Meetup    string
	Location  string
	Date      string
	Name      string
	Email     string
}

func (h *Handler) processSubscriptionMail(ctx context.Context, task *asynq.Task) error {
	var payload SubscriptionMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal subscription mail payload: %v: %w", err, asynq.SkipRetry)
	}
	if !payload.validate() {
		return fmt.Errorf("incomplete subscription mail payload: %w", asynq.SkipRetry)
	}

	organizer := payload.Meetup.Organizer
	to := fmt.Sprintf("%s <%s>", organizer.Name, organizer.Email)
	subject := "Nova inscrição no " + payload.Meetup.Title

	data := SubscriptionMailData{
		Organizer: organizer.Name,
		Meetup:    payload.Meetup.Title,
		Location:  payload.Meetup.Location,
		Date:      h.formatDate(payload),
		Name:      payload.Name,
		Email:     payload.Email,
	}

	if err := h.mailer.Send(ctx, to, subject, subscriptionTemplate, data); err != nil {
		return fmt.Errorf("failed to send subscription mail: %w", err)
	}

	h.log.Info("subscription mail sent",
		zap.Uint("meetup_id", payload.Meetup.ID),
		zap.String("organizer", organizer.Email),
	)
	return nil
}

func (h *Handler) formatDate(payload SubscriptionMailPayload) string {
	return monday.Format(payload.Meetup.Date.In(h.loc), mailDateLayout, monday.Locale(h.locale))
}
