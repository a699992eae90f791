package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Mailer renders a named template and delivers it.
type Mailer interface {
	Send(ctx context.Context, to, subject, templateName string, data any) error
}

// Handler processes every task kind the worker knows about.
type Handler struct {
	mailer      Mailer
	loc         *time.Location
	locale      string
	taskTimeout time.Duration
	log         *zap.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLocation sets the zone meetup dates are shown in.
func WithLocation(loc *time.Location) HandlerOption {
	return func(h *Handler) {
		h.loc = loc
	}
}

// WithLocale sets the locale used for month names in mails.
func WithLocale(locale string) HandlerOption {
	return func(h *Handler) {
		h.locale = locale
	}
}

// WithTaskTimeout bounds a single task run.
func WithTaskTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.taskTimeout = timeout
	}
}

func NewHandler(mailer Mailer, log *zap.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		mailer:      mailer,
		loc:         time.UTC,
		locale:      "pt_BR",
		taskTimeout: 30 * time.Second,
		log:         log.Named("jobs"),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ProcessTask processes a task based on its type.
func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	ctx, cancel := context.WithTimeout(ctx, h.taskTimeout)
	defer cancel()

	switch task.Type() {
	case TypeSubscriptionMail:
		return h.processSubscriptionMail(ctx, task)
	case TypeWelcomeMail:
		return h.processWelcomeMail(ctx, task)
	default:
		return fmt.Errorf("unknown task type: %s: %w", task.Type(), asynq.SkipRetry)
	}
}
