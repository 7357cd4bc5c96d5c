package portal

import (
	"context"
	"io"
	"log/slog"
)

// Mailer delivers one-time codes out of band. Codes must never appear in
// HTTP responses, so every delivery path goes through this port.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

// LogMailer writes deliveries to a logger instead of sending mail. Intended
// for development and tests; the code itself is deliberately not logged.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code string) error {
	m.logger.InfoContext(ctx, "otp dispatched",
		slog.String("email", email),
		slog.Int("code_length", len(code)),
		slog.String("component", "mailer"),
	)
	return nil
}
