package notify

import (
	"context"

	"github.com/agendasalao/salon-ai-platform/internal/messaging"
	"github.com/agendasalao/salon-ai-platform/internal/reminder"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// WhatsAppDispatcher delivers reminder notifications over the WhatsApp
// transport.
type WhatsAppDispatcher struct {
	sender messaging.Sender
}

// NewWhatsAppDispatcher wraps a WhatsApp sender as a reminder
// dispatcher.
func NewWhatsAppDispatcher(sender messaging.Sender) *WhatsAppDispatcher {
	return &WhatsAppDispatcher{sender: sender}
}

var _ reminder.Dispatcher = (*WhatsAppDispatcher)(nil)

func (d *WhatsAppDispatcher) Dispatch(ctx context.Context, phone, text string) error {
	return d.sender.Send(ctx, phone, text)
}

// LogDispatcher records outbound notifications without delivering them.
// Used when no WhatsApp credentials are configured, e.g. local
// development.
type LogDispatcher struct {
	logger *logging.Logger
}

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher(logger *logging.Logger) *LogDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogDispatcher{logger: logger}
}

var _ reminder.Dispatcher = (*LogDispatcher)(nil)

func (d *LogDispatcher) Dispatch(ctx context.Context, phone, text string) error {
	d.logger.Info("notification (not delivered)", "phone", phone, "chars", len(text))
	return nil
}
