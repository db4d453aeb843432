package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/pkg/platform/circuit"
	"custodian/pkg/platform/sentinel"
)

// SimulatedNotifier acknowledges every notification immediately.
type SimulatedNotifier struct {
	now func() time.Time
}

func NewSimulatedNotifier() *SimulatedNotifier {
	return &SimulatedNotifier{now: time.Now}
}

func (n *SimulatedNotifier) Notify(ctx context.Context, _ string, recipient models.Recipient, _ ports.NotificationScope) (models.NotificationRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.NotificationRecord{}, err
	}
	at := n.now().UTC()
	return models.NotificationRecord{
		Recipient:   recipient.Name,
		Status:      "confirmed",
		NotifiedAt:  at,
		ConfirmedAt: at,
	}, nil
}

// BreakerNotifier guards a notifier with a circuit breaker. Once the breaker
// opens, failures are reported as sentinel.ErrUnavailable so callers can stop
// fanning out to the remaining recipients.
type BreakerNotifier struct {
	next    ports.ThirdPartyNotifier
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewBreakerNotifier wraps next. A nil logger disables state-change logging.
func NewBreakerNotifier(next ports.ThirdPartyNotifier, breaker *circuit.Breaker, logger *slog.Logger) *BreakerNotifier {
	return &BreakerNotifier{next: next, breaker: breaker, logger: logger}
}

func (b *BreakerNotifier) Notify(ctx context.Context, subjectID string, recipient models.Recipient, scope ports.NotificationScope) (models.NotificationRecord, error) {
	rec, err := b.next.Notify(ctx, subjectID, recipient, scope)
	if err != nil {
		open, change := b.breaker.RecordFailure()
		if change.Opened && b.logger != nil {
			b.logger.WarnContext(ctx, "third-party notifier circuit opened",
				"breaker", b.breaker.Name(),
				"recipient", recipient.Name,
				"error", err,
			)
		}
		if open {
			return models.NotificationRecord{}, fmt.Errorf("notify %s: %w: %w", recipient.Name, sentinel.ErrUnavailable, err)
		}
		return models.NotificationRecord{}, fmt.Errorf("notify %s: %w", recipient.Name, err)
	}
	if _, change := b.breaker.RecordSuccess(); change.Closed && b.logger != nil {
		b.logger.InfoContext(ctx, "third-party notifier circuit closed", "breaker", b.breaker.Name())
	}
	return rec, nil
}
