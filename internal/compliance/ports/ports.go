// Package ports declares the collaborators the compliance engine calls but
// does not implement.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/ports-mocks.go -package=mocks PersonalDataStore,ProcessingCatalog,ThirdPartyNotifier

import (
	"context"

	"custodian/internal/compliance/models"
)

// FetchOptions narrows a personal data lookup. Empty Categories means all.
type FetchOptions struct {
	Categories []string
}

// PersonalDataStore is the controller's system of record for personal data.
type PersonalDataStore interface {
	Fetch(ctx context.Context, subjectID string, opts FetchOptions) ([]models.PersonalDataRecord, error)
}

// ProcessingCatalog answers the Article 13/15 questions about how a
// subject's data is processed.
type ProcessingCatalog interface {
	PurposesFor(ctx context.Context, subjectID string) ([]string, error)
	LegalBasisFor(ctx context.Context, subjectID string) (map[string]string, error)
	RetentionPeriodsFor(ctx context.Context, subjectID string) (map[string]string, error)
	ErasureCriteriaFor(ctx context.Context, subjectID string) ([]string, error)
	ThirdPartyRecipientsFor(ctx context.Context, subjectID string) ([]models.Recipient, error)
	SafeguardsFor(ctx context.Context, subjectID string) ([]string, error)
}

// NotificationScope tells a recipient what changed.
type NotificationScope struct {
	Right      string
	Categories []string
}

// ThirdPartyNotifier informs recipients of a subject's data about erasure.
// An error means the recipient was not notified; implementations return
// sentinel.ErrUnavailable when the downstream is known to be down.
type ThirdPartyNotifier interface {
	Notify(ctx context.Context, subjectID string, recipient models.Recipient, scope NotificationScope) (models.NotificationRecord, error)
}
