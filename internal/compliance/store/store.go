// Package store defines the typed repositories that hold compliance records.
//
// Every record kind has its own Repository so keys of different kinds can
// never collide. Backends live in the memory, redis and postgres
// subpackages and return sentinel.ErrNotFound for missing records.
package store

import (
	"context"

	"custodian/internal/compliance/models"
)

// Kind names a record family. Backends use it as a key namespace.
type Kind string

const (
	KindRestriction   Kind = "restriction"
	KindObjection     Kind = "objection"
	KindErasure       Kind = "erasure"
	KindRectification Kind = "rectification"
	KindPortability   Kind = "portability"
	KindDecision      Kind = "decision"
	KindPHI           Kind = "phi"
)

// Key addresses one record. Name is the field for rectifications and empty
// for every other kind.
type Key struct {
	SubjectID string
	Name      string
}

// SubjectKey is the key of a single-record-per-subject kind.
func SubjectKey(subjectID string) Key {
	return Key{SubjectID: subjectID}
}

// Repository stores records of one kind. List returns a subject's records
// ordered by Name.
type Repository[T any] interface {
	Get(ctx context.Context, key Key) (T, error)
	Set(ctx context.Context, key Key, record T) error
	Delete(ctx context.Context, key Key) error
	List(ctx context.Context, subjectID string) ([]T, error)
}

// Stores bundles one repository per record kind.
type Stores struct {
	Restrictions   Repository[models.Restriction]
	Objections     Repository[models.Objection]
	Erasures       Repository[models.Erasure]
	Rectifications Repository[models.Rectification]
	Portability    Repository[models.PortabilityExport]
	Decisions      Repository[models.DecisionReview]
	PHI            Repository[models.PHIRequestRecord]
}
