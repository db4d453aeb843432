// Package redis stores compliance records in Redis as JSON values.
//
// Layout, with every id component query-escaped:
//
//	<prefix>:<kind>:<subject>[:<name>]   record JSON
//	<prefix>:<kind>#idx:<subject>        set of names held for the subject
//
// The index uses '#' after the namespace so no escaped record key can reach it.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/redis/go-redis/v9"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
)

// Repository is a Redis-backed store.Repository.
type Repository[T any] struct {
	client redis.UniversalClient
	ns     string
	kind   store.Kind
}

// NewRepository creates a repository for kind under prefix.
func NewRepository[T any](client redis.UniversalClient, prefix string, kind store.Kind) *Repository[T] {
	ns := string(kind)
	if prefix != "" {
		ns = prefix + ":" + ns
	}
	return &Repository[T]{client: client, ns: ns, kind: kind}
}

// NewStores returns a bundle of Redis repositories sharing client.
func NewStores(client redis.UniversalClient, prefix string) *store.Stores {
	return &store.Stores{
		Restrictions:   NewRepository[models.Restriction](client, prefix, store.KindRestriction),
		Objections:     NewRepository[models.Objection](client, prefix, store.KindObjection),
		Erasures:       NewRepository[models.Erasure](client, prefix, store.KindErasure),
		Rectifications: NewRepository[models.Rectification](client, prefix, store.KindRectification),
		Portability:    NewRepository[models.PortabilityExport](client, prefix, store.KindPortability),
		Decisions:      NewRepository[models.DecisionReview](client, prefix, store.KindDecision),
		PHI:            NewRepository[models.PHIRequestRecord](client, prefix, store.KindPHI),
	}
}

func (r *Repository[T]) recordKey(key store.Key) string {
	k := r.ns + ":" + url.QueryEscape(key.SubjectID)
	if key.Name != "" {
		k += ":" + url.QueryEscape(key.Name)
	}
	return k
}

func (r *Repository[T]) indexKey(subjectID string) string {
	return r.ns + "#idx:" + url.QueryEscape(subjectID)
}

func (r *Repository[T]) Get(ctx context.Context, key store.Key) (T, error) {
	var rec T
	raw, err := r.client.Get(ctx, r.recordKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("get %s: %w", r.kind, err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	return rec, nil
}

func (r *Repository[T]) Set(ctx context.Context, key store.Key, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.kind, err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(key), raw, 0)
		pipe.SAdd(ctx, r.indexKey(key.SubjectID), key.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", r.kind, err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, key store.Key) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.recordKey(key))
		pipe.SRem(ctx, r.indexKey(key.SubjectID), key.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	return nil
}

func (r *Repository[T]) List(ctx context.Context, subjectID string) ([]T, error) {
	names, err := r.client.SMembers(ctx, r.indexKey(subjectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	if len(names) == 0 {
		return []T{}, nil
	}
	sort.Strings(names)

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = r.recordKey(store.Key{SubjectID: subjectID, Name: name})
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}

	out := make([]T, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry outlived its record
			continue
		}
		var rec T
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", r.kind, names[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}
