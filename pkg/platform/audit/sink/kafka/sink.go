// Package kafka streams appended audit events to a Kafka topic.
//
// Subject identifiers never leave the process in clear text: the record key
// and payload carry a keyed BLAKE2b pseudonym instead. Details are dropped;
// consumers that need them read the authoritative store by event id.
package kafka

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/crypto/blake2b"

	audit "custodian/pkg/platform/audit"
)

// Payload is the wire format of one streamed event.
type Payload struct {
	ID               string    `json:"id"`
	CorrelationID    string    `json:"correlation_id"`
	Sequence         int64     `json:"sequence"`
	Category         string    `json:"category"`
	Timestamp        time.Time `json:"ts"`
	Action           string    `json:"action"`
	EntityType       string    `json:"entity_type"`
	SubjectPseudonym string    `json:"subject_pseudonym"`
	UserID           string    `json:"user_id,omitempty"`
	RequestID        string    `json:"request_id,omitempty"`
	Success          bool      `json:"success"`
	Error            string    `json:"error,omitempty"`
	PrevHash         string    `json:"prev_hash"`
	Hash             string    `json:"hash"`
	// AmendedAt marks a re-publication of an event downgraded after the fact.
	AmendedAt *time.Time `json:"amended_at,omitempty"`
}

// Pseudonymizer derives stable keyed pseudonyms for subject ids.
type Pseudonymizer struct {
	key []byte
}

// NewPseudonymizer validates key length (1..64 bytes) for keyed BLAKE2b.
func NewPseudonymizer(key []byte) (*Pseudonymizer, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("pseudonym key must be 1..%d bytes", blake2b.Size)
	}
	return &Pseudonymizer{key: append([]byte(nil), key...)}, nil
}

// Pseudonym returns hex(BLAKE2b-256_key(subjectID)).
func (p *Pseudonymizer) Pseudonym(subjectID string) string {
	h, _ := blake2b.New256(p.key) // key length validated in NewPseudonymizer
	_, _ = h.Write([]byte(subjectID))
	return hex.EncodeToString(h.Sum(nil))
}

// Encode builds the record key and value for event.
func (p *Pseudonymizer) Encode(event audit.Event) (key, value []byte, err error) {
	pseudonym := p.Pseudonym(event.EntityID)
	var amendedAt *time.Time
	if event.Amended != nil {
		at := event.Amended.At
		amendedAt = &at
	}
	value, err = json.Marshal(Payload{
		ID:               event.ID.String(),
		CorrelationID:    event.CorrelationID.String(),
		Sequence:         event.Sequence,
		Category:         string(event.Category),
		Timestamp:        event.Timestamp,
		Action:           event.Action,
		EntityType:       event.EntityType,
		SubjectPseudonym: pseudonym,
		UserID:           event.UserID,
		RequestID:        event.RequestID,
		Success:          event.Success,
		Error:            event.Error,
		PrevHash:         event.PrevHash,
		Hash:             event.Hash,
		AmendedAt:        amendedAt,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal audit payload: %w", err)
	}
	return []byte(pseudonym), value, nil
}

// Config configures the sink.
type Config struct {
	Brokers      []string
	Topic        string
	Partitions   int32
	Replication  int16
	PseudonymKey []byte
}

// Sink produces audit events synchronously, keyed by subject pseudonym so a
// subject's events stay ordered within a partition.
type Sink struct {
	client *kgo.Client
	topic  string
	pseudo *Pseudonymizer
	logger *slog.Logger
}

// Option configures the Sink.
type Option func(*Sink)

// WithLogger sets a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New connects to the brokers and ensures the topic exists.
func New(ctx context.Context, cfg Config, opts ...Option) (*Sink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka sink requires brokers")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka sink requires a topic")
	}
	pseudo, err := NewPseudonymizer(cfg.PseudonymKey)
	if err != nil {
		return nil, err
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.ZstdCompression(), kgo.NoCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	s := &Sink{client: client, topic: cfg.Topic, pseudo: pseudo}
	for _, opt := range opts {
		opt(s)
	}

	if err := ensureTopic(ctx, kadm.NewClient(client), cfg); err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

func ensureTopic(ctx context.Context, adm *kadm.Client, cfg Config) error {
	partitions, replication := cfg.Partitions, cfg.Replication
	if partitions <= 0 {
		partitions = 1
	}
	if replication <= 0 {
		replication = 1
	}
	resp, err := adm.CreateTopics(ctx, partitions, replication, map[string]*string{
		"cleanup.policy": kadm.StringPtr("delete"),
	}, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish produces event and waits for broker acknowledgement.
func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	key, value, err := s.pseudo.Encode(event)
	if err != nil {
		return err
	}
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   key,
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event %s: %w", event.ID, err)
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "audit event streamed",
			"event_id", event.ID,
			"action", event.Action,
		)
	}
	return nil
}

// Close flushes and closes the client.
func (s *Sink) Close() {
	s.client.Close()
}
