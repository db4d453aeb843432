// Package service processes data-subject and patient rights requests.
//
// Every right runs through the same pipeline: identity check, shape
// validation, a request audit event, right-specific logic under the
// subject's lock, and a completion audit event. Failures after the request
// event was written downgrade that event instead of appending a new one.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"custodian/internal/compliance/adapters"
	"custodian/internal/compliance/enforcement"
	"custodian/internal/compliance/metrics"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
)

// Auditor is the fail-closed audit trail the service writes to.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) (audit.Event, error)
	Amend(ctx context.Context, eventID uuid.UUID, errMsg string) error
	Query(ctx context.Context, filter audit.Filter) ([]audit.Event, error)
}

// Config toggles the regimes the service honors.
type Config struct {
	GDPREnabled  bool
	HIPAAEnabled bool
	ContactEmail string
	// LockTimeout bounds the wait for a subject's lock. Zero uses the default.
	LockTimeout time.Duration
}

// Service is the compliance engine. Safe for concurrent use once initialized.
type Service struct {
	cfg          Config
	stores       *store.Stores
	auditor      Auditor
	validator    *validator.Validator
	personalData ports.PersonalDataStore
	catalog      ports.ProcessingCatalog
	notifier     ports.ThirdPartyNotifier
	engine       *enforcement.Engine
	locks        *subjectLocks
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer

	mu          sync.RWMutex
	initialized bool
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithPersonalDataStore sets the system of record consulted by access and
// portability requests.
func WithPersonalDataStore(p ports.PersonalDataStore) Option {
	return func(s *Service) {
		s.personalData = p
	}
}

func WithCatalog(c ports.ProcessingCatalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

func WithNotifier(n ports.ThirdPartyNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// New creates a Service. Collaborators not supplied through options default
// to the in-process adapters. The service must be initialized before use.
func New(cfg Config, stores *store.Stores, auditor Auditor, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		stores:    stores,
		auditor:   auditor,
		validator: validator.New(),
		tracer:    otel.Tracer("custodian/compliance/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.personalData == nil {
		s.personalData = adapters.NewSeededPersonalDataStore()
	}
	if s.catalog == nil {
		s.catalog = adapters.NewStaticCatalog()
	}
	if s.notifier == nil {
		s.notifier = adapters.NewSimulatedNotifier()
	}
	s.locks = newSubjectLocks(cfg.LockTimeout)
	s.engine = enforcement.New(stores.Restrictions, stores.Objections, auditor,
		enforcement.WithLogger(s.logger),
		enforcement.WithMetrics(s.metrics),
		enforcement.WithTracer(s.tracer),
	)
	return s
}

// Init makes the service accept requests.
func (s *Service) Init(ctx context.Context) error {
	if s.stores == nil || s.auditor == nil {
		return dErrors.New(dErrors.CodeInternal, "compliance service requires stores and an audit trail")
	}
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "compliance service initialized",
			"gdpr_enabled", s.cfg.GDPREnabled,
			"hipaa_enabled", s.cfg.HIPAAEnabled,
		)
	}
	return nil
}

// Close stops the service accepting requests. In-flight requests finish.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	s.initialized = false
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "compliance service closed")
	}
	return nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return dErrors.New(dErrors.CodeNotInitialized, "compliance service not initialized")
	}
	return nil
}

// guard rejects requests for a right whose regime is disabled.
func (s *Service) guard(right domain.Right) error {
	if err := s.ready(); err != nil {
		return err
	}
	switch right.Regime() {
	case domain.RegimeHIPAA:
		if !s.cfg.HIPAAEnabled {
			return dErrors.New(dErrors.CodeComplianceDisabled, "HIPAA compliance is not enabled")
		}
	default:
		if !s.cfg.GDPREnabled {
			return dErrors.New(dErrors.CodeComplianceDisabled, "GDPR compliance is not enabled")
		}
	}
	return nil
}

func (s *Service) checkIdentity(subjectID string) error {
	if res := s.validator.ValidateIdentity(subjectID); !res.Valid {
		return dErrors.New(dErrors.CodeInvalidSubject, validator.MsgSubjectNotFound)
	}
	return nil
}

// AttemptProcessing decides whether an operation on subjectID's data may
// proceed. External data-access code calls it before processing.
func (s *Service) AttemptProcessing(ctx context.Context, subjectID string, attempt models.ProcessingAttempt) (models.EnforcementDecision, error) {
	if err := s.ready(); err != nil {
		return models.EnforcementDecision{}, err
	}
	return s.engine.AttemptProcessing(ctx, subjectID, attempt)
}

// PersonalData is the system of record as seen through erasures: erased
// subjects and categories are never returned.
func (s *Service) PersonalData() ports.PersonalDataStore {
	return &erasureAwareStore{next: s.personalData, erasures: s.stores.Erasures}
}
