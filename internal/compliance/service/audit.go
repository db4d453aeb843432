package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

const auditTrailEntity = "audit-trail"

// GetAuditLog returns the events matching filter in append order.
func (s *Service) GetAuditLog(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	events, err := s.auditor.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	return events, nil
}

// VerifyAuditTrail walks the whole trail and reports any chain break. The
// verification itself is recorded after the walk.
func (s *Service) VerifyAuditTrail(ctx context.Context) (audit.ChainReport, error) {
	if err := s.ready(); err != nil {
		return audit.ChainReport{}, err
	}
	events, err := s.auditor.Query(ctx, audit.Filter{})
	if err != nil {
		return audit.ChainReport{}, fmt.Errorf("query audit log: %w", err)
	}
	report := audit.VerifyChain(events)

	_, err = s.record(ctx, audit.Event{
		EntityType: "audit",
		EntityID:   auditTrailEntity,
		UserID:     requestcontext.ActorID(ctx),
		RequestID:  requestcontext.RequestID(ctx),
		Success:    true,
	}, string(audit.EventChainVerified), uuid.Nil, map[string]any{
		"valid":          report.Valid,
		"eventsVerified": report.EventsVerified,
		"breaks":         len(report.Breaks),
	})
	if err != nil {
		return audit.ChainReport{}, fmt.Errorf("record chain verification: %w", err)
	}
	if !report.Valid && s.logger != nil {
		s.logger.ErrorContext(ctx, "audit chain verification failed",
			"events_verified", report.EventsVerified,
			"breaks", len(report.Breaks),
		)
	}
	return report, nil
}
