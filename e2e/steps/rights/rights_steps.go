package rights

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
}

var subjectSeq atomic.Int64

// RegisterSteps registers rights-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &rightsSteps{tc: tc}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		steps.subject = fmt.Sprintf("e2e-%d-%d", time.Now().UnixNano(), subjectSeq.Add(1))
		return ctx, nil
	})

	ctx.Step(`^a fresh data subject$`, steps.freshSubject)
	ctx.Step(`^I request restriction of processing for "([^"]*)"$`, steps.requestRestriction)
	ctx.Step(`^I request erasure with reason "([^"]*)"$`, steps.requestErasure)
	ctx.Step(`^I object to "([^"]*)" processing$`, steps.object)
	ctx.Step(`^I request access to the subject's data$`, steps.requestAccess)
	ctx.Step(`^I lift the restriction because "([^"]*)"$`, steps.liftRestriction)
	ctx.Step(`^I withdraw the objection$`, steps.withdrawObjection)
	ctx.Step(`^processing "([^"]*)" is attempted on "([^"]*)"$`, steps.attemptProcessing)
	ctx.Step(`^I read the subject's compliance status$`, steps.readStatus)
	ctx.Step(`^I read the audit events for the subject$`, steps.readAuditEvents)
}

type rightsSteps struct {
	tc      TestContext
	subject string
}

func (s *rightsSteps) freshSubject(ctx context.Context) error {
	if s.subject == "" {
		return fmt.Errorf("subject was not assigned")
	}
	return nil
}

func (s *rightsSteps) right(name string, request map[string]any) error {
	request["dataSubjectId"] = s.subject
	return s.tc.POST("/v1/compliance/rights/"+name, map[string]any{"request": request})
}

func (s *rightsSteps) requestRestriction(ctx context.Context, reason string) error {
	return s.right("restriction", map[string]any{
		"reason":   reason,
		"evidence": "e2e evidence reference",
	})
}

func (s *rightsSteps) requestErasure(ctx context.Context, reason string) error {
	return s.right("erasure", map[string]any{
		"reason":   reason,
		"evidence": "e2e evidence reference",
	})
}

func (s *rightsSteps) object(ctx context.Context, objectionType string) error {
	return s.right("objection", map[string]any{
		"objectionType": objectionType,
		"reason":        "e2e objection grounds",
	})
}

func (s *rightsSteps) requestAccess(ctx context.Context) error {
	return s.right("access", map[string]any{"format": "json"})
}

func (s *rightsSteps) liftRestriction(ctx context.Context, reason string) error {
	return s.tc.POST("/v1/compliance/subjects/"+s.subject+"/restriction/lift", map[string]any{"reason": reason})
}

func (s *rightsSteps) withdrawObjection(ctx context.Context) error {
	return s.tc.POST("/v1/compliance/subjects/"+s.subject+"/objection/withdraw", nil)
}

func (s *rightsSteps) attemptProcessing(ctx context.Context, operation, categories string) error {
	return s.tc.POST("/v1/compliance/subjects/"+s.subject+"/processing-attempts", map[string]any{
		"operation":      operation,
		"dataCategories": strings.Split(categories, ","),
	})
}

func (s *rightsSteps) readStatus(ctx context.Context) error {
	return s.tc.GET("/v1/compliance/subjects/" + s.subject + "/status")
}

func (s *rightsSteps) readAuditEvents(ctx context.Context) error {
	return s.tc.GET("/v1/compliance/audit/events?entity_id=" + s.subject)
}
