package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"custodian/internal/compliance/models"
)

type ValidatorSuite struct {
	suite.Suite
	v *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.v = New()
}

func (s *ValidatorSuite) TestIdentity() {
	for _, id := range []string{"", "   ", "invalid-id", "non-existent-id", "unknown-subject"} {
		res := s.v.ValidateIdentity(id)
		s.False(res.Valid, "id %q", id)
		s.Equal([]string{MsgSubjectNotFound}, res.Errors)
	}
	s.True(s.v.ValidateIdentity("subject-123").Valid)
}

func (s *ValidatorSuite) TestErasure() {
	s.Run("valid", func() {
		res := s.v.ValidateErasure(models.ErasureRequest{
			DataSubjectID: "s1", Reason: models.ErasureWithdrawalOfConsent, Evidence: "signed form",
		})
		s.True(res.Valid)
		s.Empty(res.Errors)
	})
	s.Run("missing evidence and bad ground", func() {
		res := s.v.ValidateErasure(models.ErasureRequest{DataSubjectID: "s1", Reason: "because"})
		s.False(res.Valid)
		s.Equal([]string{MsgErasureEvidence, MsgErasureGround}, res.Errors)
	})
	s.Run("whitespace evidence", func() {
		res := s.v.ValidateErasure(models.ErasureRequest{
			DataSubjectID: "s1", Reason: models.ErasurePublicInterest, Evidence: "  ",
		})
		s.Equal([]string{MsgErasureEvidence}, res.Errors)
	})
}

func (s *ValidatorSuite) TestRestriction() {
	for _, ground := range models.RestrictionGrounds {
		res := s.v.ValidateRestriction(models.RestrictionRequest{DataSubjectID: "s1", Reason: ground, Evidence: "x"})
		s.True(res.Valid, ground)
	}
	res := s.v.ValidateRestriction(models.RestrictionRequest{DataSubjectID: "s1", Reason: "invalid-ground", Evidence: "x"})
	s.False(res.Valid)
	s.Equal([]string{MsgRestrictionGround}, res.Errors)
}

func (s *ValidatorSuite) TestRectification() {
	s.Run("partial field errors keep request valid", func() {
		res := s.v.ValidateRectification(models.RectificationRequest{
			DataSubjectID: "s1",
			Evidence:      "passport",
			Corrections:   map[string]any{"email": "not-an-email", "name": "Jane Doe"},
		})
		s.True(res.Valid)
		s.Equal(map[string]string{"email": MsgInvalidEmail}, res.FieldErrors)
	})
	s.Run("every field rejected invalidates the request", func() {
		res := s.v.ValidateRectification(models.RectificationRequest{
			DataSubjectID: "s1",
			Evidence:      "passport",
			Corrections:   map[string]any{"shoeSize": 44},
		})
		s.False(res.Valid)
		s.Equal([]string{"Unknown field: shoeSize"}, res.Errors)
	})
	s.Run("empty corrections", func() {
		res := s.v.ValidateRectification(models.RectificationRequest{DataSubjectID: "s1"})
		s.False(res.Valid)
		s.Equal([]string{MsgRectificationEvidence, MsgCorrectionsRequired}, res.Errors)
	})
	s.Run("non-string email", func() {
		res := s.v.ValidateRectification(models.RectificationRequest{
			DataSubjectID: "s1", Evidence: "x", Corrections: map[string]any{"email": 42, "city": "Paris"},
		})
		s.True(res.Valid)
		s.Contains(res.FieldErrors, "email")
	})
}

func (s *ValidatorSuite) TestObjection() {
	res := s.v.ValidateObjection(models.ObjectionRequest{DataSubjectID: "s1", ObjectionType: models.ObjectionDirectMarketing, Reason: "spam"})
	s.True(res.Valid)

	res = s.v.ValidateObjection(models.ObjectionRequest{DataSubjectID: "s1", ObjectionType: "dislike"})
	s.Equal([]string{MsgObjectionReason, MsgObjectionType}, res.Errors)
}

func (s *ValidatorSuite) TestPortabilityAndAccess() {
	for _, f := range models.ExportFormats {
		s.True(s.v.ValidatePortability(models.PortabilityRequest{DataSubjectID: "s1", Format: f}).Valid)
	}
	s.Equal([]string{MsgPortabilityFormat}, s.v.ValidatePortability(models.PortabilityRequest{Format: "YAML"}).Errors)
	s.True(s.v.ValidateAccess(models.AccessRequest{DataSubjectID: "s1"}).Valid)
	s.False(s.v.ValidateAccess(models.AccessRequest{DataSubjectID: "s1", Format: "json"}).Valid)
}

func (s *ValidatorSuite) TestAutomatedDecision() {
	res := s.v.ValidateAutomatedDecision(models.AutomatedDecisionRequest{
		DecisionType: models.DecisionCreditScoring, RequestType: models.DecisionRequestExplanation,
	})
	s.True(res.Valid)

	res = s.v.ValidateAutomatedDecision(models.AutomatedDecisionRequest{DecisionType: "astrology", RequestType: "appeal"})
	s.Equal([]string{MsgDecisionType, MsgDecisionRequestType}, res.Errors)
}

func (s *ValidatorSuite) TestPHI() {
	s.True(s.v.ValidatePHI(models.PHIRequest{PatientID: "p1", RequestType: models.PHIDisclosure}).Valid)
	s.Equal([]string{MsgPHIRequestType}, s.v.ValidatePHI(models.PHIRequest{PatientID: "p1", RequestType: "sale"}).Errors)
}

func TestFieldErrorList(t *testing.T) {
	got := FieldErrorList(map[string]string{
		"email":    MsgInvalidEmail,
		"name":     "name must not be blank",
		"shoeSize": "Unknown field: shoeSize",
	})
	assert.Equal(t, []string{
		"email: Invalid email format",
		"name: name must not be blank",
		"Unknown field: shoeSize",
	}, got)

	res := New().ValidateRectification(models.RectificationRequest{
		DataSubjectID: "s1",
		Evidence:      "passport scan",
		Corrections:   map[string]any{"email": "no-at-sign", "shoeSize": 44},
	})
	assert.Equal(t, []string{"email: Invalid email format", "Unknown field: shoeSize"}, FieldErrorList(res.FieldErrors))
}
