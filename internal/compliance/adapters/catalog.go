package adapters

import (
	"context"
	"maps"
	"slices"

	"custodian/internal/compliance/models"
)

// StaticCatalog serves the controller's record of processing activities,
// which is the same for every subject.
type StaticCatalog struct{}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{}
}

var (
	catalogPurposes = []string{
		"service-provision",
		"account-management",
		"fraud-prevention",
		"marketing",
		"analytics",
	}
	catalogLegalBasis = map[string]string{
		"service-provision":  "contract",
		"account-management": "contract",
		"fraud-prevention":   "legitimate-interests",
		"marketing":          "consent",
		"analytics":          "legitimate-interests",
	}
	catalogRetention = map[string]string{
		models.CategoryIdentity:    "duration of contract plus 6 years",
		models.CategoryContact:     "duration of contract plus 1 year",
		models.CategoryPreferences: "duration of contract",
		models.CategoryMarketing:   "until consent is withdrawn",
		models.CategoryAnalytics:   "26 months",
		models.CategoryUsage:       "13 months",
	}
	catalogErasureCriteria = []string{
		"data no longer necessary for the purpose collected",
		"consent withdrawn and no other legal basis",
		"objection upheld with no overriding legitimate grounds",
		"processing found unlawful",
	}
	catalogRecipients = []models.Recipient{
		{Name: "payments-provider", Purpose: "payment processing", Country: "IE"},
		{Name: "email-service", Purpose: "transactional email", Country: "US"},
		{Name: "analytics-vendor", Purpose: "product analytics", Country: "DE"},
	}
	catalogSafeguards = []string{
		"standard contractual clauses",
		"encryption in transit and at rest",
		"role-based access control",
	}
)

func (StaticCatalog) PurposesFor(context.Context, string) ([]string, error) {
	return slices.Clone(catalogPurposes), nil
}

func (StaticCatalog) LegalBasisFor(context.Context, string) (map[string]string, error) {
	return maps.Clone(catalogLegalBasis), nil
}

func (StaticCatalog) RetentionPeriodsFor(context.Context, string) (map[string]string, error) {
	return maps.Clone(catalogRetention), nil
}

func (StaticCatalog) ErasureCriteriaFor(context.Context, string) ([]string, error) {
	return slices.Clone(catalogErasureCriteria), nil
}

func (StaticCatalog) ThirdPartyRecipientsFor(context.Context, string) ([]models.Recipient, error) {
	return slices.Clone(catalogRecipients), nil
}

func (StaticCatalog) SafeguardsFor(context.Context, string) ([]string, error) {
	return slices.Clone(catalogSafeguards), nil
}
