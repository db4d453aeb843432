package e2e

import (
	"github.com/cucumber/godog"

	"custodian/e2e/steps/common"
	"custodian/e2e/steps/rights"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	// Data subject rights and enforcement
	rights.RegisterSteps(ctx, tc)
}
