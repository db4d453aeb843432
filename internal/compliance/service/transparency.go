package service

import (
	"custodian/internal/compliance/models"
	"custodian/pkg/domain"
)

const defaultContactEmail = "dpo@example.com"

type transparencyText struct {
	description string
	timeline    string
	nextSteps   string
}

var transparencyTexts = map[domain.Right]transparencyText{
	domain.RightAccess: {
		description: "We collected the personal data we hold about you together with how and why it is processed.",
		timeline:    "Access requests are answered within one month of receipt.",
		nextSteps:   "Review the report and contact us if anything is inaccurate or incomplete.",
	},
	domain.RightRectification: {
		description: "We corrected the personal data you identified as inaccurate and propagated the correction to our systems.",
		timeline:    "Corrections take effect immediately; downstream systems are updated within 72 hours.",
		nextSteps:   "Check the corrected values. Fields we could not correct are listed with the reason.",
	},
	domain.RightErasure: {
		description: "We erased the personal data covered by your request, except where a legal exception requires retention.",
		timeline:    "Erasure takes effect immediately; backups expire under the standard rotation.",
		nextSteps:   "Retained categories and the exceptions that apply are listed in this response.",
	},
	domain.RightRestriction: {
		description: "We restricted processing of your personal data. It is stored but not otherwise used.",
		timeline:    "The restriction applies until the underlying issue is resolved; we will inform you before lifting it.",
		nextSteps:   "We will contact you when verification or review completes.",
	},
	domain.RightPortability: {
		description: "We exported the personal data you provided in a structured, machine-readable format.",
		timeline:    "Exports are produced immediately; direct transfers complete within one month.",
		nextSteps:   "Verify the export against the checksum before importing it elsewhere.",
	},
	domain.RightObjection: {
		description: "We recorded your objection and stopped the processing it covers unless compelling grounds apply.",
		timeline:    "Marketing objections take effect immediately; other objections are reviewed within 30 days.",
		nextSteps:   "We will inform you of the review outcome where a review is required.",
	},
	domain.RightAutomatedDecision: {
		description: "We recorded your request about a decision made by automated means and explained the logic involved.",
		timeline:    "Human review completes within 30 days; viewpoints are considered within 14 days.",
		nextSteps:   "You may appeal the outcome or complain to the supervisory authority.",
	},
	domain.RightPHI: {
		description: "We processed your request regarding your protected health information under the HIPAA Privacy Rule.",
		timeline:    "Requests are answered within 30 days; amendments within 60 days.",
		nextSteps:   "Contact our privacy officer with any questions about this response.",
	},
}

func transparencyFor(right domain.Right, contact string) models.Transparency {
	t := transparencyTexts[right]
	return models.Transparency{
		ProcessDescription: t.description,
		Timeline:           t.timeline,
		NextSteps:          t.nextSteps,
		ContactInformation: contact,
	}
}
