// Package types provides type definitions for the artifacts produced by the launch pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Field names an artifact slot on a startup record. Each pipeline task writes exactly one field.
type Field string

// Artifact fields, in pipeline order.
const (
	FieldBrainstormResult      Field = "brainstormResult"
	FieldMarketPulse           Field = "marketPulse"
	FieldMissionVision         Field = "missionVision"
	FieldBrandIdentity         Field = "brandIdentity"
	FieldScorecard             Field = "scorecard"
	FieldBusinessPlan          Field = "businessPlan"
	FieldPitchDeck             Field = "pitchDeck"
	FieldMarketResearch        Field = "marketResearch"
	FieldCompetitorMatrix      Field = "competitorMatrix"
	FieldCustomerPersonas      Field = "customerPersonas"
	FieldInterviewScripts      Field = "interviewScripts"
	FieldCustomerValidation    Field = "customerValidation"
	FieldMentorFeedback        Field = "mentorFeedback"
	FieldUserFlow              Field = "userFlow"
	FieldWireframe             Field = "wireframe"
	FieldWebsitePrototype      Field = "websitePrototype"
	FieldTechStack             Field = "techStack"
	FieldDatabaseSchema        Field = "databaseSchema"
	FieldAPIEndpoints          Field = "apiEndpoints"
	FieldDevelopmentRoadmap    Field = "developmentRoadmap"
	FieldCostEstimate          Field = "costEstimate"
	FieldPricingStrategy       Field = "pricingStrategy"
	FieldMarketingCopy         Field = "marketingCopy"
	FieldWaitlistPage          Field = "waitlistPage"
	FieldProductHuntKit        Field = "productHuntKit"
	FieldPressRelease          Field = "pressRelease"
	FieldGrowthMetrics         Field = "growthMetrics"
	FieldABTestIdeas           Field = "abTestIdeas"
	FieldSEOStrategy           Field = "seoStrategy"
	FieldProcessAutomation     Field = "processAutomation"
	FieldJobDescriptions       Field = "jobDescriptions"
	FieldInvestorMatching      Field = "investorMatching"
	FieldDueDiligenceChecklist Field = "dueDiligenceChecklist"
	FieldPitchCoachAnalysis    Field = "pitchCoachAnalysis"
)

// AllFields lists every artifact field in pipeline order.
var AllFields = []Field{
	FieldBrainstormResult,
	FieldMarketPulse,
	FieldMissionVision,
	FieldBrandIdentity,
	FieldScorecard,
	FieldBusinessPlan,
	FieldPitchDeck,
	FieldMarketResearch,
	FieldCompetitorMatrix,
	FieldCustomerPersonas,
	FieldInterviewScripts,
	FieldCustomerValidation,
	FieldMentorFeedback,
	FieldUserFlow,
	FieldWireframe,
	FieldWebsitePrototype,
	FieldTechStack,
	FieldDatabaseSchema,
	FieldAPIEndpoints,
	FieldDevelopmentRoadmap,
	FieldCostEstimate,
	FieldPricingStrategy,
	FieldMarketingCopy,
	FieldWaitlistPage,
	FieldProductHuntKit,
	FieldPressRelease,
	FieldGrowthMetrics,
	FieldABTestIdeas,
	FieldSEOStrategy,
	FieldProcessAutomation,
	FieldJobDescriptions,
	FieldInvestorMatching,
	FieldDueDiligenceChecklist,
	FieldPitchCoachAnalysis,
}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

// FieldNames converts a list of fields to plain strings (for error messages and JSON).
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
