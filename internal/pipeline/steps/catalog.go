package steps

import (
	"sync"

	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/llm"
	t "github.com/jonathan/launch-orchestrator/internal/types"
)

func task(category string, output t.Field, routine generation.Routine, prereqs ...t.Field) Definition {
	return Definition{
		ID:            TaskID(output),
		Category:      category,
		Prerequisites: prereqs,
		Output:        output,
		Generate:      routine,
	}
}

// Catalog returns the production task definitions in pipeline order.
func Catalog() []Definition {
	return []Definition{
		task(CategoryIdeation, t.FieldBrainstormResult,
			generation.JSON[t.BrainstormResult](t.FieldBrainstormResult, llm.TierStandard)),
		task(CategoryResearch, t.FieldMarketPulse,
			generation.Researched[t.MarketPulse](t.FieldMarketPulse, llm.TierStandard, false),
			t.FieldBrainstormResult),
		task(CategoryStrategy, t.FieldMissionVision,
			generation.JSON[t.MissionVision](t.FieldMissionVision, llm.TierLite),
			t.FieldBrainstormResult),
		task(CategoryStrategy, t.FieldBrandIdentity,
			generation.JSON[t.BrandIdentity](t.FieldBrandIdentity, llm.TierStandard),
			t.FieldBrainstormResult, t.FieldMissionVision),
		task(CategoryIdeation, t.FieldScorecard,
			generation.JSON[t.Scorecard](t.FieldScorecard, llm.TierStandard),
			t.FieldBrainstormResult, t.FieldMarketPulse),
		task(CategoryStrategy, t.FieldBusinessPlan,
			generation.JSON[t.BusinessPlan](t.FieldBusinessPlan, llm.TierAdvanced),
			t.FieldBrainstormResult, t.FieldMarketPulse, t.FieldMissionVision, t.FieldBrandIdentity),
		task(CategoryFundraising, t.FieldPitchDeck,
			generation.JSON[t.PitchDeck](t.FieldPitchDeck, llm.TierAdvanced),
			t.FieldBusinessPlan, t.FieldBrandIdentity),
		task(CategoryResearch, t.FieldMarketResearch,
			generation.Researched[t.MarketResearch](t.FieldMarketResearch, llm.TierStandard, false),
			t.FieldBrainstormResult, t.FieldMarketPulse),
		task(CategoryResearch, t.FieldCompetitorMatrix,
			generation.Researched[t.CompetitorMatrix](t.FieldCompetitorMatrix, llm.TierStandard, true),
			t.FieldMarketResearch),
		task(CategoryCustomer, t.FieldCustomerPersonas,
			generation.JSON[t.CustomerPersonas](t.FieldCustomerPersonas, llm.TierStandard),
			t.FieldBrainstormResult, t.FieldMarketResearch),
		task(CategoryCustomer, t.FieldInterviewScripts,
			generation.JSON[t.InterviewScripts](t.FieldInterviewScripts, llm.TierLite),
			t.FieldCustomerPersonas),
		task(CategoryCustomer, t.FieldCustomerValidation,
			generation.JSON[t.CustomerValidation](t.FieldCustomerValidation, llm.TierStandard),
			t.FieldCustomerPersonas, t.FieldInterviewScripts),
		task(CategoryStrategy, t.FieldMentorFeedback,
			generation.JSON[t.MentorFeedback](t.FieldMentorFeedback, llm.TierAdvanced),
			t.FieldBusinessPlan, t.FieldCustomerValidation),
		task(CategoryProduct, t.FieldUserFlow,
			generation.JSON[t.UserFlow](t.FieldUserFlow, llm.TierStandard),
			t.FieldCustomerPersonas, t.FieldBrainstormResult),
		task(CategoryProduct, t.FieldWireframe,
			generation.JSON[t.Wireframe](t.FieldWireframe, llm.TierStandard),
			t.FieldUserFlow),
		task(CategoryProduct, t.FieldWebsitePrototype,
			generation.JSON[t.WebsitePrototype](t.FieldWebsitePrototype, llm.TierAdvanced),
			t.FieldWireframe, t.FieldBrandIdentity),
		task(CategoryEngineering, t.FieldTechStack,
			generation.JSON[t.TechStack](t.FieldTechStack, llm.TierStandard),
			t.FieldBrainstormResult, t.FieldUserFlow),
		task(CategoryEngineering, t.FieldDatabaseSchema,
			generation.JSON[t.DatabaseSchema](t.FieldDatabaseSchema, llm.TierStandard),
			t.FieldTechStack),
		task(CategoryEngineering, t.FieldAPIEndpoints,
			generation.JSON[t.APIEndpoints](t.FieldAPIEndpoints, llm.TierStandard),
			t.FieldDatabaseSchema),
		task(CategoryEngineering, t.FieldDevelopmentRoadmap,
			generation.JSON[t.DevelopmentRoadmap](t.FieldDevelopmentRoadmap, llm.TierAdvanced),
			t.FieldTechStack, t.FieldAPIEndpoints),
		task(CategoryOperations, t.FieldCostEstimate,
			generation.JSON[t.CostEstimate](t.FieldCostEstimate, llm.TierStandard),
			t.FieldDevelopmentRoadmap, t.FieldTechStack),
		task(CategoryStrategy, t.FieldPricingStrategy,
			generation.JSON[t.PricingStrategy](t.FieldPricingStrategy, llm.TierStandard),
			t.FieldCostEstimate, t.FieldCompetitorMatrix, t.FieldCustomerPersonas),
		task(CategoryLaunch, t.FieldMarketingCopy,
			generation.JSON[t.MarketingCopy](t.FieldMarketingCopy, llm.TierStandard),
			t.FieldBrandIdentity, t.FieldCustomerPersonas),
		task(CategoryLaunch, t.FieldWaitlistPage,
			generation.JSON[t.WaitlistPage](t.FieldWaitlistPage, llm.TierStandard),
			t.FieldMarketingCopy, t.FieldBrandIdentity),
		task(CategoryLaunch, t.FieldProductHuntKit,
			generation.JSON[t.ProductHuntKit](t.FieldProductHuntKit, llm.TierLite),
			t.FieldMarketingCopy, t.FieldPitchDeck),
		task(CategoryLaunch, t.FieldPressRelease,
			generation.JSON[t.PressRelease](t.FieldPressRelease, llm.TierStandard),
			t.FieldMissionVision, t.FieldMarketingCopy),
		task(CategoryGrowth, t.FieldGrowthMetrics,
			generation.JSON[t.GrowthMetrics](t.FieldGrowthMetrics, llm.TierStandard),
			t.FieldBusinessPlan, t.FieldPricingStrategy),
		task(CategoryGrowth, t.FieldABTestIdeas,
			generation.JSON[t.ABTestIdeas](t.FieldABTestIdeas, llm.TierLite),
			t.FieldWaitlistPage, t.FieldGrowthMetrics),
		task(CategoryGrowth, t.FieldSEOStrategy,
			generation.JSON[t.SEOStrategy](t.FieldSEOStrategy, llm.TierLite),
			t.FieldMarketResearch, t.FieldMarketingCopy),
		task(CategoryOperations, t.FieldProcessAutomation,
			generation.JSON[t.ProcessAutomation](t.FieldProcessAutomation, llm.TierLite),
			t.FieldBusinessPlan, t.FieldTechStack),
		task(CategoryOperations, t.FieldJobDescriptions,
			generation.JSON[t.JobDescriptions](t.FieldJobDescriptions, llm.TierStandard),
			t.FieldDevelopmentRoadmap, t.FieldMissionVision),
		task(CategoryFundraising, t.FieldInvestorMatching,
			generation.Researched[t.InvestorMatching](t.FieldInvestorMatching, llm.TierStandard, true),
			t.FieldPitchDeck, t.FieldMarketResearch),
		task(CategoryFundraising, t.FieldDueDiligenceChecklist,
			generation.JSON[t.DueDiligenceChecklist](t.FieldDueDiligenceChecklist, llm.TierLite),
			t.FieldBusinessPlan, t.FieldCostEstimate),
		task(CategoryFundraising, t.FieldPitchCoachAnalysis,
			generation.JSON[t.PitchCoachAnalysis](t.FieldPitchCoachAnalysis, llm.TierAdvanced),
			t.FieldPitchDeck),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the production registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = MustRegistry(Catalog()...)
	})
	return defaultRegistry
}
