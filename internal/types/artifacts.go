//nolint:revive // types is a standard Go package name pattern
package types

// BrainstormResult refines the raw idea into a problem/solution statement.
type BrainstormResult struct {
	Problem         string   `json:"problem" validate:"required"`
	Solution        string   `json:"solution" validate:"required"`
	TargetAudience  string   `json:"target_audience" validate:"required"`
	Differentiators []string `json:"differentiators" validate:"min=1"`
	Risks           []string `json:"risks,omitempty"`
}

// Citation is a source a research artifact is grounded on.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url" validate:"required"`
	Snippet string `json:"snippet,omitempty"`
}

// MarketPulse summarizes current market signals for the idea.
type MarketPulse struct {
	Trends    []string   `json:"trends" validate:"min=1"`
	Sentiment string     `json:"sentiment" validate:"required"`
	Signals   []string   `json:"signals,omitempty"`
	Sources   []Citation `json:"sources,omitempty" validate:"dive"`
}

// MissionVision holds the mission and vision statements.
type MissionVision struct {
	Mission string   `json:"mission" validate:"required"`
	Vision  string   `json:"vision" validate:"required"`
	Values  []string `json:"values,omitempty"`
}

// BrandIdentity describes naming, voice, and visual direction.
type BrandIdentity struct {
	Tagline  string   `json:"tagline" validate:"required"`
	Voice    string   `json:"voice" validate:"required"`
	Colors   []string `json:"colors,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// ScoreItem is one scored dimension.
type ScoreItem struct {
	Dimension string `json:"dimension" validate:"required"`
	Score     int    `json:"score" validate:"gte=0,lte=10"`
	Rationale string `json:"rationale,omitempty"`
}

// Scorecard is a self-assessment of the idea across dimensions.
type Scorecard struct {
	Overall int         `json:"overall" validate:"gte=0,lte=100"`
	Items   []ScoreItem `json:"items" validate:"min=1,dive"`
}

// Section is a titled block of prose used by document-like artifacts.
type Section struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// BusinessPlan is the full business plan document.
type BusinessPlan struct {
	ExecutiveSummary string    `json:"executive_summary" validate:"required"`
	Sections         []Section `json:"sections" validate:"min=1,dive"`
}

// PitchDeck is an ordered list of slides.
type PitchDeck struct {
	Slides []Section `json:"slides" validate:"min=1,dive"`
}

// MarketResearch sizes the market.
type MarketResearch struct {
	TAM      string     `json:"tam" validate:"required"`
	SAM      string     `json:"sam" validate:"required"`
	SOM      string     `json:"som" validate:"required"`
	Segments []string   `json:"segments,omitempty"`
	Sources  []Citation `json:"sources,omitempty" validate:"dive"`
}

// Competitor is one row of the competitor matrix.
type Competitor struct {
	Name       string   `json:"name" validate:"required"`
	URL        string   `json:"url,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// CompetitorMatrix compares the startup against competitors.
type CompetitorMatrix struct {
	Competitors []Competitor `json:"competitors" validate:"min=1,dive"`
	Positioning string       `json:"positioning" validate:"required"`
}

// Persona is one customer persona.
type Persona struct {
	Name       string   `json:"name" validate:"required"`
	Role       string   `json:"role,omitempty"`
	Goals      []string `json:"goals,omitempty"`
	PainPoints []string `json:"pain_points,omitempty"`
}

// CustomerPersonas lists the target personas.
type CustomerPersonas struct {
	Personas []Persona `json:"personas" validate:"min=1,dive"`
}

// InterviewScript is a script for one persona.
type InterviewScript struct {
	Persona   string   `json:"persona" validate:"required"`
	Questions []string `json:"questions" validate:"min=1"`
}

// InterviewScripts holds customer discovery scripts.
type InterviewScripts struct {
	Scripts []InterviewScript `json:"scripts" validate:"min=1,dive"`
}

// CustomerValidation records hypotheses and how to validate them.
type CustomerValidation struct {
	Hypotheses  []string `json:"hypotheses" validate:"min=1"`
	Experiments []string `json:"experiments,omitempty"`
	Verdict     string   `json:"verdict" validate:"required"`
}

// MentorFeedback is simulated mentor review.
type MentorFeedback struct {
	Strengths       []string `json:"strengths" validate:"min=1"`
	Concerns        []string `json:"concerns,omitempty"`
	Recommendations []string `json:"recommendations" validate:"min=1"`
}

// FlowStep is one step of a user flow.
type FlowStep struct {
	Screen string `json:"screen" validate:"required"`
	Action string `json:"action" validate:"required"`
}

// UserFlow describes the primary user journey.
type UserFlow struct {
	Steps []FlowStep `json:"steps" validate:"min=1,dive"`
}

// Screen is a wireframed screen.
type Screen struct {
	Name       string   `json:"name" validate:"required"`
	Components []string `json:"components" validate:"min=1"`
}

// Wireframe lists the wireframed screens.
type Wireframe struct {
	Screens []Screen `json:"screens" validate:"min=1,dive"`
}

// WebsitePrototype holds generated landing page markup.
type WebsitePrototype struct {
	HTML  string `json:"html" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

// TechChoice is one layer of the tech stack.
type TechChoice struct {
	Layer      string `json:"layer" validate:"required"`
	Technology string `json:"technology" validate:"required"`
	Reason     string `json:"reason,omitempty"`
}

// TechStack lists technology choices.
type TechStack struct {
	Choices []TechChoice `json:"choices" validate:"min=1,dive"`
}

// Table is a database table definition.
type Table struct {
	Name    string   `json:"name" validate:"required"`
	Columns []string `json:"columns" validate:"min=1"`
}

// DatabaseSchema lists tables.
type DatabaseSchema struct {
	Tables []Table `json:"tables" validate:"min=1,dive"`
}

// Endpoint is one API endpoint.
type Endpoint struct {
	Method      string `json:"method" validate:"required"`
	Path        string `json:"path" validate:"required"`
	Description string `json:"description,omitempty"`
}

// APIEndpoints lists the API surface.
type APIEndpoints struct {
	Endpoints []Endpoint `json:"endpoints" validate:"min=1,dive"`
}

// Milestone is a roadmap milestone.
type Milestone struct {
	Name     string   `json:"name" validate:"required"`
	Weeks    int      `json:"weeks" validate:"gte=0"`
	Features []string `json:"features,omitempty"`
}

// DevelopmentRoadmap orders milestones.
type DevelopmentRoadmap struct {
	Milestones []Milestone `json:"milestones" validate:"min=1,dive"`
}

// CostItem is a line item of the cost estimate.
type CostItem struct {
	Item    string  `json:"item" validate:"required"`
	Monthly float64 `json:"monthly" validate:"gte=0"`
}

// CostEstimate totals expected costs.
type CostEstimate struct {
	Items        []CostItem `json:"items" validate:"min=1,dive"`
	MonthlyTotal float64    `json:"monthly_total" validate:"gte=0"`
	Currency     string     `json:"currency" validate:"required"`
}

// PricingTier is one pricing plan.
type PricingTier struct {
	Name     string   `json:"name" validate:"required"`
	Price    float64  `json:"price" validate:"gte=0"`
	Features []string `json:"features,omitempty"`
}

// PricingStrategy describes the pricing model.
type PricingStrategy struct {
	Model string        `json:"model" validate:"required"`
	Tiers []PricingTier `json:"tiers" validate:"min=1,dive"`
}

// MarketingCopy holds core marketing text.
type MarketingCopy struct {
	Headline    string   `json:"headline" validate:"required"`
	Subheadline string   `json:"subheadline,omitempty"`
	Body        string   `json:"body" validate:"required"`
	CTAs        []string `json:"ctas,omitempty"`
}

// WaitlistPage is a waitlist landing page.
type WaitlistPage struct {
	HTML     string `json:"html" validate:"required"`
	Headline string `json:"headline" validate:"required"`
}

// ProductHuntKit bundles launch assets.
type ProductHuntKit struct {
	Tagline      string `json:"tagline" validate:"required"`
	Description  string `json:"description" validate:"required"`
	FirstComment string `json:"first_comment,omitempty"`
}

// PressRelease is a launch press release.
type PressRelease struct {
	Headline string `json:"headline" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// Metric is a tracked growth metric.
type Metric struct {
	Name   string `json:"name" validate:"required"`
	Target string `json:"target,omitempty"`
}

// GrowthMetrics lists north-star and supporting metrics.
type GrowthMetrics struct {
	NorthStar string   `json:"north_star" validate:"required"`
	Metrics   []Metric `json:"metrics" validate:"min=1,dive"`
}

// Experiment is an A/B test idea.
type Experiment struct {
	Hypothesis string `json:"hypothesis" validate:"required"`
	Variant    string `json:"variant,omitempty"`
	Metric     string `json:"metric,omitempty"`
}

// ABTestIdeas lists experiments.
type ABTestIdeas struct {
	Experiments []Experiment `json:"experiments" validate:"min=1,dive"`
}

// SEOStrategy lists keywords and content plans.
type SEOStrategy struct {
	Keywords     []string `json:"keywords" validate:"min=1"`
	ContentIdeas []string `json:"content_ideas,omitempty"`
}

// Automation is one automatable process.
type Automation struct {
	Process string `json:"process" validate:"required"`
	Tool    string `json:"tool,omitempty"`
}

// ProcessAutomation lists automation opportunities.
type ProcessAutomation struct {
	Automations []Automation `json:"automations" validate:"min=1,dive"`
}

// JobDescription is one role to hire.
type JobDescription struct {
	Title            string   `json:"title" validate:"required"`
	Responsibilities []string `json:"responsibilities" validate:"min=1"`
}

// JobDescriptions lists roles.
type JobDescriptions struct {
	Roles []JobDescription `json:"roles" validate:"min=1,dive"`
}

// Investor is a matched investor.
type Investor struct {
	Name   string `json:"name" validate:"required"`
	Focus  string `json:"focus,omitempty"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// InvestorMatching lists candidate investors.
type InvestorMatching struct {
	Investors []Investor `json:"investors" validate:"min=1,dive"`
}

// ChecklistItem is one due diligence item.
type ChecklistItem struct {
	Category string `json:"category" validate:"required"`
	Item     string `json:"item" validate:"required"`
}

// DueDiligenceChecklist lists items investors will ask for.
type DueDiligenceChecklist struct {
	Items []ChecklistItem `json:"items" validate:"min=1,dive"`
}

// PitchCoachAnalysis critiques the pitch deck.
type PitchCoachAnalysis struct {
	Score       int      `json:"score" validate:"gte=0,lte=100"`
	Feedback    []string `json:"feedback" validate:"min=1"`
	Suggestions []string `json:"suggestions,omitempty"`
}
