//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// artifactFactories maps every artifact field to a constructor for its typed variant.
var artifactFactories = map[Field]func() any{
	FieldBrainstormResult:      func() any { return &BrainstormResult{} },
	FieldMarketPulse:           func() any { return &MarketPulse{} },
	FieldMissionVision:         func() any { return &MissionVision{} },
	FieldBrandIdentity:         func() any { return &BrandIdentity{} },
	FieldScorecard:             func() any { return &Scorecard{} },
	FieldBusinessPlan:          func() any { return &BusinessPlan{} },
	FieldPitchDeck:             func() any { return &PitchDeck{} },
	FieldMarketResearch:        func() any { return &MarketResearch{} },
	FieldCompetitorMatrix:      func() any { return &CompetitorMatrix{} },
	FieldCustomerPersonas:      func() any { return &CustomerPersonas{} },
	FieldInterviewScripts:      func() any { return &InterviewScripts{} },
	FieldCustomerValidation:    func() any { return &CustomerValidation{} },
	FieldMentorFeedback:        func() any { return &MentorFeedback{} },
	FieldUserFlow:              func() any { return &UserFlow{} },
	FieldWireframe:             func() any { return &Wireframe{} },
	FieldWebsitePrototype:      func() any { return &WebsitePrototype{} },
	FieldTechStack:             func() any { return &TechStack{} },
	FieldDatabaseSchema:        func() any { return &DatabaseSchema{} },
	FieldAPIEndpoints:          func() any { return &APIEndpoints{} },
	FieldDevelopmentRoadmap:    func() any { return &DevelopmentRoadmap{} },
	FieldCostEstimate:          func() any { return &CostEstimate{} },
	FieldPricingStrategy:       func() any { return &PricingStrategy{} },
	FieldMarketingCopy:         func() any { return &MarketingCopy{} },
	FieldWaitlistPage:          func() any { return &WaitlistPage{} },
	FieldProductHuntKit:        func() any { return &ProductHuntKit{} },
	FieldPressRelease:          func() any { return &PressRelease{} },
	FieldGrowthMetrics:         func() any { return &GrowthMetrics{} },
	FieldABTestIdeas:           func() any { return &ABTestIdeas{} },
	FieldSEOStrategy:           func() any { return &SEOStrategy{} },
	FieldProcessAutomation:     func() any { return &ProcessAutomation{} },
	FieldJobDescriptions:       func() any { return &JobDescriptions{} },
	FieldInvestorMatching:      func() any { return &InvestorMatching{} },
	FieldDueDiligenceChecklist: func() any { return &DueDiligenceChecklist{} },
	FieldPitchCoachAnalysis:    func() any { return &PitchCoachAnalysis{} },
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// UnknownFieldError is returned when a field has no registered artifact type.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown artifact field: %s", e.Field)
}

// ShapeError reports an artifact whose JSON does not match its typed variant.
type ShapeError struct {
	Field Field
	Cause error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid %s artifact: %v", e.Field, e.Cause)
}

func (e *ShapeError) Unwrap() error {
	return e.Cause
}

// IsKnownField reports whether the field has a registered artifact type.
func IsKnownField(field Field) bool {
	_, ok := artifactFactories[field]
	return ok
}

// NewArtifact returns a pointer to a zero value of the field's typed variant.
func NewArtifact(field Field) (any, error) {
	factory, ok := artifactFactories[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	return factory(), nil
}

// ValidateArtifact checks the struct tags of a typed artifact.
func ValidateArtifact(field Field, artifact any) error {
	if err := validatorInstance().Struct(artifact); err != nil {
		return &ShapeError{Field: field, Cause: err}
	}
	return nil
}

// DecodeArtifact parses serialized artifact content into its typed variant and validates its shape.
func DecodeArtifact(field Field, raw []byte) (any, error) {
	artifact, err := NewArtifact(field)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, artifact); err != nil {
		return nil, &ShapeError{Field: field, Cause: err}
	}
	if err := ValidateArtifact(field, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}
