package enums

import "fmt"

// AppStep is the intake session's position in the appeal flow.
type AppStep string

const (
	AppStepStart             AppStep = "START"
	AppStepUploading         AppStep = "UPLOADING"
	AppStepAnalyzing         AppStep = "ANALYZING"
	AppStepStrategySelection AppStep = "STRATEGY_SELECTION"
	AppStepUserInput         AppStep = "USER_INPUT"
	AppStepUserData          AppStep = "USER_DATA"
	AppStepPayment           AppStep = "PAYMENT"
	AppStepGenerating        AppStep = "GENERATING"
	AppStepFinalDocument     AppStep = "FINAL_DOCUMENT"
)

var validAppSteps = []AppStep{
	AppStepStart,
	AppStepUploading,
	AppStepAnalyzing,
	AppStepStrategySelection,
	AppStepUserInput,
	AppStepUserData,
	AppStepPayment,
	AppStepGenerating,
	AppStepFinalDocument,
}

// IsValid reports whether the value matches the canonical step enum.
func (s AppStep) IsValid() bool {
	for _, candidate := range validAppSteps {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAppStep converts the raw string to AppStep.
func ParseAppStep(value string) (AppStep, error) {
	for _, candidate := range validAppSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid app step %q", value)
}
