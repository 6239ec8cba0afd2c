package enums

import "fmt"

// AnalyticsEventType is the canonical event_type for the local event log.
type AnalyticsEventType string

const (
	AnalyticsEventPaymentStarted    AnalyticsEventType = "payment_started"
	AnalyticsEventPaymentCompleted  AnalyticsEventType = "payment_completed"
	AnalyticsEventPaymentFailed     AnalyticsEventType = "payment_failed"
	AnalyticsEventResourceGenerated AnalyticsEventType = "resource_generated"
	AnalyticsEventGenerationError   AnalyticsEventType = "generation_error"
	AnalyticsEventFormAbandoned     AnalyticsEventType = "form_abandoned"
	AnalyticsEventEmailFailed       AnalyticsEventType = "email_failed"
	AnalyticsEventEmailSent         AnalyticsEventType = "email_sent"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventPaymentStarted,
	AnalyticsEventPaymentCompleted,
	AnalyticsEventPaymentFailed,
	AnalyticsEventResourceGenerated,
	AnalyticsEventGenerationError,
	AnalyticsEventFormAbandoned,
	AnalyticsEventEmailFailed,
	AnalyticsEventEmailSent,
}

// IsValid reports whether the value matches the canonical analytics event_type enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
