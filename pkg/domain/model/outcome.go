package model

import "fmt"

// OutcomeKind classifies a delivery attempt
type OutcomeKind string

const (
	OutcomeDelivered OutcomeKind = "delivered"
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomeFailed    OutcomeKind = "failed"
)

// DeliveryOutcome is the result of handling one run. It is for logging and
// metrics only and is never turned into an error for the host.
type DeliveryOutcome struct {
	Kind       OutcomeKind
	StatusCode int    // set for OutcomeDelivered
	Reason     string // skip reason or failure cause
}

// Delivered creates an outcome for a 2xx response
func Delivered(statusCode int) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeDelivered, StatusCode: statusCode}
}

// Skipped creates an outcome for a run that was not sent
func Skipped(reason string) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeSkipped, Reason: reason}
}

// Failed creates an outcome for a failed send
func Failed(cause string) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeFailed, Reason: cause}
}

func (o DeliveryOutcome) String() string {
	switch o.Kind {
	case OutcomeDelivered:
		return fmt.Sprintf("delivered (%d)", o.StatusCode)
	case OutcomeSkipped:
		return "skipped: " + o.Reason
	case OutcomeFailed:
		return "failed: " + o.Reason
	default:
		return string(o.Kind)
	}
}

// Skip reasons shared by the orchestrator and the delivery client
const (
	ReasonNotConfigured      = "not configured"
	ReasonCredentialsMissing = "credentials not found"
	ReasonFiltered           = "filtered out"
	ReasonNotSuccess         = "result is not success"
)
