package model

import "time"

// Notification is a run-completed notification received from the CI host
type Notification struct {
	ID         string    // Generated on receipt, used for log correlation
	ReceivedAt time.Time // Time when the notification was received
	Run        *Run
}
