// internal/models/responses.go
package models

// MessageResponse is the success body for signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthStatus is the body served by the health and readiness probes.
type HealthStatus struct {
	Status string `json:"status"`
	Time   string `json:"time,omitempty"`
}
