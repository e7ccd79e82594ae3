package audit

import "time"

// Event actions for management events
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionAddMember    = "ADD_PARTICIPANT"
	ActionRemoveMember = "REMOVE_PARTICIPANT"
)

// Event statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Event is a management event describing one write against a member or tournament
type Event struct {
	TraceID    string    `json:"traceId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	RemoteAddr string    `json:"remoteAddr,omitempty"`
}

// Values flattens the event into stream fields
func (e *Event) Values() map[string]interface{} {
	values := map[string]interface{}{
		"timestamp": e.Timestamp.UTC().Format(time.RFC3339Nano),
		"action":    e.Action,
		"status":    e.Status,
		"resource":  e.Resource,
		"method":    e.Method,
		"path":      e.Path,
	}
	if e.TraceID != "" {
		values["traceId"] = e.TraceID
	}
	if e.ResourceID != "" {
		values["resourceId"] = e.ResourceID
	}
	if e.RemoteAddr != "" {
		values["remoteAddr"] = e.RemoteAddr
	}
	return values
}
