package middleware

import (
	"net/http"
	"time"

	"github.com/MikeBarney88/golf-club-api/audit"
	"github.com/MikeBarney88/golf-club-api/monitoring"
)

// AuditLogger emits management events for write operations
type AuditLogger struct {
	publisher audit.Publisher
}

// NewAuditLogger wraps the publisher; a nil publisher disables auditing
func NewAuditLogger(publisher audit.Publisher) *AuditLogger {
	if publisher == nil {
		publisher = audit.NoopPublisher{}
	}
	return &AuditLogger{publisher: publisher}
}

// LogAuditEvent records a write against a member or tournament. Reads are never audited.
func (a *AuditLogger) LogAuditEvent(r *http.Request, resource, resourceID, action, status string) {
	if a == nil || !a.publisher.IsEnabled() || !isWriteOperation(r.Method) {
		return
	}

	a.publisher.LogEvent(r.Context(), &audit.Event{
		TraceID:    monitoring.GetTraceIDFromContext(r.Context()),
		Timestamp:  time.Now().UTC(),
		Action:     action,
		Status:     status,
		Resource:   resource,
		ResourceID: resourceID,
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
	})
}

// ActionForMethod maps an HTTP method to the CREATE/UPDATE/DELETE management action
func ActionForMethod(method string) string {
	switch method {
	case http.MethodPost:
		return audit.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return audit.ActionUpdate
	case http.MethodDelete:
		return audit.ActionDelete
	default:
		return ""
	}
}

func isWriteOperation(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch || method == http.MethodDelete
}
