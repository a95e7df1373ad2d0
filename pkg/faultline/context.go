// context.go propagates report annotations through Go context.Context.

package faultline

import "context"

// Context key types (unexported to avoid collisions)
type componentKey struct{}
type severityKey struct{}

// WithComponent returns a context with the reporting component attached.
// Notices recorded under this context carry it as context["component"].
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey{}, component)
}

// ComponentFromContext extracts the reporting component from context.
// Returns empty string and false if not set or empty.
func ComponentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(componentKey{})
	component, ok := v.(string)
	return component, ok && component != ""
}

// WithSeverity returns a context with a default severity attached.
// The collector applies it to notices recorded without an explicit severity.
func WithSeverity(ctx context.Context, severity Severity) context.Context {
	return context.WithValue(ctx, severityKey{}, severity)
}

// SeverityFromContext extracts the default severity from context.
// Returns empty severity and false if not set.
func SeverityFromContext(ctx context.Context) (Severity, bool) {
	v := ctx.Value(severityKey{})
	severity, ok := v.(Severity)
	return severity, ok && severity != ""
}
