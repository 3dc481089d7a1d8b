package cmctypes

// Service is the lifecycle contract for registry-managed services.
// Services are registered at startup and initialized in one pass after
// the session context exists.
type Service interface {
	// Name returns the unique service name used for registry lookup.
	Name() string

	// Initialize prepares the service for use. It may resolve other
	// services and the global session context.
	Initialize() error
}

// Result is the structured outcome the router hands back to the session
// for every segment, recognized or not.
type Result struct {
	Recognized bool
	Command    string // matched command name, empty when unrecognized
	Err        error  // nil on success
}
