package interfaces

// Repository defines the interface for session state persistence.
// Session state lives only as long as the process; backends are still
// placed behind this seam so one could be swapped in.
type Repository interface {
	Session() SessionRepository

	// Close releases any resources held by the backend
	Close() error
}
