package constants

// Pagination bounds for the admin registration list.
const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)
