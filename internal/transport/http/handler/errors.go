package handler

const (
	errInternalServer     = "Internal server error"
	errThoughtNotFound    = "Thought not found"
	errInvalidID          = "Invalid ID format"
	errDuplicateUser      = "Username or email already exists"
	errInvalidCredentials = "Invalid email or password"
	errEditNotOwner       = "You can only edit your own thoughts"
	errDeleteNotOwner     = "You can only delete your own thoughts"
)
