package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user id
	ContextKeyUserID = "user_id"

	// BearerScheme prefixes the token in the Authorization header
	BearerScheme = "Bearer"

	// MaxSuggestedSubtasks caps how many subtasks an AI suggestion may return
	MaxSuggestedSubtasks = 10
)
