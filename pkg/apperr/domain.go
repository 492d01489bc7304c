package apperr

// Sentinel errors shared across services.
var (
	ErrHandleTaken         = AlreadyExists("handle is already taken")
	ErrUserNotFound        = NotFound("user not found")
	ErrBadCredentials      = InvalidArg("invalid credentials")
	ErrInvalidToken        = Unauthorized("invalid token")
	ErrInvalidQuery        = InvalidArg("query is required")
	ErrInvalidParticipants = InvalidArg("sender and receiver must be distinct, existing users")
	ErrSelfAcceptance      = InvalidArg("cannot accept your own request")
	ErrNoPrivateThread     = Forbidden("no message thread exists between these users")
	ErrNoConversation      = NotFound("no previous messages found")
	ErrGroupNotFound       = NotFound("group not found")
	ErrGroupNameTaken      = AlreadyExists("group name already exists")
	ErrNotGroupMember      = Forbidden("user is not a member of this group")
)
