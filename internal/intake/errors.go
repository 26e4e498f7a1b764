package intake

import "fmt"

// Kind classifies a rejected request.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindConfig
	KindVerification
	KindStorage
	KindMalformedBody
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not-found"
	case KindConfig:
		return "config"
	case KindVerification:
		return "verification"
	case KindStorage:
		return "storage"
	case KindMalformedBody:
		return "malformed-body"
	case KindForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type returned by the workflows. Message is safe
// to show to clients; Detail carries an extra diagnostic (the missing
// credential names for KindConfig).
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

const (
	MsgApplicantDuplicate  = "A user with this email and phone number combination already exists."
	MsgCredentials         = "Reddit API credentials are not configured properly"
	MsgEmailPhoneRequired  = "Email and phone are required"
	MsgUserNotFound        = "User not found. Please complete the qualification form first."
	MsgContractorDuplicate = "You have already requested to join this company. Please check your email for updates."
	MsgIntakeSuccess       = "Application processed successfully"
	MsgContractorSuccess   = "We've just pinged them. You'll be sent an email and text invite within 72 hours."
	MsgEmailMismatch       = "Authenticated user does not match request email"
)

func redditNotFoundMessage(username string) string {
	return fmt.Sprintf("Reddit user '%s' does not exist. Please check the username and try again.", username)
}

func storageError(err error) *Error {
	return &Error{Kind: KindStorage, Message: err.Error(), Err: err}
}
