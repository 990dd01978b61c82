package domain

// Event types a document may deliver to listeners.
const (
	// EventClick is the user-activation event fired by buttons and links.
	EventClick = "click"
)

// Default trigger identifiers and their targets.
const (
	TriggerSignUp = "signUp"
	TriggerLogIn  = "logIn"

	PathSignUp = "/user/signup"
	PathLogIn  = "/user/login"
)
