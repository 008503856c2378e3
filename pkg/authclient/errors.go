package authclient

import "errors"

// ErrorKind classifies an AuthError for exhaustive branching without
// string matching.
type ErrorKind int

const (
	// KindValidation: a local form check failed; the network was never touched.
	KindValidation ErrorKind = iota + 1
	// KindServer: the server answered non-2xx with a message; shown verbatim.
	KindServer
	// KindConnection: transport or parse failure; shown as a generic message.
	KindConnection
	// KindSessionInvalid: verification of a persisted token failed during
	// hydration. Never surfaced to the user; the store degrades to guest.
	KindSessionInvalid
)

// connectionMessage is what users see when the failure class carries no
// trustworthy server message.
const connectionMessage = "could not reach server"

// AuthError is the tagged failure type returned by every gateway operation.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func validationError(msg string) *AuthError {
	return &AuthError{Kind: KindValidation, Message: msg}
}

func serverError(msg string) *AuthError {
	return &AuthError{Kind: KindServer, Message: msg}
}

func connectionError() *AuthError {
	return &AuthError{Kind: KindConnection, Message: connectionMessage}
}

// KindOf returns the error's kind, or 0 when err is not an AuthError.
func KindOf(err error) ErrorKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// IsConnection reports whether err is a transport-class failure.
func IsConnection(err error) bool {
	return KindOf(err) == KindConnection
}

// messageOf extracts the text to display for a submission failure.
func messageOf(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
