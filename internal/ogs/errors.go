package ogs

import "errors"

// Errors returned by Client. They are always wrapped, match with errors.Is.
var (
	// ErrAuth means the login was rejected or the session is no longer valid.
	ErrAuth = errors.New("authentication failed")

	// ErrNetwork covers transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("network error")

	// ErrDecode means the server answered with a body that isn't the expected JSON.
	ErrDecode = errors.New("malformed response")
)
