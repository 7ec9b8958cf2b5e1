package haclient

import "errors"

var (
	// ErrUnauthorized indicates the access token was rejected.
	ErrUnauthorized = errors.New("home assistant rejected the access token")

	// ErrUnexpectedStatus indicates a REST call returned a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrCommandFailed indicates a WebSocket command returned success=false.
	ErrCommandFailed = errors.New("websocket command failed")

	// ErrNotJWT indicates the configured token is not a JWT and cannot be
	// introspected. Such tokens may still authenticate fine.
	ErrNotJWT = errors.New("token is not a decodable JWT")
)
