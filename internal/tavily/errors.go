// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import "fmt"

// ConfigError reports a problem detected before any network activity:
// a missing credential or an invalid request parameter.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// TransportError reports that a request never produced an HTTP response:
// DNS failure, connection refused, or the timeout elapsing mid-flight.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a non-2xx HTTP status from the API. The raw response
// body is carried verbatim so the operator sees the API's own diagnostic.
// Callers never retry a RemoteError.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Tavily API error %d: %s", e.StatusCode, e.Body)
}

// ProtocolError reports a successful HTTP exchange whose payload violated
// the API contract, such as a missing task identifier or an undecodable
// body. Distinct from RemoteError: the HTTP layer succeeded.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return e.Msg }
