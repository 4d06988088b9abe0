// Package api defines the wire types shared by the HTTP server and the
// client: the response envelope, request/response payloads, and the task
// vocabulary (statuses, priorities, filters). Both the remote and the local
// execution paths speak in these terms, which is what keeps the two
// implementations interchangeable.
package api

import "encoding/json"

// Envelope is the uniform response wrapper: {success, data?, message?}.
// Data carries the operation payload on success; Message carries a
// human-readable error otherwise.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
