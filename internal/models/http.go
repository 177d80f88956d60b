package models

import (
	"bytes"
	"encoding/json"
)

// LifecycleRequest is the request shape of the lifecycle entry point.
//
// Several fields are kept as raw JSON because the wire contract is
// polymorphic: optional fields accept either a value or the boolean false,
// which is the removal sentinel. Dates additionally accept either a date
// string or epoch milliseconds.
type LifecycleRequest struct {
	EnvironmentID json.RawMessage            `json:"environmentid,omitempty"`
	TenantID      json.RawMessage            `json:"tenantid,omitempty"`
	Action        json.RawMessage            `json:"action,omitempty"`
	ID            string                     `json:"id,omitempty"`
	Destination   json.RawMessage            `json:"destination,omitempty"`
	Description   json.RawMessage            `json:"description,omitempty"`
	StartDate     json.RawMessage            `json:"startdate,omitempty"`
	EndDate       json.RawMessage            `json:"enddate,omitempty"`
	Aliases       map[string]json.RawMessage `json:"aliases,omitempty"`
}

// LifecycleResponse carries either the identifier of the affected link or an
// error string, never both, plus the capacity units consumed by every store
// call the operation made.
type LifecycleResponse struct {
	ID                    string  `json:"id,omitempty"`
	Error                 string  `json:"error,omitempty"`
	ConsumedCapacityUnits float64 `json:"consumedcapacityUnits"`
}

// Header keys consulted by the resolution entry point.
const (
	HeaderAliasHost = "linkward-host"
	HeaderUserAgent = "user-agent"
)

// ResolveRequest is the request shape of the resolution entry point. RawPath
// is the request path including the leading separator.
type ResolveRequest struct {
	RawPath string            `json:"rawPath"`
	Headers map[string]string `json:"headers,omitempty"`
}

// ResolveResponse is the redirect decision: 302 with a Location header, or a
// failure classification carried in the status code and body.
type ResolveResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body,omitempty"`
}

var (
	jsonNull  = []byte("null")
	jsonFalse = []byte("false")
	jsonTrue  = []byte("true")
)

// Present reports whether a raw field was supplied at all. An explicit null
// counts as absent.
func Present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, jsonNull)
}

// IsFalse reports whether a raw field carries the removal sentinel.
func IsFalse(raw json.RawMessage) bool {
	return bytes.Equal(raw, jsonFalse)
}

// IsTrue reports whether a raw field is the boolean true, which is never a
// valid value for any optional field.
func IsTrue(raw json.RawMessage) bool {
	return bytes.Equal(raw, jsonTrue)
}

// AsString decodes a raw field as a JSON string.
func AsString(raw json.RawMessage) (string, bool) {
	if !Present(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsNumber decodes a raw field as a JSON number.
func AsNumber(raw json.RawMessage) (float64, bool) {
	if !Present(raw) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// ScalarString renders a raw scalar the way it was supplied, for use in
// human-readable log lines. Strings lose their quotes; anything else is
// rendered as raw JSON.
func ScalarString(raw json.RawMessage) string {
	if s, ok := AsString(raw); ok {
		return s
	}
	return string(raw)
}
