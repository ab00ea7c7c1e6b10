package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies the outcome of a failed backend call. Every error returned
// by a Client operation carries exactly one Kind.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized" // 401: the session is no longer valid
	KindServerFault  Kind = "server_fault" // 5xx: the backend itself failed
	KindClientFault  Kind = "client_fault" // remaining 4xx: the request was wrong
	KindTransport    Kind = "transport"    // no response was received at all
	KindMalformed    Kind = "malformed"    // 2xx with an undecodable body
)

// APIError is the classified form of a failed backend call.
type APIError struct {
	Kind       Kind   // classification, always set
	StatusCode int    // HTTP status, zero for transport failures
	Detail     string // backend-provided detail message, where available
	Err        error  // underlying cause, nil for plain status failures
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Classify maps a response status or transport error onto an APIError.
// It is pure: recovery effects such as clearing credentials, navigation and
// notification are applied separately by the Client once per failing call.
func Classify(statusCode int, detail string, transportErr error) *APIError {
	if transportErr != nil {
		return &APIError{Kind: KindTransport, Err: transportErr}
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: statusCode, Detail: detail}
	case statusCode >= http.StatusInternalServerError:
		return &APIError{Kind: KindServerFault, StatusCode: statusCode, Detail: detail}
	default:
		return &APIError{Kind: KindClientFault, StatusCode: statusCode, Detail: detail}
	}
}

// KindOf returns the classification carried by err, or the empty Kind when
// err did not come from a Client operation.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// errorBody is the backend's error envelope. Detail is usually a plain
// string but validation failures send a structured list, so it is kept raw
// until decoded.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailFromBody extracts the human-readable detail from an error response
// body. It returns the empty string when the body carries no usable detail.
func detailFromBody(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return detail
	}

	return string(body.Detail)
}
