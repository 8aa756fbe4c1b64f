package ingest

import (
	"errors"

	"github.com/aws/smithy-go"
)

var (
	// ErrEnvelopeDecode means an event, sub-message or payload was not valid structured text.
	ErrEnvelopeDecode = errors.New("envelope decode error")
	// ErrMissingField means a required key was absent while unwrapping or extracting.
	ErrMissingField = errors.New("missing field")
	// ErrStoreWrite means the upsert to the orders table failed.
	ErrStoreWrite = errors.New("store write error")
)

// Kind labels used in logs and metrics.
const (
	KindDecode       = "decode"
	KindMissingField = "missing_field"
	KindStoreWrite   = "store_write"
	KindUnknown      = "unknown"
)

// Kind maps err onto the ingestion error taxonomy.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEnvelopeDecode):
		return KindDecode
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	case errors.Is(err, ErrStoreWrite):
		return KindStoreWrite
	default:
		return KindUnknown
	}
}

// awsErrorCode returns the service error code when err wraps an AWS API error.
func awsErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
