package hydrate

import (
	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

const (
	// ResponseTypeHeader is the request header checked during content negotiation.
	ResponseTypeHeader = "Response-Content-Type"

	// ResponseTypeKey is the query parameter and body field checked during content
	// negotiation.
	ResponseTypeKey = "response_content_type"
)

// DefaultResponseType is negotiated when the request supplies no source and the
// caller supplies no default.
const DefaultResponseType = mimetype.JSON

/*
ResolveResponseContentType picks the content type a response should be encoded as.
Sources are checked in ascending precedence, each non-empty source overwriting the
previous result:

1. defaultType, falling back to application/json when empty.

2. The Response-Content-Type request header.

3. The response_content_type query parameter.

4. A string-valued response_content_type field of the decoded body.

The body field therefore beats all other sources. Each source is checked
independently of whether earlier ones were present.
*/
func ResolveResponseContentType(
	headers headerFetcher,
	queryParams map[string]string,
	bodyData reqtypes.Mapping,
	defaultType string,
) mimetype.MimeType {
	resolved := mimetype.MimeType(defaultType)
	if resolved == mimetype.UNKNOWN {
		resolved = DefaultResponseType
	}

	if headerValue := headers.Get(ResponseTypeHeader); headerValue != "" {
		resolved = mimetype.MimeType(headerValue)
	}

	if queryValue := queryParams[ResponseTypeKey]; queryValue != "" {
		resolved = mimetype.MimeType(queryValue)
	}

	if bodyValue, ok := bodyData[ResponseTypeKey].(reqtypes.String); ok &&
		bodyValue != "" {
		resolved = mimetype.MimeType(bodyValue)
	}

	return resolved
}
