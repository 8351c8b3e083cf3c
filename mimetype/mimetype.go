// Enumeration-like type for content mimetypes.
package mimetype

import (
	"strings"
)

/*
MimeType is used to enumerate the content types the request pipeline knows how to
handle. Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON      = MimeType("application/json")
	FORM      = MimeType("application/x-www-form-urlencoded")
	MULTIPART = MimeType("multipart/form-data")
	BSON      = MimeType("application/bson")
	YAML      = MimeType("application/yaml")
	TEXT      = MimeType("text/plain")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// Interface for objects that can fetch header values, such as http.Request.Header or
// http.Response.Header.
type headerFetcher interface {
	Get(string) string
}

// Extract and classify the content type of a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return Classify(headers.Get("Content-Type"))
}

/*
Classify maps a declared Content-Type value to the MimeType that should handle it.
Matching ignores case and tolerates parameters and vendor prefixes, so all of the
following will yield "mimetype.MULTIPART":

• "multipart/form-data; boundary=xxx"

• "Multipart/Form-Data"

When a malformed header carries more than one recognized type token, FORM wins over
JSON, and JSON wins over MULTIPART. A blank value classifies as UNKNOWN; any other
unrecognized value is returned lowercased so callers can match against their own
registered types.
*/
func Classify(declared string) MimeType {
	declared = strings.ToLower(strings.TrimSpace(declared))

	if declared == "" {
		return UNKNOWN
	}

	switch {
	case strings.Contains(declared, string(FORM)):
		return FORM
	case strings.Contains(declared, string(JSON)):
		return JSON
	case strings.Contains(declared, string(MULTIPART)):
		return MULTIPART
	case strings.Contains(declared, "bson"):
		return BSON
	case strings.Contains(declared, "yaml"):
		return YAML
	case strings.HasPrefix(declared, string(TEXT)):
		return TEXT
	}

	return MimeType(declared)
}
