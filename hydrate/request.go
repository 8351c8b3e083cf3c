package hydrate

import (
	"net/http"

	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

/*
ParsedBody is the decoded representation of a request body plus the content type it
was decoded as. Both fields are zero when the request had no body or the declared
type had no registered decoder, so Data being nil marks an undecoded body.
*/
type ParsedBody struct {
	// Content type the body was decoded as.
	ContentType mimetype.MimeType

	// Field name -> decoded value. Nil when the body was absent or left undecoded.
	Data reqtypes.Mapping
}

/*
Accessors is the capability interface route handlers read hydrated requests through.
*Request implements it with a fixed method set built once during hydration, so
nothing is attached to or monkey-patched onto the underlying http request.
*/
type Accessors interface {
	// Decoded body field by name. Nil when the field is absent.
	BodyParam(name string) reqtypes.Param

	// Multipart file field by name. Nil when the field is absent or not a file.
	BodyFile(name string) *reqtypes.FormFile

	// Request header by name. Lookup is case-insensitive per http.Header.
	HeaderParam(name string) string

	// Router-resolved path parameter by name.
	PathParam(name string) string

	// Query string parameter by name.
	QueryParam(name string) string
}

/*
Request is a hydrated request: the raw http request enriched with its decomposed
URL, the negotiated response content type, and the eagerly decoded body. Build one
with Hydrate(). A Request is read-only after hydration and must not be shared until
hydration returns.
*/
type Request struct {
	httpRequest *http.Request

	urlPath             string
	queryParams         map[string]string
	pathParams          map[string]string
	responseContentType mimetype.MimeType
	parsedBody          *ParsedBody
}

// HTTPRequest returns the raw request this Request was hydrated from.
func (request *Request) HTTPRequest() *http.Request {
	return request.httpRequest
}

// Method returns the HTTP method of the request.
func (request *Request) Method() string {
	return request.httpRequest.Method
}

// Path returns the path portion of the request URL.
func (request *Request) Path() string {
	return request.urlPath
}

// QueryParams returns the decoded query parameters. Repeated keys hold their last
// occurrence.
func (request *Request) QueryParams() map[string]string {
	return request.queryParams
}

// PathParams returns the path parameters resolved by the router.
func (request *Request) PathParams() map[string]string {
	return request.pathParams
}

// ResponseContentType returns the negotiated content type for the response.
func (request *Request) ResponseContentType() mimetype.MimeType {
	return request.responseContentType
}

// Body returns the eagerly parsed request body.
func (request *Request) Body() *ParsedBody {
	return request.parsedBody
}

// BodyParam returns the decoded body field for name. Absent fields are nil, never
// an error.
func (request *Request) BodyParam(name string) reqtypes.Param {
	return request.parsedBody.Data[name]
}

// BodyFile returns the multipart file stored at name, or nil when the field is
// absent or holds a non-file value.
func (request *Request) BodyFile(name string) *reqtypes.FormFile {
	file, _ := request.parsedBody.Data[name].(*reqtypes.FormFile)
	return file
}

// HeaderParam returns the request header for name.
func (request *Request) HeaderParam(name string) string {
	return request.httpRequest.Header.Get(name)
}

// PathParam returns the router-resolved path parameter for name.
func (request *Request) PathParam(name string) string {
	return request.pathParams[name]
}

// QueryParam returns the query parameter for name.
func (request *Request) QueryParam(name string) string {
	return request.queryParams[name]
}
