package hydrate

import (
	"context"
	"net/http"

	"github.com/illuscio-dev/spanreq-go/reqerrors"
)

// Context key type private to this package so the hydration marker cannot collide
// with host application keys.
type contextKey struct{}

// Marks a request whose body stream hydration has already consumed.
var hydratedKey = contextKey{}

/*
Hydrate enriches an incoming request into a *Request for route handlers:

1. Merges options.Headers into the request headers (overwriting same-named ones).

2. Splits the raw URL into path and query parameters.

3. Eagerly decodes the body, exactly once, according to its declared content type.

4. Negotiates the response content type from body, query, header, and the options
default, in that descending precedence.

pathParams come from the external router and may be nil. options may be nil, which
hydrates with the zero Options.

The body stream is a single-consumption resource. Hydrating the same request twice
would re-read the consumed stream and observe an empty body, so a second call is
rejected with HydrationError instead.
*/
func Hydrate(
	httpRequest *http.Request,
	pathParams map[string]string,
	options *Options,
) (*Request, error) {
	if options == nil {
		options = &Options{}
	}

	if httpRequest.Context().Value(hydratedKey) != nil {
		return nil, reqerrors.HydrationError.New(
			"request already hydrated: body stream consumed", nil, nil,
		)
	}

	// The marker has to land on the caller's request value for a second Hydrate
	// call on the same pointer to see it, so the shallow copy WithContext makes is
	// written back.
	*httpRequest = *httpRequest.WithContext(
		context.WithValue(httpRequest.Context(), hydratedKey, true),
	)

	for name, value := range options.Headers {
		httpRequest.Header.Set(name, value)
	}

	rawURL := httpRequest.RequestURI
	if rawURL == "" && httpRequest.URL != nil {
		rawURL = httpRequest.URL.RequestURI()
	}

	urlPath := SplitPath(rawURL)
	queryParams := QueryParams(rawURL)

	parsedBody, err := parseBody(
		httpRequest, options.engine(), options.MultipartMemoryBytes(),
	)
	if err != nil {
		return nil, err
	}

	// Negotiation runs after the body decode so the body source is observable.
	responseContentType := ResolveResponseContentType(
		httpRequest.Header,
		queryParams,
		parsedBody.Data,
		options.DefaultResponseContentType,
	)

	request := &Request{
		httpRequest:         httpRequest,
		urlPath:             urlPath,
		queryParams:         queryParams,
		pathParams:          pathParams,
		responseContentType: responseContentType,
		parsedBody:          parsedBody,
	}

	return request, nil
}
