// Hydrate raw incoming requests into enriched request values for route handlers.
/*
Hydration takes the raw request a listener hands over (headers, URL, a single-read
body stream) plus the path parameters the router resolved, and produces one enriched
value with everything a handler needs already computed:

• The URL decomposed into path and decoded query parameters.

• The body eagerly decoded according to its declared content type, into tagged
parameter values.

• The response content type negotiated from body, query, header, and configured
default.

• Uniform accessors for path, query, header, and body parameters, plus struct
binding for typed request models.

A handler never re-reads the body stream or re-parses the URL: the work happens once
at the top of the request and the results are read-only afterward.

Basic usage:

	func handleWidget(writer http.ResponseWriter, httpRequest *http.Request) {
		request, err := hydrate.Hydrate(httpRequest, pathParams, nil)
		if err != nil {
			// decode failures carry a reqerrors.ReqError with an http code
			...
		}

		name := request.BodyParam("name")
		page := request.QueryParam("page")
		...
	}

Decode failures are returned as *reqerrors.ReqError values mapping to server error
responses. URL decomposition and negotiation never fail, they degrade to best-effort
defaults so malformed URLs cannot abort a request.
*/
package hydrate
