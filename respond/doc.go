// Write responses in the content type a request negotiated for.
/*
The respond package closes the loop opened by content negotiation: hydration works
out what type the client wants back, and Responder encodes payloads to that type
through the same engine that decoded the request body. Handlers call Write with
their payload and never name a mimetype; clients switch response encodings per
request with a header, query parameter, or body field.

Request errors travel to clients through WriteError, which mirrors how
reqerrors.ErrorFromHeaders reads them back on the consuming side.
*/
package respond
