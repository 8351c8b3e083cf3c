/*
Request error model definition and default error types.

Hydration strives to have a consistent set of errors (and error communication)
conventions shared between all services and clients that use it.

This package defines two main objects for handling errors:

• ReqErrorType defines an error type.

• ReqError is an instance of an error which contains a ReqErrorType.

Default ReqErrorType Variables

Pointers to the ReqErrorType definitions raised by the hydrate and respond packages
are included in this package, along with ErrorTypeCodeIndex for looking them up by
api code when reading errors back off a response.
*/
package reqerrors
