// Decode request bodies and encode response payloads by mimetype.
/*
The encoding package's goal is to make a single interface specification for request
and response content, so that a body can be decoded based on the request headers and a
response payload can be encoded to whatever type a client negotiates without
mimetype-specific methods being explicitly called by the developer on each route.

Specific objectives

1. Clients can send request bodies in any supported serialization and request back
whichever encoding type they are most comfortable with.

2. Service developers do not have to explicitly add support for body types to a given
route. Support for a mimetype is added once to the engine and gotten for free by every
route of the service.

3. Request bodies of unsupported types are not errors. The engine reports what it
handles so callers can pass unrecognized bodies through untouched.

4. Developers can extend their services to support a new content type by registering
their own decoders and encoders.
*/
package encoding
