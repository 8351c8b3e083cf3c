package encoding

import (
	"io"

	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// ContentInfo carries the per-request facts a body decoder needs. A new value is
// built for every request, so decoders never share mutable state between requests.
type ContentInfo struct {
	// Declared is the raw Content-Type header value as sent by the client, including
	// any parameters such as a multipart boundary.
	Declared string

	// Type is the classification of Declared used to select the decoder.
	Type mimetype.MimeType

	// MemoryLimit is the maximum number of body bytes a buffering decoder may hold
	// before it must fail the decode.
	MemoryLimit int64
}

// Interface for defining a body decoder.
type BodyDecoder interface {
	// To be implemented by body decoder. Implementation is expected to read the full
	// body from reader and return it as a name -> value mapping. The engine which is
	// calling DecodeBody is made available through engine, allowing decoders to
	// access engine-level settings.
	DecodeBody(engine Engine, reader io.Reader, info *ContentInfo) (reqtypes.Mapping, error)
}

// Interface for defining a payload encoder.
type PayloadEncoder interface {
	// To be implemented by payload encoder. Implementation is expected to write
	// content to writer. The engine which is calling EncodePayload is made available
	// through engine, allowing encoders to access engine-level settings.
	EncodePayload(engine Engine, writer io.Writer, content interface{}) error
}
