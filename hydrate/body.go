package hydrate

import (
	"net/http"
	"strconv"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqerrors"
)

// Interface for objects that can fetch header information, like http.Header.
type headerFetcher interface {
	Get(key string) string
}

/*
HasBody reports whether a request carries a body worth decoding: true iff the
Content-Length header parses to an integer greater than zero. A missing or
non-numeric header means false, never an error.
*/
func HasBody(headers headerFetcher) bool {
	contentLength, err := strconv.Atoi(headers.Get("Content-Length"))
	if err != nil {
		return false
	}

	return contentLength > 0
}

// Maps a body classification to the error type its decode failures are reported as.
func decodeErrorType(mimeType mimetype.MimeType) *reqerrors.ReqErrorType {
	switch mimeType {
	case mimetype.FORM:
		return reqerrors.FormDecodeError
	case mimetype.JSON:
		return reqerrors.JSONDecodeError
	case mimetype.MULTIPART:
		return reqerrors.MultipartDecodeError
	}

	return reqerrors.BodyDecodeError
}

/*
parseBody eagerly decodes the request body. Requests without a body (per HasBody)
yield an empty ParsedBody without the stream being touched. A body with no declared
Content-Type is decoded as application/x-www-form-urlencoded, failures on that path
reported as UntypedBodyDecodeError. Any other declared type is classified once and
dispatched to the engine's registered decoder; declared types with no registered
decoder leave the body undecoded rather than erroring.
*/
func parseBody(
	httpRequest *http.Request, engine encoding.Engine, memoryLimit int64,
) (*ParsedBody, error) {
	if !HasBody(httpRequest.Header) {
		return &ParsedBody{}, nil
	}

	declared := httpRequest.Header.Get("Content-Type")
	if declared == "" {
		info := &encoding.ContentInfo{
			Declared:    string(mimetype.FORM),
			Type:        mimetype.FORM,
			MemoryLimit: memoryLimit,
		}

		data, err := engine.DecodeBody(info, httpRequest.Body)
		if err != nil {
			return nil, reqerrors.UntypedBodyDecodeError.New(
				"body with no declared content type failed the default "+
					string(mimetype.FORM)+" decode",
				nil,
				err,
			)
		}

		return &ParsedBody{ContentType: mimetype.FORM, Data: data}, nil
	}

	classified := mimetype.Classify(declared)
	if !engine.HandlesDecode(classified) {
		// Unrecognized or unregistered content type: body left undecoded.
		return &ParsedBody{}, nil
	}

	info := &encoding.ContentInfo{
		Declared:    declared,
		Type:        classified,
		MemoryLimit: memoryLimit,
	}

	data, err := engine.DecodeBody(info, httpRequest.Body)
	if err != nil {
		return nil, decodeErrorType(classified).New(
			"could not decode "+declared+" body",
			nil,
			err,
		)
	}

	return &ParsedBody{ContentType: classified, Data: data}, nil
}
