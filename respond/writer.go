package respond

import (
	"bytes"
	"net/http"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/hydrate"
	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqerrors"
)

// Responder writes response payloads encoded to whatever content type a request
// negotiated. One Responder is shared by all routes of a service.
type Responder struct {
	engine encoding.Engine
}

// NewResponder returns a Responder encoding with engine. A nil engine falls back to
// the shared default engine, so responses and request bodies share one registry.
func NewResponder(engine encoding.Engine) *Responder {
	if engine == nil {
		engine = hydrate.DefaultEngine()
	}
	return &Responder{engine: engine}
}

/*
Write encodes content as the request's negotiated response content type and writes
it with the given status code. The payload is staged in a buffer so encode failures
surface before any header or status line goes out.

Content types with no registered encoder fall back to writing string and []byte
content raw; anything else is a ResponseEncodeError.
*/
func (responder *Responder) Write(
	writer http.ResponseWriter,
	request *hydrate.Request,
	status int,
	content interface{},
) error {
	mimeType := request.ResponseContentType()

	payload := bytes.Buffer{}
	if responder.engine.HandlesEncode(mimeType) {
		err := responder.engine.Encode(mimeType, content, &payload)
		if err != nil {
			return reqerrors.ResponseEncodeError.New(
				"could not encode "+string(mimeType)+" response", nil, err,
			)
		}
	} else {
		switch converted := content.(type) {
		case []byte:
			payload.Write(converted)
		case string:
			payload.WriteString(converted)
		default:
			return reqerrors.ResponseEncodeError.New(
				"no encoder registered for "+string(mimeType), nil, nil,
			)
		}
	}

	writer.Header().Set("Content-Type", string(mimeType))
	writer.Header().Set("Content-Length", strconv.Itoa(payload.Len()))
	writer.WriteHeader(status)

	if _, err := writer.Write(payload.Bytes()); err != nil {
		return xerrors.Errorf("error writing response payload: %w", err)
	}

	return nil
}

/*
WriteError transports a request error to the client: the error's fields travel in
response headers (see ReqError.ToHeader), the status line comes from the error
type's HttpCode (500 when the code is dynamic), and a json payload repeats the
client-safe fields for consumers that do not read headers. Source errors and stack
traces never leave the server; log them with ReqError.LogMessage.
*/
func (responder *Responder) WriteError(
	writer http.ResponseWriter, reqError *reqerrors.ReqError,
) error {
	if err := reqError.ToHeader(writer.Header(), responder.engine); err != nil {
		return xerrors.Errorf("error writing error headers: %w", err)
	}

	httpCode := reqError.HttpCode()
	if httpCode <= 0 {
		httpCode = http.StatusInternalServerError
	}

	body := map[string]interface{}{
		"name":    reqError.Name(),
		"code":    reqError.ApiCode(),
		"message": reqError.Message,
		"id":      reqError.ID.String(),
	}

	payload := bytes.Buffer{}
	if err := responder.engine.Encode(mimetype.JSON, body, &payload); err != nil {
		return xerrors.Errorf("error encoding error payload: %w", err)
	}

	writer.Header().Set("Content-Type", string(mimetype.JSON))
	writer.Header().Set("Content-Length", strconv.Itoa(payload.Len()))
	writer.WriteHeader(httpCode)

	if _, err := writer.Write(payload.Bytes()); err != nil {
		return xerrors.Errorf("error writing error payload: %w", err)
	}

	return nil
}
