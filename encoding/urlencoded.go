package encoding

import (
	"golang.org/x/xerrors"
	"io"
	"net/url"
	"strings"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// default application/x-www-form-urlencoded decoder for BodyEngine.
type formDecoder struct{}

func (decoder *formDecoder) DecodeBody(
	engine Engine, reader io.Reader, info *ContentInfo,
) (reqtypes.Mapping, error) {
	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, xerrors.Errorf("error reading form body: %w", err)
	}

	bodyStr := string(bodyBytes)

	// Some clients send the body as a full querystring, '?' and all, or with
	// quoted values. Discard everything through the first '?' and strip all quote
	// characters before parsing the pairs.
	if index := strings.Index(bodyStr, "?"); index >= 0 {
		bodyStr = bodyStr[index+1:]
	}
	bodyStr = strings.ReplaceAll(bodyStr, `"`, "")

	values, err := url.ParseQuery(bodyStr)
	if err != nil {
		return nil, xerrors.Errorf("error parsing form body: %w", err)
	}

	return reqtypes.FromValues(values), nil
}
