package encoding

import (
	"bytes"
	"golang.org/x/xerrors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// default multipart/form-data decoder for BodyEngine.
type multipartDecoder struct{}

func (decoder *multipartDecoder) DecodeBody(
	engine Engine, reader io.Reader, info *ContentInfo,
) (reqtypes.Mapping, error) {
	boundary, err := extractBoundary(info.Declared)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := readCapped(reader, info.MemoryLimit)
	if err != nil {
		return nil, err
	}

	multipartReader := multipart.NewReader(bytes.NewReader(bodyBytes), boundary)
	form, err := multipartReader.ReadForm(info.MemoryLimit)
	if err != nil {
		return nil, xerrors.Errorf("error parsing multipart form: %w", err)
	}

	data := reqtypes.FromValues(form.Value)
	mergeFileHeaders(data, form.File)

	return data, nil
}

// Pulls the boundary token out of the declared content type. Boundaries arrive
// unquoted and run until whitespace or the next parameter.
func extractBoundary(declared string) (string, error) {
	index := strings.Index(declared, "boundary=")
	if index < 0 {
		return "", xerrors.New("no boundary in content type: " + declared)
	}

	boundary := declared[index+len("boundary="):]
	if end := strings.IndexAny(boundary, " \t;"); end >= 0 {
		boundary = boundary[:end]
	}

	if boundary == "" {
		return "", xerrors.New("empty boundary in content type: " + declared)
	}

	return boundary, nil
}

// Reads the full body, erroring if it runs past limit bytes.
func readCapped(reader io.Reader, limit int64) ([]byte, error) {
	bodyBytes, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, xerrors.Errorf("error reading multipart body: %w", err)
	}

	if int64(len(bodyBytes)) > limit {
		return nil, xerrors.Errorf(
			"multipart body exceeds memory limit of %v bytes", limit,
		)
	}

	return bodyBytes, nil
}

// Folds file parts into data alongside the value parts. A field holding a lone file
// stores the file bare, anything else merges into a list.
func mergeFileHeaders(
	data reqtypes.Mapping, files map[string][]*multipart.FileHeader,
) {
	for name, fileList := range files {
		existing, ok := data[name]
		if !ok && len(fileList) == 1 {
			data[name] = reqtypes.NewFormFile(fileList[0])
			continue
		}

		merged := make(reqtypes.List, 0, len(fileList)+1)
		if existingList, isList := existing.(reqtypes.List); isList {
			merged = append(merged, existingList...)
		} else if existing != nil {
			merged = append(merged, existing)
		}

		for _, fileHeader := range fileList {
			merged = append(merged, reqtypes.NewFormFile(fileHeader))
		}

		data[name] = merged
	}
}
