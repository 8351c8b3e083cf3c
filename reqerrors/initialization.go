package reqerrors

import (
	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
	"strconv"
	"strings"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// Returns a request error type definition. Each definition should only need to be
// declared once in a shared library for any given ecosystem, ensuring consistent
// error codes and names for the error type across all services / libraries of a
// given language.
func NewReqErrorType(
	name string,
	apiCode int,
	httpCode int,
) *ReqErrorType {
	reqError := &ReqErrorType{
		name:     name,
		apiCode:  apiCode,
		httpCode: httpCode,
	}
	return reqError
}

// Returns a new request error to be returned by the route handler or panicked.
func NewReqError(
	errorType *ReqErrorType,
	message string,
	errorData map[string]interface{},
	source error,
) *ReqError {
	return errorType.New(message, errorData, source)
}

// Creates a new error that is immediately passed to a panic. Expected to be recovered
// by error middleware. Allows errors to be generated from anywhere inside a route
// handler without need to explicitly pass them up a chain of nested function returns.
func PanicReqError(
	errorType *ReqErrorType,
	message string,
	errorData map[string]interface{},
	source error,
) {
	reqError := NewReqError(errorType, message, errorData, source)
	panic(reqError)
}

type headerFetcher interface {
	Get(key string) string
}

/*
ErrorFromHeaders generates an error object from headers of an HTTP response. If a
reqError object can be made from the header data, a pointer to it is returned. If an
error code is detected in the headers, but the header data is malformed and cannot be
loaded, then hasError is returned as True, and a description of the parsing issue is
returned in err.

If the headers do not contain an error, hasError will be False, reqError will be
returned as a nil pointer, and err will specify that no error was found.
*/
func ErrorFromHeaders(
	headers headerFetcher,
	dataEngine encoding.Engine,
	errorTypeCodeIndex map[int]*ReqErrorType,
) (reqError *ReqError, hasError bool, err error) {

	// If there is no error code, then there is no error
	errorCodeStr := headers.Get("error-code")
	if errorCodeStr == "" {
		return nil, false, xerrors.New("no error in headers")
	}

	// If the error code is not an int, then there is no error
	errorCode, err := strconv.Atoi(errorCodeStr)
	if err != nil {
		return nil, false, xerrors.New("error-code not int")
	}

	if errorTypeCodeIndex == nil {
		return nil,
			true,
			xerrors.New("no error index provided")
	}
	errorType, ok := errorTypeCodeIndex[errorCode]
	if !ok {
		return nil,
			true,
			xerrors.New("no known error for code " + errorCodeStr)
	}

	errorMessage := headers.Get("error-message")
	errorIDStr := headers.Get("error-id")

	errorID, err := uuid.FromString(errorIDStr)
	if err != nil {
		return nil,
			true,
			xerrors.New("error ID is not valid UUID")
	}

	errorData := make(map[string]interface{})
	if errorDataStr := headers.Get("error-data"); errorDataStr != "" {
		stringReader := strings.NewReader(errorDataStr)
		dataInfo := &encoding.ContentInfo{
			Declared: string(mimetype.JSON),
			Type:     mimetype.JSON,
		}

		decoded, decodeErr := dataEngine.DecodeBody(dataInfo, stringReader)
		if decodeErr != nil {
			return nil,
				true,
				xerrors.New("error data could not be parsed as JSON")
		}

		for name, value := range decoded {
			errorData[name] = reqtypes.ToInterface(value)
		}
	}

	reqError = errorType.New(
		errorMessage, errorData, nil,
	)
	reqError.ID = errorID

	return reqError, true, nil
}
