package reqerrors

import (
	"bytes"
	"fmt"
	"github.com/satori/go.uuid"
	"golang.org/x/xerrors"
	"runtime/debug"
	"strconv"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/mimetype"
)

// Interface for object that can set header information.
type headerSetter interface {
	Set(key string, value string)
}

/*
ReqErrorType defines a TYPE of error that can be returned while hydrating a request
or writing a response. Each ReqErrorType for a given ecosystem should have a unique
Name and APICode.

Codes 1100-1199 are reserved for this library's default error definitions.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewReqErrorType()
*/
type ReqErrorType struct {
	// Unique human-readable name of the error type for the API ecosystem.
	name string

	// Unique number to identify the error type in the API ecosystem.
	apiCode int

	// HTTP code that should be returned when this error type is returned. Set to -1
	// if the http error is determined dynamically.
	httpCode int
}

// Returns a new request error to be returned by the route handler or panicked.
func (errorType *ReqErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *ReqError {
	reqError := ReqError{
		ReqErrorType: errorType,
		Message:      message,
		ID:           uuid.NewV4(),
		ErrorData:    errorData,
		sourceErr:    source,
		sourceStack:  debug.Stack(),
		frame:        xerrors.Caller(0),
	}
	return &reqError
}

/*
Creates a new error that is immediately passed to a panic. Expected to be recovered
by error middleware. Allows errors to be generated from anywhere inside a route
handler without need to explicitly pass them up a chain of nested function returns.
*/
func (errorType *ReqErrorType) Panic(
	message string,
	errorData map[string]interface{},
	source error,
) {
	reqError := errorType.New(message, errorData, source)
	panic(reqError)
}

// Unique human-readable name of the error type for the API ecosystem.
func (errorType *ReqErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type in the API ecosystem.
func (errorType *ReqErrorType) ApiCode() int {
	return errorType.apiCode
}

// HTTP code that should be returned when this error type is returned. Set to -1
// if the http error is determined dynamically.
func (errorType *ReqErrorType) HttpCode() int {
	return errorType.httpCode
}

// Returns a copy of the error type with the given http code replaced.
func (errorType *ReqErrorType) WithHttpCode(newHttpCode int) *ReqErrorType {
	return &ReqErrorType{
		name:     errorType.name,
		apiCode:  errorType.apiCode,
		httpCode: newHttpCode,
	}
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *ReqErrorType) Error() string {
	return errorType.name +
		" (" + strconv.Itoa(errorType.apiCode) + ")"
}

// Used to return a specific error instance.
type ReqError struct {
	// The type of error we are returning.
	*ReqErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is
	// stored here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType. Some
// errors may have multiple http codes possible, so we can't just compare ErrorType
// field equality directly.
func (reqError *ReqError) IsType(errorType *ReqErrorType) bool {
	return reqError.ReqErrorType.Error() == errorType.Error()
}

// Error string to conform to builtin error interface.
func (reqError *ReqError) Error() string {
	return reqError.ReqErrorType.Error() + " - " + reqError.Message
}

// Implements xerrors.Wrapper interface. Part of how errors are being considered for
// implementation in future GO versions with more traceback support.
func (reqError *ReqError) Unwrap() error {
	// implements xerrors.Wrapper
	return reqError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information. This is not part of the Error(), Message, or ErrorData by default since
// it may contain sensitive information that is not desirable to return to the client.
func (reqError *ReqError) LogMessage() string {
	loggerMessage := fmt.Sprint(
		// print the error
		"\nMESSAGE: ",
		reqError.Error(),
		"\nORIGINAL: ",
		reqError.sourceErr,
		"\nPANIC STACK:\n",
		string(reqError.sourceStack),
	)
	return loggerMessage
}

// Writes error to an object which implements a Set(key string, value string) method
// like http.Request or http.ResponseWriter headers.
func (reqError *ReqError) ToHeader(
	setter headerSetter, dataEngine encoding.Engine,
) error {
	setter.Set("error-name", reqError.name)
	setter.Set("error-code", strconv.Itoa(reqError.apiCode))
	setter.Set("error-message", reqError.Message)
	setter.Set("error-id", reqError.ID.String())

	if reqError.ErrorData != nil {
		dataBytes := bytes.Buffer{}
		err := dataEngine.Encode(mimetype.JSON, reqError.ErrorData, &dataBytes)
		if err != nil {
			return err
		}
		setter.Set("error-data", dataBytes.String())
	}

	return nil
}
