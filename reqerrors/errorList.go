package reqerrors

// Base decode error. Used when a request body cannot be decoded and no more specific
// type applies.
var BodyDecodeError = NewReqErrorType(
	"BodyDecodeError",
	1100,
	500,
)

// Body declared as application/x-www-form-urlencoded could not be decoded.
var FormDecodeError = NewReqErrorType(
	"FormDecodeError",
	1101,
	500,
)

// Body declared as application/json could not be decoded.
var JSONDecodeError = NewReqErrorType(
	"JSONDecodeError",
	1102,
	500,
)

// Body declared as multipart/form-data could not be decoded. Also raised when a
// multipart body exceeds the configured memory ceiling or carries no boundary.
var MultipartDecodeError = NewReqErrorType(
	"MultipartDecodeError",
	1103,
	500,
)

// Body with no Content-Type header failed the default urlencoded parse.
var UntypedBodyDecodeError = NewReqErrorType(
	"UntypedBodyDecodeError",
	1104,
	500,
)

// Hydration options could not be loaded or normalized.
var OptionsError = NewReqErrorType(
	"OptionsError",
	1105,
	500,
)

// Request hydration could not be performed, for example when a request is hydrated
// twice.
var HydrationError = NewReqErrorType(
	"HydrationError",
	1106,
	500,
)

// Response payload could not be encoded to the negotiated content type.
var ResponseEncodeError = NewReqErrorType(
	"ResponseEncodeError",
	1107,
	500,
)

// List of default error definitions.
var ErrorList = [8]*ReqErrorType{
	BodyDecodeError,
	FormDecodeError,
	JSONDecodeError,
	MultipartDecodeError,
	UntypedBodyDecodeError,
	OptionsError,
	HydrationError,
	ResponseEncodeError,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*ReqErrorType {
	index := make(map[int]*ReqErrorType)
	for _, errorType := range ErrorList {
		index[errorType.apiCode] = errorType
	}
	return index
}

// ApiCode:*ErrorType indexing of default errors.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()
