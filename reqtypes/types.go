// Tagged value types for decoded request parameters.
package reqtypes

import (
	"fmt"
	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"mime/multipart"
	"net/textproto"
)

// Kind enumerates the dynamic types a decoded request parameter can take.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindList
	KindMap
	KindFile
	KindBinary
)

/*
Param is a single decoded parameter from a request body or query string. Rather than
handing `interface{}` values straight from a decoder to handler code, decoded content
is normalized to a small set of tagged types that can be switched on exhaustively:

• String for text fields and single-value form fields.

• Number for numeric values from object payloads (json, yaml, bson).

• Bool and Null for booleans and explicit nulls.

• List for repeated form fields and payload arrays.

• Mapping for nested objects.

• *FormFile for file parts of multipart form data.

• BinData for binary blobs, like bson binary fields.

A nil Param means the parameter was absent from the request.
*/
type Param interface {
	// The tag identifying the underlying type of this value.
	Kind() Kind
}

// String holds a text parameter.
type String string

func (value String) Kind() Kind { return KindString }

// Number holds a numeric parameter.
type Number float64

func (value Number) Kind() Kind { return KindNumber }

// Bool holds a boolean parameter.
type Bool bool

func (value Bool) Kind() Kind { return KindBool }

// Null marks a parameter that was present in the payload with an explicit null value.
type Null struct{}

func (value Null) Kind() Kind { return KindNull }

// List holds a parameter that appeared multiple times, or a payload array.
type List []Param

func (value List) Kind() Kind { return KindList }

// Mapping holds a nested object payload, keyed by field name.
type Mapping map[string]Param

func (value Mapping) Kind() Kind { return KindMap }

// FormFile is a single file part decoded from a multipart form body.
type FormFile struct {
	// File name as declared by the sender.
	Filename string

	// Size of the file content in bytes.
	Size int64

	// MIME header of the individual part.
	Header textproto.MIMEHeader

	fileHeader *multipart.FileHeader
}

// Wraps a parsed multipart file header as a FormFile parameter.
func NewFormFile(fileHeader *multipart.FileHeader) *FormFile {
	return &FormFile{
		Filename:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Header:     fileHeader.Header,
		fileHeader: fileHeader,
	}
}

func (file *FormFile) Kind() Kind { return KindFile }

// Open the file part for reading its content.
func (file *FormFile) Open() (multipart.File, error) {
	return file.fileHeader.Open()
}

// BinData holds a raw binary blob parameter, like a bson binary field.
type BinData []byte

func (value BinData) Kind() Kind { return KindBinary }

/*
FromInterface converts a value decoded into interface{} form (as produced by json,
yaml, or bson decoders) to the equivalent Param. Maps with interface{} keys (as
yaml produces) have their keys rendered with fmt.Sprint. Bson binary fields become
BinData, except legacy uuid binaries (subtype 0x3), which become their canonical
string form. Values of types with no direct Param representation fall back to their
fmt.Sprint rendering as a String.
*/
func FromInterface(value interface{}) Param {
	switch converted := value.(type) {
	case nil:
		return Null{}
	case string:
		return String(converted)
	case bool:
		return Bool(converted)
	case int:
		return Number(converted)
	case int8:
		return Number(converted)
	case int16:
		return Number(converted)
	case int32:
		return Number(converted)
	case int64:
		return Number(converted)
	case uint:
		return Number(converted)
	case uint8:
		return Number(converted)
	case uint16:
		return Number(converted)
	case uint32:
		return Number(converted)
	case uint64:
		return Number(converted)
	case float32:
		return Number(converted)
	case float64:
		return Number(converted)
	case []byte:
		return BinData(converted)
	case primitive.Binary:
		return fromBsonBinary(converted)
	case []interface{}:
		list := make(List, len(converted))
		for index, item := range converted {
			list[index] = FromInterface(item)
		}
		return list
	case map[string]interface{}:
		mapping := make(Mapping, len(converted))
		for key, item := range converted {
			mapping[key] = FromInterface(item)
		}
		return mapping
	case map[interface{}]interface{}:
		mapping := make(Mapping, len(converted))
		for key, item := range converted {
			mapping[fmt.Sprint(key)] = FromInterface(item)
		}
		return mapping
	}

	return String(fmt.Sprint(value))
}

// Bson binary fields surface as BinData, except subtype 0x3 (legacy uuid), which
// surfaces as the uuid's canonical string form. Malformed uuid data stays binary.
func fromBsonBinary(value primitive.Binary) Param {
	if value.Subtype == 0x3 {
		if valueUUID, err := uuid.FromBytes(value.Data); err == nil {
			return String(valueUUID.String())
		}
	}

	return BinData(value.Data)
}

/*
FromValues flattens a parsed form value map (as produced by url.ParseQuery or a
multipart form) into a Mapping. Fields that appeared once become String values,
repeated fields become a List of String values.
*/
func FromValues(values map[string][]string) Mapping {
	mapping := make(Mapping, len(values))

	for key, valueList := range values {
		if len(valueList) == 1 {
			mapping[key] = String(valueList[0])
			continue
		}

		list := make(List, len(valueList))
		for index, value := range valueList {
			list[index] = String(value)
		}
		mapping[key] = list
	}

	return mapping
}

/*
ToInterface converts a Param back to its plain interface{} form: String to string,
Number to float64, Bool to bool, Null to nil, List to []interface{}, Mapping to
map[string]interface{}, BinData to []byte. FormFile params are returned as-is.
*/
func ToInterface(param Param) interface{} {
	switch converted := param.(type) {
	case nil:
		return nil
	case String:
		return string(converted)
	case Number:
		return float64(converted)
	case Bool:
		return bool(converted)
	case Null:
		return nil
	case BinData:
		return []byte(converted)
	case List:
		list := make([]interface{}, len(converted))
		for index, item := range converted {
			list[index] = ToInterface(item)
		}
		return list
	case Mapping:
		mapping := make(map[string]interface{}, len(converted))
		for key, item := range converted {
			mapping[key] = ToInterface(item)
		}
		return mapping
	}

	return param
}
