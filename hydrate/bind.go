package hydrate

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// BindErrors is an error type that maps body field names to errors encountered
// while binding their values.
type BindErrors map[string]error

// Error returns the full error string across all failed fields.
func (errs BindErrors) Error() string {
	buff := bytes.NewBufferString("bind errors:\n\n")
	for name, err := range errs {
		buff.WriteString(" * ")
		buff.WriteString(name)
		buff.WriteString(": ")
		buff.WriteString(err.Error())
		buff.WriteString("\n")
	}
	return buff.String()
}

// Set stores err under field when err is non-nil, reporting whether the field bound
// cleanly.
func (errs BindErrors) Set(field string, err error) bool {
	if err != nil {
		errs[field] = err
	}
	return err == nil
}

var (
	paramType    = reflect.TypeOf((*reqtypes.Param)(nil)).Elem()
	formFileType = reflect.TypeOf((*reqtypes.FormFile)(nil))
)

/*
Bind populates a struct from the decoded body parameters, so handlers can work with
typed request structs instead of indexing the body mapping by hand.

Field tags take the format `request:"name,option"`:

• name locates the body field. An empty name falls back to the lowercased Go field
name, the name "-" skips the field.

• The "required" option makes an absent body field a bind error. Absent fields are
otherwise left at their current value.

String-sourced values (form and multipart fields) are converted to the target kind
with strconv. Mapping values bind to nested structs, List values to slices, and
multipart file parts to *reqtypes.FormFile fields. A field typed as reqtypes.Param
takes the decoded value untouched.

target must be a pointer to a struct. Per-field failures are collected in a
BindErrors error rather than stopping at the first problem.
*/
func (request *Request) Bind(target interface{}) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr ||
		targetValue.Elem().Kind() != reflect.Struct {
		return xerrors.New("bind target must be a pointer to a struct")
	}

	bindErrs := make(BindErrors)
	bindMapping(request.parsedBody.Data, targetValue.Elem(), bindErrs)

	if len(bindErrs) > 0 {
		return bindErrs
	}
	return nil
}

// Resolves the body field a struct field binds to: the request tag's name, falling
// back to the lowercased Go field name.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("request")
	if comma := strings.Index(tag, ","); comma >= 0 {
		tag = tag[:comma]
	}

	if tag != "" {
		return tag
	}
	return strings.ToLower(field.Name)
}

// Whether the field's request tag carries the required option.
func fieldRequired(field reflect.StructField) bool {
	tag := field.Tag.Get("request")
	comma := strings.Index(tag, ",")
	if comma < 0 {
		return false
	}

	for _, option := range strings.Split(tag[comma+1:], ",") {
		if option == "required" {
			return true
		}
	}
	return false
}

func bindMapping(
	data reqtypes.Mapping, targetValue reflect.Value, bindErrs BindErrors,
) {
	targetType := targetValue.Type()

	for index := 0; index < targetValue.NumField(); index++ {
		field := targetType.Field(index)
		fieldValue := targetValue.Field(index)

		// Unexported fields are not bound.
		if field.PkgPath != "" {
			continue
		}

		name := fieldName(field)
		if name == "-" {
			continue
		}

		param, ok := data[name]
		if !ok || param == nil {
			if fieldRequired(field) {
				bindErrs.Set(name, xerrors.New("required field absent from body"))
			}
			continue
		}

		bindErrs.Set(name, bindField(fieldValue, param))
	}
}

func bindField(fieldValue reflect.Value, param reqtypes.Param) error {
	// *FormFile fields take file parts directly.
	if fieldValue.Type() == formFileType {
		file, isFile := param.(*reqtypes.FormFile)
		if !isFile {
			return xerrors.New("body field is not a file part")
		}
		fieldValue.Set(reflect.ValueOf(file))
		return nil
	}

	// Param fields take the decoded value untouched.
	if fieldValue.Type() == paramType {
		fieldValue.Set(reflect.ValueOf(param))
		return nil
	}

	switch fieldValue.Kind() {
	case reflect.String:
		stringValue, isString := param.(reqtypes.String)
		if !isString {
			return xerrors.Errorf("cannot bind %T to string field", param)
		}
		fieldValue.SetString(string(stringValue))

	case reflect.Bool:
		switch converted := param.(type) {
		case reqtypes.Bool:
			fieldValue.SetBool(bool(converted))
		case reqtypes.String:
			parsed, err := strconv.ParseBool(string(converted))
			if err != nil {
				return xerrors.Errorf("error parsing bool: %w", err)
			}
			fieldValue.SetBool(parsed)
		default:
			return xerrors.Errorf("cannot bind %T to bool field", param)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch converted := param.(type) {
		case reqtypes.Number:
			fieldValue.SetInt(int64(converted))
		case reqtypes.String:
			parsed, err := strconv.ParseInt(string(converted), 10, 64)
			if err != nil {
				return xerrors.Errorf("error parsing int: %w", err)
			}
			fieldValue.SetInt(parsed)
		default:
			return xerrors.Errorf("cannot bind %T to int field", param)
		}

	case reflect.Float32, reflect.Float64:
		switch converted := param.(type) {
		case reqtypes.Number:
			fieldValue.SetFloat(float64(converted))
		case reqtypes.String:
			parsed, err := strconv.ParseFloat(string(converted), 64)
			if err != nil {
				return xerrors.Errorf("error parsing float: %w", err)
			}
			fieldValue.SetFloat(parsed)
		default:
			return xerrors.Errorf("cannot bind %T to float field", param)
		}

	case reflect.Slice:
		// Binary params fill byte slice fields whole, not element-wise.
		if binData, isBinary := param.(reqtypes.BinData); isBinary {
			byteSlice := reflect.ValueOf([]byte(binData))
			if !byteSlice.Type().AssignableTo(fieldValue.Type()) {
				return xerrors.Errorf(
					"cannot bind %T to %v field", param, fieldValue.Type(),
				)
			}
			fieldValue.Set(byteSlice)
			return nil
		}
		return bindSlice(fieldValue, param)

	case reflect.Struct:
		mapping, isMapping := param.(reqtypes.Mapping)
		if !isMapping {
			return xerrors.Errorf("cannot bind %T to struct field", param)
		}

		nestedErrs := make(BindErrors)
		bindMapping(mapping, fieldValue, nestedErrs)
		if len(nestedErrs) > 0 {
			return nestedErrs
		}

	case reflect.Ptr:
		if !fieldValue.IsNil() {
			return bindField(fieldValue.Elem(), param)
		}
		// A nil field stays nil when the bind fails.
		element := reflect.New(fieldValue.Type().Elem())
		if err := bindField(element.Elem(), param); err != nil {
			return err
		}
		fieldValue.Set(element)

	default:
		return xerrors.Errorf("no binding for field kind %v", fieldValue.Kind())
	}

	return nil
}

func bindSlice(fieldValue reflect.Value, param reqtypes.Param) error {
	list, isList := param.(reqtypes.List)
	if !isList {
		// A field sent once arrives as a bare value. It binds as a one-element
		// slice, matching how repeated form fields collapse.
		list = reqtypes.List{param}
	}

	slice := reflect.MakeSlice(fieldValue.Type(), len(list), len(list))
	for index, item := range list {
		if err := bindField(slice.Index(index), item); err != nil {
			return xerrors.Errorf("error binding element %v: %w", index, err)
		}
	}

	fieldValue.Set(slice)
	return nil
}
