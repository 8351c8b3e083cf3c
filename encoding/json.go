package encoding

import (
	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
	"io"
	"reflect"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// JSONExtensionOpts holds options For Json Handle extension to add to the handle on
// server setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// defaultJSONExtensions holds all the JSONExtensionOpts to add to the JSONHandle on
// server setup
var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(uuid.UUID{}),
		ExtInterface: &jsonExtUUID{},
	},
}

// Converts UUID fields to / from their canonical json string form.
type jsonExtUUID struct{}

func (ext *jsonExtUUID) ConvertExt(value interface{}) interface{} {
	switch valueUUID := value.(type) {
	case uuid.UUID:
		return valueUUID.String()
	case *uuid.UUID:
		return valueUUID.String()
	}

	panic(xerrors.New("unsupported uuid type"))
}

func (ext *jsonExtUUID) UpdateExt(dest interface{}, value interface{}) {
	destUUID := dest.(*uuid.UUID)

	valueStr, ok := value.(string)
	if !ok {
		panic(xerrors.New("uuid json value must be a string"))
	}

	valueUUID, err := uuid.FromString(valueStr)
	if err != nil {
		panic(xerrors.Errorf("error parsing uuid: %w", err))
	}

	*destUUID = valueUUID
}

// default JSON decoder / encoder for BodyEngine.
type jsonCodec struct{}

func (decoder *jsonCodec) DecodeBody(
	engine Engine, reader io.Reader, info *ContentInfo,
) (reqtypes.Mapping, error) {
	bodyEngine := engine.(*BodyEngine)

	// Json bodies must be a top-level object, so decode straight into a string map.
	// Arrays and scalars error out of the codec decoder here.
	decoded := make(map[string]interface{})
	jsonDecoder := codec.NewDecoder(reader, bodyEngine.jsonHandle)
	if err := jsonDecoder.Decode(&decoded); err != nil {
		return nil, err
	}

	data := make(reqtypes.Mapping, len(decoded))
	for name, value := range decoded {
		data[name] = reqtypes.FromInterface(value)
	}

	return data, nil
}

func (encoder *jsonCodec) EncodePayload(
	engine Engine, writer io.Writer, content interface{},
) error {
	bodyEngine := engine.(*BodyEngine)
	jsonEncoder := codec.NewEncoder(writer, bodyEngine.jsonHandle)
	return jsonEncoder.Encode(content)
}
