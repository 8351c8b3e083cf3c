package encoding

import (
	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"golang.org/x/xerrors"
	"io"
	"reflect"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// BsonListSepString is a delimiter for top-level bson lists, which bson does not
// normally support. When multiple documents are being sent in a single payload, the
// unicode SYMBOL FOR RECORD SEPARATOR is used.
// (http://fileformat.info/info/unicode/char/241e/index.htm)
const BsonListSepString = "␞"

// BsonListSepBytes is a byte representation of BsonListSepString.
var BsonListSepBytes = []byte(BsonListSepString)

// BsonCodecOpts holds options for registering new BSON codecs with BodyEngine.
type BsonCodecOpts struct {
	// Type this codec handles encoding / decoding to.
	ValueType reflect.Type

	// Codec to register for this type.
	Codec bsoncodec.ValueCodec
}

var defaultBsonCodecs = []*BsonCodecOpts{
	{
		ValueType: reflect.TypeOf(uuid.UUID{}),
		Codec:     bsonCodecUUID{},
	},
}

// CODECS

// bsonCodecUUID Handles encoding and decoding of UUID to and from bson.
type bsonCodecUUID struct{}

// Encodes uuid value to bson.
func (codec bsonCodecUUID) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueUUID, _ := value.Interface().(uuid.UUID)
	_ = valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)

	return nil
}

// Decodes uuid value from bson.
func (codec bsonCodecUUID) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	bytesUUID, _, _ := valueReader.ReadBinary()
	uuidVal, err := uuid.FromBytes(bytesUUID)

	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(uuidVal))

	return nil
}

// BSON decoder / encoder. The encoder is registered on BodyEngine by default, the
// decoder is opt-in through Engine.SetDecoder().
type bsonCodec struct{}

// NewBSONDecoder returns the bson body decoder. It is not registered by default,
// services that accept bson request bodies register it:
//
//	engine.SetDecoder(mimetype.BSON, encoding.NewBSONDecoder())
func NewBSONDecoder() BodyDecoder {
	return &bsonCodec{}
}

// Request bodies are a single document decoded to a field mapping.
func (decoder *bsonCodec) DecodeBody(
	engine Engine, reader io.Reader, info *ContentInfo,
) (reqtypes.Mapping, error) {
	bodyEngine := engine.(*BodyEngine)

	document, err := bson.NewFromIOReader(reader)
	if err != nil {
		return nil, err
	}

	decoded := make(map[string]interface{})
	err = bson.UnmarshalWithRegistry(bodyEngine.bsonRegistry, document, &decoded)
	if err != nil {
		return nil, err
	}

	data := make(reqtypes.Mapping, len(decoded))
	for name, value := range decoded {
		data[name] = reqtypes.FromInterface(value)
	}

	return data, nil
}

func (encoder *bsonCodec) encodeSingle(
	bodyEngine *BodyEngine, writer io.Writer, content interface{},
) error {
	var bodyBSON bson.Raw

	incomingRaw, isRaw := content.(*bson.Raw)

	if !isRaw {
		marshalled, err := bson.MarshalWithRegistry(bodyEngine.bsonRegistry, content)
		if err != nil {
			return err
		}
		bodyBSON = marshalled
	} else {
		bodyBSON = *incomingRaw
	}

	_, err := writer.Write(bodyBSON)
	return err
}

// Used to encode multiple bson objects to a single payload.
func (encoder *bsonCodec) encodeMany(
	bodyEngine *BodyEngine, writer io.Writer, content *reflect.Value,
) error {
	// We need to know when we are on the final index so if we hit the last item we
	// know that we don't need to write the separator.
	finalIndex := content.Len() - 1

	for arrayIndex := 0; arrayIndex <= finalIndex; arrayIndex++ {
		// We have to use reflect to grab the items since we don't know what type they
		// are.
		listValue := content.Index(arrayIndex)

		// Encode this single item.
		err := encoder.encodeSingle(bodyEngine, writer, listValue.Interface())
		if err != nil {
			return err
		}

		// Write the delimiter if we are not on the final item.
		if arrayIndex != finalIndex {
			_, err = writer.Write(BsonListSepBytes)
			if err != nil {
				return xerrors.Errorf(
					"error writing document separator: %w", err,
				)
			}
		}
	}
	return nil
}

// Detects whether content to encode is a sequence (array or slice)
func (encoder *bsonCodec) isSequence(value *reflect.Value) bool {
	return value.Kind() == reflect.Slice || value.Kind() == reflect.Array
}

// Encodes bson content
func (encoder *bsonCodec) EncodePayload(
	engine Engine, writer io.Writer, content interface{},
) (err error) {
	bodyEngine := engine.(*BodyEngine)

	// Check if the value is a slice or an array.
	contentValue := reflect.Indirect(reflect.ValueOf(content))
	// Check that it is not a raw document.
	_, isRaw := content.(*bson.Raw)

	if encoder.isSequence(&contentValue) && !isRaw {
		err = encoder.encodeMany(bodyEngine, writer, &contentValue)
	} else {
		err = encoder.encodeSingle(bodyEngine, writer, content)
	}

	return err
}
