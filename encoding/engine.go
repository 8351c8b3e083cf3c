package encoding

import (
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
	"io"
	"reflect"

	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

import "github.com/ugorji/go/codec"

// Type helpers
type decoderMapping map[mimetype.MimeType]BodyDecoder
type encoderMapping map[mimetype.MimeType]PayloadEncoder

/*
Engine details the contract for a request content engine. The goal of the engine is
to allow a common decoding methodology for any supported request body mimetype and a
common encoding methodology for negotiated response payloads, so that support for a
content type is added once and shared by every route of a service.
*/
type Engine interface {
	// Registers a decoder for request bodies of a given mimetype.
	SetDecoder(mimeType mimetype.MimeType, decoder BodyDecoder)

	// Registers an encoder for response payloads of a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder PayloadEncoder)

	// Returns true if the engine has a registered decoder for the mimetype.
	HandlesDecode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Decode a request body from reader using the decoder registered for info.Type.
	// Decoded content is returned as a field name -> value mapping.
	DecodeBody(info *ContentInfo, reader io.Reader) (reqtypes.Mapping, error)

	// Encode content as mimeType to writer using the registered encoder.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
	) error
}

/*
BodyEngine is the default implementation of the Engine interface. Implementation is
done through an Interface so that the Engine can be extended through type wrapping.

Instantiation

Use NewBodyEngine() to create a new BodyEngine.

Default Body Decoders

• application/x-www-form-urlencoded

• application/json

• multipart/form-data

Decoders for application/bson and application/yaml ship with this package but are NOT
registered by default. A request body of a type with no registered decoder is not an
error, it is simply left undecoded, so services that want bson or yaml request
bodies opt in with SetDecoder().

Default Payload Encoders

• application/json

• text/plain

• application/yaml

• application/bson

Default JSON Extensions

BodyEngine uses the codec library to encode/decode json
(https://godoc.org/github.com/ugorji/go/codec), which allows the definition of
extensions. BodyEngine ships with the following types handled:

• UUIDs from "github.com/satori/go.uuid" are rendered as their canonical string form.

Additional json extensions can be registered through AddJSONExtensions() by passing
a slice of JSONExtensionOpts objects.

Default BSON Codecs

BodyEngine handles the encoding and decoding of Bson data through the official bson
driver (https://godoc.org/go.mongodb.org/mongo-driver).

See information on defining a bson codec
here: https://godoc.org/go.mongodb.org/mongo-driver/bson/bsoncodec

The following type extensions ship with BodyEngine:

• primitive.Binary of subtype 0x3 can be decoded to / encoded from UUID objects from
"github.com/satori/go.uuid".

Additional codecs can be registered through AddBSONCodecs().

Default Text/Plain Returns

When encoding to plaintext, format.Sprint is used on the passed object, so any type
can be sent and represented as text.

Panics

If an encoder or decoder panics during execution, that panic is caught and returned as
an error.
*/
type BodyEngine struct {
	// MimeType:BodyDecoder mapping
	decoders decoderMapping
	// MimeType:PayloadEncoder mapping
	encoders encoderMapping

	// JSON handle for default JSON decoder / encoder
	jsonHandle *codec.JsonHandle
	// BSON registry for default BSON decoder / encoder
	bsonRegistry *bsoncodec.Registry
	// BSON codecs
	bsonCodecs []*BsonCodecOpts
	// Engine to pass to BodyDecoder.DecodeBody() and PayloadEncoder.EncodePayload()
	// methods.
	passedEngine Engine
}

// Change the engine passed into BodyDecoder.DecodeBody() and
// PayloadEncoder.EncodePayload()
func (engine *BodyEngine) SetPassedEngine(newEngine Engine) {
	engine.passedEngine = newEngine
}

// Register a decoder for a given mimeType
func (engine *BodyEngine) SetDecoder(
	mimeType mimetype.MimeType, decoder BodyDecoder,
) {
	engine.decoders[mimeType] = decoder
}

// Register an encoder for a given mimeType
func (engine *BodyEngine) SetEncoder(
	mimeType mimetype.MimeType, encoder PayloadEncoder,
) {
	engine.encoders[mimeType] = encoder
}

// Whether the BodyEngine has a registered decoder for mimeType.
func (engine *BodyEngine) HandlesDecode(mimeType mimetype.MimeType) bool {
	_, ok := engine.decoders[mimeType]
	return ok
}

// Whether the BodyEngine has a registered encoder for mimeType.
func (engine *BodyEngine) HandlesEncode(mimeType mimetype.MimeType) bool {
	_, ok := engine.encoders[mimeType]
	return ok
}

// Select what engine to pass into the decoder / encoder in case we are extending
// the engine type.
func (engine *BodyEngine) getEngine() (passEngine Engine) {
	if engine.passedEngine != nil {
		passEngine = engine.passedEngine
	} else {
		passEngine = engine
	}

	return passEngine
}

// Uses a decoder while catching panics to return as errors
func (engine *BodyEngine) safeDecode(
	decoder BodyDecoder, reader io.Reader, info *ContentInfo,
) (data reqtypes.Mapping, err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during decode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	data, err = decoder.DecodeBody(passEngine, reader, info)

	return data, err
}

// Uses an encoder while catching panics to return as errors
func (engine *BodyEngine) safeEncode(
	encoder PayloadEncoder, writer io.Writer, content interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during encode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = encoder.EncodePayload(passEngine, writer, content)
	return err
}

func (engine *BodyEngine) DecodeBody(
	info *ContentInfo, reader io.Reader,
) (reqtypes.Mapping, error) {
	// Close the reader if it's a closer.
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	decoder, ok := engine.decoders[info.Type]
	if !ok {
		return nil, xerrors.New("no decoder for " + string(info.Type))
	}

	data, err := engine.safeDecode(decoder, reader, info)
	if err != nil {
		return nil, xerrors.Errorf("decode err: %w", err)
	}

	return data, nil
}

func (engine *BodyEngine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
) error {
	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	err := engine.safeEncode(encoder, writer, content)
	if err != nil {
		return xerrors.Errorf(
			"encode err: %w", err,
		)
	}
	return nil
}

func (engine *BodyEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Returns the internal bsoncodec.Registry used by the bson encoder/decoder.
func (engine *BodyEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// Adds JSON extensions to handle.
func (engine *BodyEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, 1, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension to body engine: %w", err,
			)
		}
	}
	return nil
}

// Adds BSON codecs to engine for use when encoding/decoding bson data.
func (engine *BodyEngine) AddBSONCodecs(codecs []*BsonCodecOpts) error {
	// Store these codecs for later in case more are added by the end user and we need
	// to declare a new registry.
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)

	for _, codecOpts := range engine.bsonCodecs {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}

	// Build the bson registry.
	engine.bsonRegistry = builder.Build()

	return nil
}

func NewBodyEngine() (*BodyEngine, error) {
	// Create the json handle. Json objects decode to map[string]interface{} so
	// decoded bodies can be normalized to request params.
	jsonHandle := &codec.JsonHandle{}
	jsonHandle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	// Create the body engine.
	engine := &BodyEngine{
		decoders:     make(decoderMapping),
		encoders:     make(encoderMapping),
		jsonHandle:   jsonHandle,
		bsonRegistry: nil,
	}

	// Add the default decoders.
	engine.SetDecoder(mimetype.FORM, &formDecoder{})
	engine.SetDecoder(mimetype.JSON, &jsonCodec{})
	engine.SetDecoder(mimetype.MULTIPART, &multipartDecoder{})

	// Add the default encoders.
	engine.SetEncoder(mimetype.JSON, &jsonCodec{})
	engine.SetEncoder(mimetype.YAML, &yamlCodec{})
	engine.SetEncoder(mimetype.BSON, &bsonCodec{})
	engine.SetEncoder(mimetype.TEXT, &textEncoder{})

	// Add the default json extensions to the engine.
	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		err = xerrors.Errorf("error adding default json extensions: %w", err)
		return nil, err
	}

	// Add the default bson codecs to the engine.
	if err := engine.AddBSONCodecs(defaultBsonCodecs); err != nil {
		err = xerrors.Errorf("error adding default bson codecs: %w", err)
		return nil, err
	}

	return engine, nil
}
