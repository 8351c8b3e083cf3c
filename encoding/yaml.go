package encoding

import (
	"gopkg.in/yaml.v2"
	"io"

	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

// YAML decoder / encoder. The encoder is registered on BodyEngine by default, the
// decoder is opt-in through Engine.SetDecoder().
type yamlCodec struct{}

// NewYAMLDecoder returns the yaml body decoder. It is not registered by default,
// services that accept yaml request bodies register it:
//
//	engine.SetDecoder(mimetype.YAML, encoding.NewYAMLDecoder())
func NewYAMLDecoder() BodyDecoder {
	return &yamlCodec{}
}

func (decoder *yamlCodec) DecodeBody(
	engine Engine, reader io.Reader, info *ContentInfo,
) (reqtypes.Mapping, error) {
	decoded := make(map[string]interface{})
	if err := yaml.NewDecoder(reader).Decode(&decoded); err != nil {
		return nil, err
	}

	data := make(reqtypes.Mapping, len(decoded))
	for name, value := range decoded {
		data[name] = reqtypes.FromInterface(value)
	}

	return data, nil
}

func (encoder *yamlCodec) EncodePayload(
	engine Engine, writer io.Writer, content interface{},
) error {
	yamlEncoder := yaml.NewEncoder(writer)
	if err := yamlEncoder.Encode(content); err != nil {
		return err
	}
	return yamlEncoder.Close()
}
