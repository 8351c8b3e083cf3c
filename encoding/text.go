package encoding

import (
	"fmt"
	"io"
)

// Handles encoding to text/plain
type textEncoder struct{}

func (handler *textEncoder) EncodePayload(
	engine Engine, writer io.Writer, content interface{},
) error {
	contentString := fmt.Sprint(content)
	_, err := io.WriteString(writer, contentString)

	return err
}
