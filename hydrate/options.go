package hydrate

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/reqerrors"
)

// Bytes in one megabyte for converting the configured multipart allocation.
const bytesPerMegabyte = 1048576

// DefaultMultipartMemoryMB caps in-memory multipart decoding when no allocation is
// configured.
const DefaultMultipartMemoryMB = 128

// MemoryAllocation configures decode-time memory ceilings, in megabytes.
type MemoryAllocation struct {
	// Megabytes allowed for decoding one multipart/form-data body.
	MultipartFormData int `yaml:"multipart_form_data"`
}

/*
Options configures the hydration of a request.

The zero value is valid: no headers are merged, negotiation falls back to
application/json, multipart decoding allows 128 MB in memory, and the shared default
engine decodes the body.
*/
type Options struct {
	// Headers to merge into the request before anything else happens. Values here
	// overwrite same-named request headers.
	Headers map[string]string `yaml:"headers"`

	// Response content type negotiated when the request supplies none of the
	// negotiation sources.
	DefaultResponseContentType string `yaml:"default_response_content_type"`

	// Decode-time memory ceilings.
	MemoryAllocation MemoryAllocation `yaml:"memory_allocation"`

	// Engine used to decode the body. Nil uses the shared default engine.
	Engine encoding.Engine `yaml:"-"`
}

/*
MultipartMemoryBytes returns the multipart decode ceiling in bytes: the configured
megabyte count times 1,048,576, defaulting to 128 MB when the allocation is unset or
not positive. The receiver is never mutated.
*/
func (options *Options) MultipartMemoryBytes() int64 {
	megabytes := options.MemoryAllocation.MultipartFormData
	if megabytes <= 0 {
		megabytes = DefaultMultipartMemoryMB
	}

	return int64(megabytes) * bytesPerMegabyte
}

// Selects the engine hydration decodes with.
func (options *Options) engine() encoding.Engine {
	if options.Engine != nil {
		return options.Engine
	}

	return DefaultEngine()
}

// LoadOptions reads Options from a yaml file.
func LoadOptions(path string) (*Options, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, reqerrors.OptionsError.New(
			"could not read options file "+path, nil, err,
		)
	}

	options := &Options{}
	if err := yaml.Unmarshal(fileBytes, options); err != nil {
		return nil, reqerrors.OptionsError.New(
			"could not parse options file "+path, nil, err,
		)
	}

	return options, nil
}

var defaultEngine = makeDefaultEngine()

func makeDefaultEngine() encoding.Engine {
	engine, err := encoding.NewBodyEngine()
	if err != nil {
		panic(xerrors.Errorf("error creating default body engine: %w", err))
	}
	return engine
}

// DefaultEngine returns the engine used when Options.Engine is nil.
func DefaultEngine() encoding.Engine {
	return defaultEngine
}

// SetDefaultEngine replaces the shared default engine. Meant for service setup,
// before requests are flowing, like all engine registration.
func SetDefaultEngine(engine encoding.Engine) {
	defaultEngine = engine
}
