package hydrate_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"mime/multipart"
	"testing"

	"github.com/illuscio-dev/spanreq-go/encoding"
	"github.com/illuscio-dev/spanreq-go/hydrate"
	"github.com/illuscio-dev/spanreq-go/mimetype"
	"github.com/illuscio-dev/spanreq-go/reqtypes"
)

type Dimensions struct {
	Width  float64 `request:"width"`
	Height float64 `request:"height"`
}

type WidgetOrder struct {
	Name       string     `request:"name"`
	Count      int        `request:"count"`
	Price      float64    `request:"price"`
	Rush       bool       `request:"rush"`
	Notes      string
	Tags       []string       `request:"tags"`
	Dimensions Dimensions     `request:"dimensions"`
	Raw        reqtypes.Param `request:"name"`
	Skipped    string         `request:"-"`

	hidden string
}

// Hydrates a request and binds its body into target, failing the test on any error.
func bindBody(
	test *testing.T, body string, contentType string, target interface{},
) {
	httpRequest := newTestRequest(test, "POST", "/widgets", body, contentType)

	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	if err = request.Bind(target); err != nil {
		test.Error(err)
	}
}

func TestBindJsonBody(test *testing.T) {
	assert := assert.New(test)

	body := `{` +
		`"name":"lantern",` +
		`"count":3,` +
		`"price":19.95,` +
		`"rush":true,` +
		`"notes":"engraved",` +
		`"tags":["brass","small"],` +
		`"dimensions":{"width":4.5,"height":7.25},` +
		`"skipped":"should not land",` +
		`"hidden":"should not land"` +
		`}`

	order := &WidgetOrder{}
	bindBody(test, body, "application/json", order)

	assert.Equal("lantern", order.Name)
	assert.Equal(3, order.Count)
	assert.Equal(19.95, order.Price)
	assert.True(order.Rush)
	assert.Equal("engraved", order.Notes)
	assert.Equal([]string{"brass", "small"}, order.Tags)
	assert.Equal(Dimensions{Width: 4.5, Height: 7.25}, order.Dimensions)
	assert.Equal(reqtypes.String("lantern"), order.Raw)
	assert.Equal("", order.Skipped)
	assert.Equal("", order.hidden)
}

func TestBindFormBody(test *testing.T) {
	assert := assert.New(test)

	body := "name=lantern&count=2&price=9.5&rush=true&tags=brass&tags=small"

	order := &WidgetOrder{}
	bindBody(test, body, "application/x-www-form-urlencoded", order)

	assert.Equal("lantern", order.Name)
	assert.Equal(2, order.Count)
	assert.Equal(9.5, order.Price)
	assert.True(order.Rush)
	assert.Equal([]string{"brass", "small"}, order.Tags)
}

// A field sent once still binds into a slice field.
func TestBindSingleValueToSlice(test *testing.T) {
	assert := assert.New(test)

	order := &WidgetOrder{}
	bindBody(test, "tags=brass", "application/x-www-form-urlencoded", order)

	assert.Equal([]string{"brass"}, order.Tags)
}

func TestBindPointerField(test *testing.T) {
	assert := assert.New(test)

	target := &struct {
		Count *int `request:"count"`
	}{}
	bindBody(test, `{"count":3}`, "application/json", target)

	if !assert.NotNil(target.Count) {
		test.FailNow()
	}
	assert.Equal(3, *target.Count)
}

// A failed bind leaves a nil pointer field nil rather than pointing at a zero value.
func TestBindPointerFieldError(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test, "POST", "/widgets", "count=abc", "application/x-www-form-urlencoded",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	target := &struct {
		Count *int `request:"count"`
	}{}
	err = request.Bind(target)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(
		bindErrs["count"],
		`error parsing int: strconv.ParseInt: parsing "abc": invalid syntax`,
	)
	assert.Nil(target.Count)
}

// Absent fields keep whatever value the target already holds.
func TestBindAbsentFieldUntouched(test *testing.T) {
	assert := assert.New(test)

	order := &WidgetOrder{Notes: "keep me"}
	bindBody(test, `{"name":"lantern"}`, "application/json", order)

	assert.Equal("lantern", order.Name)
	assert.Equal("keep me", order.Notes)
}

func TestBindRequiredFieldMissing(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test, "POST", "/widgets", `{"name":"lantern"}`, "application/json",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	target := &struct {
		Supplier string `request:"supplier,required"`
	}{}
	err = request.Bind(target)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(bindErrs["supplier"], "required field absent from body")
	assert.Contains(err.Error(), "bind errors:")
	assert.Contains(err.Error(), " * supplier: required field absent from body")
}

func TestBindTypeMismatch(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test, "POST", "/widgets", `{"rush":5}`, "application/json",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	order := &WidgetOrder{}
	err = request.Bind(order)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(bindErrs["rush"], "cannot bind reqtypes.Number to bool field")
}

func TestBindBadIntString(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test, "POST", "/widgets", "count=abc", "application/x-www-form-urlencoded",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	order := &WidgetOrder{}
	err = request.Bind(order)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(
		bindErrs["count"],
		`error parsing int: strconv.ParseInt: parsing "abc": invalid syntax`,
	)
}

func TestBindNestedStructError(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test,
		"POST",
		"/widgets",
		`{"dimensions":{"width":"wide"}}`,
		"application/json",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	order := &WidgetOrder{}
	err = request.Bind(order)

	bindErrs := err.(hydrate.BindErrors)
	assert.Contains(bindErrs["dimensions"].Error(), "error parsing float")
}

func TestBindSliceElementError(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test,
		"POST",
		"/widgets",
		`{"tags":["brass",7]}`,
		"application/json",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	order := &WidgetOrder{}
	err = request.Bind(order)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(
		bindErrs["tags"],
		"error binding element 1: cannot bind reqtypes.Number to string field",
	)
}

func TestBindFileField(test *testing.T) {
	assert := assert.New(test)

	bodyBuffer := new(bytes.Buffer)
	writer := multipart.NewWriter(bodyBuffer)

	if err := writer.WriteField("title", "annual report"); err != nil {
		test.Error(err)
	}
	filePart, err := writer.CreateFormFile("upload", "report.pdf")
	if err != nil {
		test.Error(err)
	}
	if _, err = filePart.Write([]byte("fake pdf bytes")); err != nil {
		test.Error(err)
	}
	if err = writer.Close(); err != nil {
		test.Error(err)
	}

	target := &struct {
		Title  string             `request:"title"`
		Upload *reqtypes.FormFile `request:"upload"`
	}{}
	bindBody(
		test, bodyBuffer.String(), writer.FormDataContentType(), target,
	)

	assert.Equal("annual report", target.Title)
	if !assert.NotNil(target.Upload) {
		test.FailNow()
	}
	assert.Equal("report.pdf", target.Upload.Filename)
}

func TestBindBinaryField(test *testing.T) {
	assert := assert.New(test)

	engine, err := encoding.NewBodyEngine()
	if err != nil {
		test.Error(err)
	}
	engine.SetDecoder(mimetype.BSON, encoding.NewBSONDecoder())

	bodyBytes, err := bson.Marshal(bson.M{
		"name": "lantern",
		"seal": primitive.Binary{Subtype: 0x0, Data: []byte{1, 2, 3}},
	})
	if err != nil {
		test.Error(err)
	}

	httpRequest := newTestRequest(
		test, "POST", "/widgets", string(bodyBytes), "application/bson",
	)
	request, err := hydrate.Hydrate(
		httpRequest, nil, &hydrate.Options{Engine: engine},
	)
	if err != nil {
		test.Error(err)
	}

	target := &struct {
		Name string `request:"name"`
		Seal []byte `request:"seal"`
	}{}
	if err = request.Bind(target); err != nil {
		test.Error(err)
	}

	assert.Equal("lantern", target.Name)
	assert.Equal([]byte{1, 2, 3}, target.Seal)

	badTarget := &struct {
		Seal []string `request:"seal"`
	}{}
	err = request.Bind(badTarget)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(
		bindErrs["seal"], "cannot bind reqtypes.BinData to []string field",
	)
}

func TestBindNonFileToFileField(test *testing.T) {
	assert := assert.New(test)

	httpRequest := newTestRequest(
		test,
		"POST",
		"/widgets",
		"upload=oops",
		"application/x-www-form-urlencoded",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	target := &struct {
		Upload *reqtypes.FormFile `request:"upload"`
	}{}
	err = request.Bind(target)

	bindErrs := err.(hydrate.BindErrors)
	assert.EqualError(bindErrs["upload"], "body field is not a file part")
}

func TestBindBadTarget(test *testing.T) {
	httpRequest := newTestRequest(
		test, "POST", "/widgets", `{"name":"lantern"}`, "application/json",
	)
	request, err := hydrate.Hydrate(httpRequest, nil, nil)
	if err != nil {
		test.Error(err)
	}

	testNil := func(subTest *testing.T) {
		assert.EqualError(
			subTest, request.Bind(nil), "bind target must be a pointer to a struct",
		)
	}
	testNotPointer := func(subTest *testing.T) {
		assert.EqualError(
			subTest,
			request.Bind(WidgetOrder{}),
			"bind target must be a pointer to a struct",
		)
	}
	testPointerToNonStruct := func(subTest *testing.T) {
		count := 0
		assert.EqualError(
			subTest,
			request.Bind(&count),
			"bind target must be a pointer to a struct",
		)
	}

	test.Run("Nil", testNil)
	test.Run("NotPointer", testNotPointer)
	test.Run("PointerToNonStruct", testPointerToNonStruct)
}
