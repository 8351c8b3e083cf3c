package hydrate_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"github.com/stretchr/testify/assert"
	"net/url"
	"pgregory.net/rapid"
	"testing"

	"github.com/illuscio-dev/spanreq-go/hydrate"
)

func ParameterizeSplitPath(test *testing.T, rawURL string, expected string) {
	assert.Equal(test, expected, hydrate.SplitPath(rawURL))
}

func TestSplitPath(test *testing.T) {
	testRoot := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "/", "/")
	}
	testNoQuery := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "/widgets/5", "/widgets/5")
	}
	testWithQuery := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "/widgets/5?limit=3", "/widgets/5")
	}
	testFirstMarkWins := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "/widgets?limit=3?offset=2", "/widgets")
	}
	testRootWithQuery := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "/?limit=3", "/")
	}
	testEmpty := func(subTest *testing.T) {
		ParameterizeSplitPath(test, "", "")
	}

	test.Run("Root", testRoot)
	test.Run("NoQuery", testNoQuery)
	test.Run("WithQuery", testWithQuery)
	test.Run("FirstMarkWins", testFirstMarkWins)
	test.Run("RootWithQuery", testRootWithQuery)
	test.Run("Empty", testEmpty)
}

func TestSplitQueryString(test *testing.T) {
	assert := assert.New(test)

	queryString, found := hydrate.SplitQueryString("/widgets?limit=3")
	assert.True(found)
	assert.Equal("limit=3", queryString)

	queryString, found = hydrate.SplitQueryString("/widgets")
	assert.False(found)
	assert.Equal("", queryString)

	queryString, found = hydrate.SplitQueryString("/widgets?")
	assert.True(found)
	assert.Equal("", queryString)
}

func TestQueryParams(test *testing.T) {
	assert := assert.New(test)

	params := hydrate.QueryParams("/widgets?limit=3&offset=2")

	assert.Equal("3", params["limit"])
	assert.Equal("2", params["offset"])
	assert.Len(params, 2)
}

// A repeated key keeps its last value.
func TestQueryParamsRepeatedKey(test *testing.T) {
	params := hydrate.QueryParams("/widgets?tag=rare&tag=fragile")

	assert.Equal(test, "fragile", params["tag"])
}

func TestQueryParamsEscapedValues(test *testing.T) {
	params := hydrate.QueryParams("/widgets?name=scrying+mirror&note=rare%26fragile")

	assert.Equal(test, "scrying mirror", params["name"])
	assert.Equal(test, "rare&fragile", params["note"])
}

func TestQueryParamsNoQuery(test *testing.T) {
	assert := assert.New(test)

	params := hydrate.QueryParams("/widgets")

	assert.NotNil(params)
	assert.Len(params, 0)
}

// Malformed query strings never error, they fall back to an empty map.
func TestQueryParamsParseFailure(test *testing.T) {
	assert := assert.New(test)

	testBadEscape := func(subTest *testing.T) {
		params := hydrate.QueryParams("/widgets?name=%zz")
		assert.NotNil(params)
		assert.Len(params, 0)
	}
	testSemicolon := func(subTest *testing.T) {
		params := hydrate.QueryParams("/widgets?limit=3;offset=2")
		assert.NotNil(params)
		assert.Len(params, 0)
	}
	testBadEscapeInKey := func(subTest *testing.T) {
		params := hydrate.QueryParams("/widgets?%zz=3")
		assert.NotNil(params)
		assert.Len(params, 0)
	}

	test.Run("BadEscape", testBadEscape)
	test.Run("Semicolon", testSemicolon)
	test.Run("BadEscapeInKey", testBadEscapeInKey)
}

// For any url with a query marker, SplitPath returns exactly the substring before
// the first '?'.
func TestSplitPathProperty(test *testing.T) {
	rapid.Check(test, func(t *rapid.T) {
		path := rapid.StringMatching(`/[a-zA-Z0-9/._~-]{0,24}`).Draw(t, "path")
		query := rapid.StringMatching(`[a-zA-Z0-9=&?%]{0,24}`).Draw(t, "query")

		rawURL := path + "?" + query

		if got := hydrate.SplitPath(rawURL); got != path {
			t.Fatalf("SplitPath(%q) = %q, want %q", rawURL, got, path)
		}

		queryString, found := hydrate.SplitQueryString(rawURL)
		if !found {
			t.Fatalf("SplitQueryString(%q) found no query", rawURL)
		}
		if queryString != query {
			t.Fatalf(
				"SplitQueryString(%q) = %q, want %q", rawURL, queryString, query,
			)
		}
	})
}

// Encoding any value set and decoding it back keeps the last value of every key.
func TestQueryParamsProperty(test *testing.T) {
	rapid.Check(test, func(t *rapid.T) {
		values := rapid.MapOfN(
			rapid.StringMatching(`[a-z]{1,8}`),
			rapid.SliceOfN(rapid.String(), 1, 3),
			1,
			5,
		).Draw(t, "values")

		rawURL := "/widgets?" + url.Values(values).Encode()
		params := hydrate.QueryParams(rawURL)

		if len(params) != len(values) {
			t.Fatalf("got %d params, want %d", len(params), len(values))
		}
		for key, valueList := range values {
			expected := valueList[len(valueList)-1]
			if params[key] != expected {
				t.Fatalf(
					"params[%q] = %q, want last value %q", key, params[key], expected,
				)
			}
		}
	})
}
