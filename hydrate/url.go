package hydrate

import (
	"net/url"
	"strings"
)

/*
SplitPath returns the path portion of rawURL: rawURL unchanged when it is "/" or
contains no '?', otherwise the substring before the first '?'. Malformed input is
never an error, the best-effort path is returned as-is.
*/
func SplitPath(rawURL string) string {
	if rawURL == "/" {
		return rawURL
	}

	index := strings.Index(rawURL, "?")
	if index < 0 {
		return rawURL
	}

	return rawURL[:index]
}

// SplitQueryString returns the query string portion of rawURL without the leading
// '?', and whether rawURL carried one at all.
func SplitQueryString(rawURL string) (string, bool) {
	index := strings.Index(rawURL, "?")
	if index < 0 {
		return "", false
	}

	return rawURL[index+1:], true
}

/*
QueryParams decodes rawURL's query string into a name -> value map. Keys and values
are URL-unescaped and a repeated key keeps its last value. Any parse failure falls
back to an empty map rather than erroring, so callers always receive a usable
mapping.
*/
func QueryParams(rawURL string) map[string]string {
	params := make(map[string]string)

	queryString, found := SplitQueryString(rawURL)
	if !found {
		return params
	}

	values, err := url.ParseQuery(queryString)
	if err != nil {
		return params
	}

	for key, valueList := range values {
		if len(valueList) == 0 {
			continue
		}
		params[key] = valueList[len(valueList)-1]
	}

	return params
}
