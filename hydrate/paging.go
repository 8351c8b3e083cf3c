package hydrate

import (
	"strconv"

	"golang.org/x/xerrors"
)

// Interface for objects paging values can be written to, like http.Header and
// url.Values.
type headerSetter interface {
	Set(key string, value string)
}

// Adapter so a hydrated request's query parameters can be read through the same
// fetcher interface as http.Header and url.Values.
type queryFetcher map[string]string

func (params queryFetcher) Get(key string) string {
	return params[key]
}

// PagingReq is the page window a request asks for.
type PagingReq struct {
	// How far to offset the page.
	Offset int

	// Maximum item count to return.
	Limit int
}

// ToParams dumps the paging request to outbound URL params or headers.
func (pagingReq *PagingReq) ToParams(params headerSetter) {
	params.Set("paging-offset", strconv.Itoa(pagingReq.Offset))
	// Only send limit when it is valid.
	if pagingReq.Limit > 0 {
		params.Set("paging-limit", strconv.Itoa(pagingReq.Limit))
	}
}

// PagingResp describes the page a response actually returns, for transport in
// response headers.
type PagingResp struct {
	*PagingReq

	TotalItems  int
	TotalPages  int
	CurrentPage int
	Next        string
	Previous    string
}

// ToHeaders dumps the paging response to response headers. Fields without valid
// values are omitted.
func (pagingResp *PagingResp) ToHeaders(headers headerSetter) {
	pagingResp.PagingReq.ToParams(headers)

	if pagingResp.TotalItems > 0 {
		headers.Set("paging-total-items", strconv.Itoa(pagingResp.TotalItems))
	}
	if pagingResp.TotalPages > 0 {
		headers.Set("paging-total-pages", strconv.Itoa(pagingResp.TotalPages))
	}
	if pagingResp.CurrentPage > -1 {
		headers.Set("paging-current-page", strconv.Itoa(pagingResp.CurrentPage))
	}
	if pagingResp.Previous != "" {
		headers.Set("paging-previous", pagingResp.Previous)
	}
	if pagingResp.Next != "" {
		headers.Set("paging-next", pagingResp.Next)
	}
}

// Fetches an int param, falling back to defaultValue when the param is absent.
func pagingInt(
	params headerFetcher, key string, defaultValue int,
) (int, error) {
	value := params.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	valueInt, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.New(key + " is not int")
	}
	return valueInt, nil
}

// PagingReqFromParams reads a paging request from URL params or headers. Absent
// offset falls back to 0, absent limit to defaultLimit.
func PagingReqFromParams(
	params headerFetcher, defaultLimit int,
) (*PagingReq, error) {
	pagingReq := &PagingReq{}

	var err error
	if pagingReq.Offset, err = pagingInt(params, "paging-offset", 0); err != nil {
		return nil, err
	}
	if pagingReq.Limit, err = pagingInt(
		params, "paging-limit", defaultLimit,
	); err != nil {
		return nil, err
	}

	return pagingReq, nil
}

// PagingFromRequest reads the paging request from a hydrated request's query
// parameters.
func PagingFromRequest(
	request *Request, defaultLimit int,
) (*PagingReq, error) {
	return PagingReqFromParams(queryFetcher(request.queryParams), defaultLimit)
}

// PagingRespFromHeaders reads paging information back out of response headers.
// Total and current page fields default to -1 to flag they were not sent.
func PagingRespFromHeaders(
	headers headerFetcher, defaultLimit int,
) (*PagingResp, error) {
	pagingReq, err := PagingReqFromParams(headers, defaultLimit)
	if err != nil {
		return nil, err
	}

	pagingResp := &PagingResp{PagingReq: pagingReq}

	if pagingResp.TotalPages, err = pagingInt(
		headers, "paging-total-pages", -1,
	); err != nil {
		return nil, err
	}
	if pagingResp.TotalItems, err = pagingInt(
		headers, "paging-total-items", -1,
	); err != nil {
		return nil, err
	}
	if pagingResp.CurrentPage, err = pagingInt(
		headers, "paging-current-page", -1,
	); err != nil {
		return nil, err
	}

	pagingResp.Previous = headers.Get("paging-previous")
	pagingResp.Next = headers.Get("paging-next")

	return pagingResp, nil
}
