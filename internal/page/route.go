package page

import (
	"net/http"
	"strings"
)

// QueryParamString collapses the values of one query key into a single
// string: absent is "", repeated values are joined with ",".
func QueryParamString(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

// HashFromRequest returns the transaction hash a request addresses. The
// path segment wins over the hash query key.
func HashFromRequest(r *http.Request, pathHash string) string {
	if pathHash != "" {
		return pathHash
	}
	return QueryParamString(r.URL.Query()["hash"])
}

// TabFromRequest returns the requested tab id, "" when none
func TabFromRequest(r *http.Request) string {
	return QueryParamString(r.URL.Query()["tab"])
}

// NewRequest gathers the page inputs from an HTTP request
func NewRequest(r *http.Request, pathHash string) Request {
	return Request{
		Hash:     HashFromRequest(r, pathHash),
		Tab:      TabFromRequest(r),
		Referrer: r.Referer(),
		Mobile:   IsMobile(r),
		URL:      *r.URL,
	}
}
