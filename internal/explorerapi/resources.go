package explorerapi

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Resource names understood by the client
const (
	ResourceTx                   = "tx"
	ResourceTxTokenTransfers     = "tx_token_transfers"
	ResourceTxInternalTxs        = "tx_internal_txs"
	ResourceTxLogs               = "tx_logs"
	ResourceTxStateChanges       = "tx_state_changes"
	ResourceTxRawTrace           = "tx_raw_trace"
	ResourceConfigBackendVersion = "config_backend_version"
)

// Resource describes an explorer API endpoint. Path segments starting
// with ':' are filled from path params.
type Resource struct {
	Name string
	Path string
}

var resources = map[string]Resource{
	ResourceTx:                   {Name: ResourceTx, Path: "/api/v2/transactions/:hash"},
	ResourceTxTokenTransfers:     {Name: ResourceTxTokenTransfers, Path: "/api/v2/transactions/:hash/token-transfers"},
	ResourceTxInternalTxs:        {Name: ResourceTxInternalTxs, Path: "/api/v2/transactions/:hash/internal-transactions"},
	ResourceTxLogs:               {Name: ResourceTxLogs, Path: "/api/v2/transactions/:hash/logs"},
	ResourceTxStateChanges:       {Name: ResourceTxStateChanges, Path: "/api/v2/transactions/:hash/state-changes"},
	ResourceTxRawTrace:           {Name: ResourceTxRawTrace, Path: "/api/v2/transactions/:hash/raw-trace"},
	ResourceConfigBackendVersion: {Name: ResourceConfigBackendVersion, Path: "/api/v2/config/backend-version"},
}

// PathParams fill the ':name' segments of a resource path
type PathParams map[string]string

// CacheKey returns a stable key for resource + params, e.g. "tx:hash=0xab"
func CacheKey(resource string, params PathParams) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(resource)
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}
	return b.String()
}

// LookupResource returns the registered resource by name
func LookupResource(name string) (Resource, error) {
	r, ok := resources[name]
	if !ok {
		return Resource{}, fmt.Errorf("unknown resource: %s", name)
	}
	return r, nil
}

// BuildPath substitutes path params into the resource path. Every param
// named in the path must be present and non-empty.
func (r Resource) BuildPath(params PathParams) (string, error) {
	segments := strings.Split(r.Path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		value := params[name]
		if value == "" {
			return "", fmt.Errorf("resource %s: missing path param %q", r.Name, name)
		}
		segments[i] = url.PathEscape(value)
	}
	return strings.Join(segments, "/"), nil
}
