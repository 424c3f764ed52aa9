package remote

import (
	"net/http"
	"time"
)

// FetchStatus classifies the outcome of a read against another service so
// callers can tell "no data" apart from "source unavailable". Aggregation
// endpoints stay fail-soft either way, but the distinction is surfaced to
// the caller instead of being silently merged.
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchNotFound
	FetchUnavailable
)

func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchNotFound:
		return "not_found"
	case FetchUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// DefaultTimeout is the fixed per-call timeout for every inter-service and
// third-party HTTP request. A slow sibling stalls the caller for at most
// this long before the caller degrades.
const DefaultTimeout = 5 * time.Second

// NewHTTPClient returns an http.Client with the platform's fixed timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}
