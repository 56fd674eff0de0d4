package events

import "encoding/json"

// Event name constants
const (
	GridRefreshed = "grid.refreshed"
	RefreshFailed = "grid.refresh_failed"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// GridRefreshedEvent is the payload of grid.refreshed.
type GridRefreshedEvent struct {
	Login string `json:"login"`
	Weeks int    `json:"weeks"`
	Total int    `json:"total"`
	Ts    int64  `json:"ts"`
}

// RefreshFailedEvent is the payload of grid.refresh_failed.
type RefreshFailedEvent struct {
	Login string `json:"login"`
	Error string `json:"error"`
	Ts    int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T. An empty payload yields the zero
// value of T.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
