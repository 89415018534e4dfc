package pawapay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/momogate/internal/infrastructure/transport"
)

// recordingTransport captures every request and replies with a canned
// response.
type recordingTransport struct {
	mu       sync.Mutex
	requests []*transport.Request
	status   int
	body     string
	err      error
}

func newRecordingTransport(status int, body string) *recordingTransport {
	return &recordingTransport{status: status, body: body}
}

func (r *recordingTransport) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	var body json.RawMessage
	if r.body != "" {
		body = json.RawMessage(r.body)
	}
	return &transport.Response{StatusCode: r.status, Body: body}, nil
}

func (r *recordingTransport) last(t *testing.T) *transport.Request {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests, "no request was sent")
	return r.requests[len(r.requests)-1]
}

func (r *recordingTransport) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// payloadOf re-encodes the request body into a generic map so tests assert
// on the exact wire shape.
func payloadOf(t *testing.T, req *transport.Request) map[string]any {
	t.Helper()
	data, err := json.Marshal(req.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func okTransport() *recordingTransport {
	return newRecordingTransport(http.StatusOK, `{"status":"ACCEPTED"}`)
}
