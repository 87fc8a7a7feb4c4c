package rpcclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testUser = "user"
	testPass = "pass"
)

// daemonRequest is a request as seen by the fake daemon.  The id is kept raw
// so that it can be echoed byte for byte.
type daemonRequest struct {
	Jsonrpc string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`

	body   []byte
	header http.Header
}

// fakeDaemon is an httptest server answering like bitcoind.
type fakeDaemon struct {
	*httptest.Server

	mtx      sync.Mutex
	requests []*daemonRequest
}

// newFakeDaemon starts a fake daemon which passes every decoded request to
// handle.
func newFakeDaemon(t *testing.T,
	handle func(w http.ResponseWriter, r *http.Request, req *daemonRequest)) *fakeDaemon {

	t.Helper()

	d := &fakeDaemon{}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		req := &daemonRequest{body: body, header: r.Header.Clone()}
		if err := json.Unmarshal(body, req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		d.mtx.Lock()
		d.requests = append(d.requests, req)
		d.mtx.Unlock()

		handle(w, r, req)
	}))
	t.Cleanup(d.Close)

	return d
}

// received returns the requests seen so far.
func (d *fakeDaemon) received() []*daemonRequest {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return append([]*daemonRequest(nil), d.requests...)
}

// writeResult answers with a result the way bitcoind does, including a null
// error member.
func writeResult(w http.ResponseWriter, id json.RawMessage, result string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"result":%s,"error":null,"id":%s}`, result, id)
}

// writeRPCError answers with an error object and a null result.
func writeRPCError(w http.ResponseWriter, status int, id json.RawMessage,
	code int, message string) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"result":null,"error":{"code":%d,"message":%q},"id":%s}`,
		code, message, id)
}

// resultDaemon starts a fake daemon answering every request with result.
func resultDaemon(t *testing.T, result string) *fakeDaemon {
	return newFakeDaemon(t, func(w http.ResponseWriter, _ *http.Request,
		req *daemonRequest) {

		writeResult(w, req.ID, result)
	})
}

// newTestClient returns a client for d which is closed when the test ends.
func newTestClient(t *testing.T, d *fakeDaemon, opts ...func(*ConnConfig)) *Client {
	t.Helper()

	cfg := &ConnConfig{
		Host: d.URL,
		User: testUser,
		Pass: testPass,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	return client
}
