// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/btcsuite/go-socks/socks"
)

// ConnConfig describes the connection configuration parameters for the client.
type ConnConfig struct {
	// Host is the IP address and port of the RPC server you want to
	// connect to.  A full URL starting with http:// or https:// is
	// accepted as well, in which case its scheme takes precedence over
	// DisableTLS and credentials embedded in it are used when User and
	// Pass are empty.
	Host string

	// Endpoint is the path appended to Host.
	Endpoint string

	// Wallet selects a wallet of a daemon with several wallets loaded.  It
	// is a shorthand for the Endpoint /wallet/<name> and can not be
	// combined with Endpoint.
	Wallet string

	// User is the username to use to authenticate to the RPC server.
	User string

	// Pass is the passphrase to use to authenticate to the RPC server.
	Pass string

	// CookiePath is the path to a bitcoind .cookie file to read the
	// credentials from.  The file is read again whenever it changes, which
	// happens on every restart of the daemon.  It can not be combined with
	// User and Pass.
	CookiePath string

	// DisableTLS specifies whether transport layer security should be
	// disabled when Host carries no scheme.  bitcoind does not serve TLS
	// itself, so this is usually set unless a TLS terminating proxy sits
	// in front of it.
	DisableTLS bool

	// Certificates are the bytes for a PEM-encoded certificate chain used
	// for the TLS connection.  It has no effect if TLS is disabled.
	Certificates []byte

	// Proxy specifies to connect through a SOCKS 5 proxy server.  It may
	// be an empty string if a proxy is not required.
	Proxy string

	// ProxyUser is an optional username to use for the proxy server if it
	// requires authentication.  It has no effect if the Proxy parameter
	// is not set.
	ProxyUser string

	// ProxyPass is an optional password to use for the proxy server if it
	// requires authentication.  It has no effect if the Proxy parameter
	// is not set.
	ProxyPass string

	// HTTPClient is an externally configured client used to send the
	// requests.  When set, the TLS, proxy and timeout options are ignored
	// and the client is never closed by Close.
	HTTPClient *http.Client

	// Timeout bounds every round trip of the internally built client.
	// Zero means no timeout beyond the one carried by the context of each
	// call.
	Timeout time.Duration

	// IDGenerator produces the id of each request.  It defaults to a
	// Counter owned by the client.
	IDGenerator IDGenerator

	// DisableIDCheck turns off the check that the id echoed in a response
	// matches the id of the request.
	DisableIDCheck bool

	// ExtraHeaders specifies the extra headers to add to each request.
	ExtraHeaders map[string]string
}

// validate checks the combination of options.
func (config *ConnConfig) validate() error {
	if config.Host == "" {
		return errors.New("no RPC host specified")
	}
	if config.CookiePath != "" && (config.User != "" || config.Pass != "") {
		return errors.New("user and pass can not be combined with a " +
			"cookie path")
	}
	if config.Endpoint != "" && config.Wallet != "" {
		return errors.New("endpoint and wallet can not both be specified")
	}
	return nil
}

// rpcURL builds the URL requests are posted to.
func (config *ConnConfig) rpcURL() (*url.URL, error) {
	rawURL := config.Host
	if !strings.Contains(rawURL, "://") {
		scheme := "https"
		if config.DisableTLS {
			scheme = "http"
		}
		rawURL = scheme + "://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported scheme %q in host %q",
			u.Scheme, config.Host)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("no host in %q", config.Host)
	}

	basePath := strings.TrimSuffix(u.Path, "/")
	switch {
	case config.Wallet != "":
		// Wallet names may contain slashes which have to stay escaped.
		escapedBase := strings.TrimSuffix(u.EscapedPath(), "/")
		u.Path = basePath + "/wallet/" + config.Wallet
		u.RawPath = escapedBase + "/wallet/" + url.PathEscape(config.Wallet)

	case config.Endpoint != "":
		u.Path = basePath + "/" + strings.TrimPrefix(config.Endpoint, "/")
		u.RawPath = ""
	}

	return u, nil
}

// newHTTPClient returns a new http client that is configured according to the
// proxy and TLS settings in the associated connection configuration.
func newHTTPClient(config *ConnConfig) (*http.Client, error) {
	// Configure TLS if needed.
	var tlsConfig *tls.Config
	if !config.DisableTLS && len(config.Certificates) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(config.Certificates) {
			return nil, errors.New("no valid certificates found")
		}
		tlsConfig = &tls.Config{
			RootCAs:    pool,
			MinVersion: tls.VersionTLS12,
		}
	}

	transport := &http.Transport{
		TLSClientConfig: tlsConfig,
	}

	// Dial through the SOCKS proxy if there is one configured.
	if config.Proxy != "" {
		proxy := &socks.Proxy{
			Addr:     config.Proxy,
			Username: config.ProxyUser,
			Password: config.ProxyPass,
		}
		transport.DialContext = func(ctx context.Context, network,
			addr string) (net.Conn, error) {

			return dialProxyContext(ctx, proxy, network, addr)
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
	return client, nil
}

// dialProxyContext dials addr through proxy, giving up when ctx ends.  The
// socks package has no context aware dial, so the dial runs on its own
// goroutine and a connection completed after ctx ended is closed.
func dialProxyContext(ctx context.Context, proxy *socks.Proxy, network,
	addr string) (net.Conn, error) {

	var timeout time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, ctx.Err()
		}
	}

	type dialResult struct {
		conn net.Conn
		err  error
	}
	done := make(chan dialResult, 1)
	go func() {
		conn, err := proxy.DialTimeout(network, addr, timeout)
		done <- dialResult{conn, err}
	}()

	select {
	case r := <-done:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// Response is the raw bytes of a JSON-RPC result, or the error if the response
// error object was non-null.
type Response struct {
	result []byte
	err    error
}

// newFutureError returns a new future result channel that already has the
// passed error waiting on the channel with the reply set to nil.  This is
// useful to easily return errors from the various Async functions.
func newFutureError(err error) chan *Response {
	responseChan := make(chan *Response, 1)
	responseChan <- &Response{err: err}
	return responseChan
}

// ReceiveFuture receives from the passed futureResult channel to extract a
// reply or any errors.  The examined errors include an error in the
// futureResult and the error in the reply from the server.  This will block
// until the result is available on the passed channel.
func ReceiveFuture(f chan *Response) ([]byte, error) {
	// Wait for a response on the returned channel.
	r := <-f
	return r.result, r.err
}

// unmarshalResult decodes a result into v.  A result of the wrong shape is
// reported as a DecodingError.  None of the typed wrappers has a null result,
// so a null one is reported as ErrEmptyResponse instead of leaving v zeroed.
func unmarshalResult(res []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(res)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &DecodingError{Body: res, Err: ErrEmptyResponse}
	}
	if err := json.Unmarshal(res, v); err != nil {
		return &DecodingError{Body: res, Err: err}
	}
	return nil
}

// Client represents a Bitcoin Core RPC client which allows easy access to the
// various RPC methods available on a daemon.  Each call is an independent
// HTTP POST request, so any number of calls may be in flight at once.
//
// The client provides each RPC in both synchronous (blocking) and asynchronous
// (non-blocking) forms.  The asynchronous forms are based on the concept of
// futures where they return an instance of a type that promises to deliver
// the result of the invocation at some future time.  Invoking the Receive
// method on the returned future will block until the result is available if
// it's not already.
type Client struct {
	config     ConnConfig
	url        string
	logURL     string
	user       string
	pass       string
	cookie     *cookieRetriever
	httpClient *http.Client
	ownsHTTP   bool
	idGen      IDGenerator

	// Track in-flight calls so that shutdown can wait for them.
	mtx       sync.Mutex
	shutdown  bool
	wg        sync.WaitGroup
	closeOnce sync.Once

	versionMtx     sync.Mutex
	backendVersion *BackendVersion
}

// New creates a new RPC client based on the provided connection
// configuration details.  No connection is made until the first call.
func New(config *ConnConfig) (*Client, error) {
	if config == nil {
		return nil, errors.New("no connection config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	u, err := config.rpcURL()
	if err != nil {
		return nil, err
	}

	client := &Client{
		config: *config,
		user:   config.User,
		pass:   config.Pass,
		idGen:  config.IDGenerator,
	}

	// Credentials embedded in the URL are moved to the basic auth header
	// unless explicit ones were given.
	if u.User != nil {
		if client.user == "" && client.pass == "" &&
			config.CookiePath == "" {

			client.user = u.User.Username()
			client.pass, _ = u.User.Password()
		}
		u.User = nil
	}
	client.url = u.String()
	client.logURL = u.Redacted()

	if config.CookiePath != "" {
		client.cookie = newCookieRetriever(config.CookiePath)
	}
	if client.idGen == nil {
		client.idGen = &Counter{}
	}

	if config.HTTPClient != nil {
		client.httpClient = config.HTTPClient
	} else {
		client.httpClient, err = newHTTPClient(config)
		if err != nil {
			return nil, err
		}
		client.ownsHTTP = true
	}

	log.Debugf("Created RPC client for %s", client.logURL)
	return client, nil
}

// WithClient creates a client from config, passes it to fn and closes it
// afterwards, whether fn returns normally, with an error or by panicking.
// The error of fn takes precedence over the error of Close.
func WithClient(config *ConnConfig, fn func(*Client) error) (err error) {
	client, err := New(config)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := client.Close()
		if err == nil {
			err = closeErr
		}
	}()

	return fn(client)
}

// URL returns the URL the client posts requests to, with any password
// redacted.
func (c *Client) URL() string {
	return c.logURL
}

// credentials returns the username and password for the next request.
func (c *Client) credentials() (string, string, error) {
	if c.cookie != nil {
		return c.cookie.retrieve()
	}
	return c.user, c.pass, nil
}

// FutureRawResult is a future promise to deliver the result of a Call,
// CallAsync or RawRequestAsync invocation (or an applicable error).
type FutureRawResult chan *Response

// Receive waits for the response promised by the future and returns the raw
// result bytes exactly as the daemon sent them.
func (r FutureRawResult) Receive() (json.RawMessage, error) {
	return ReceiveFuture(r)
}

// CallAsync returns an instance of a type that can be used to get the result
// of an arbitrary RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See Call for the blocking version and more details.
func (c *Client) CallAsync(ctx context.Context, method string,
	params ...interface{}) FutureRawResult {

	return c.sendCmd(ctx, method, params...)
}

// Call sends method with the passed positional parameters to the daemon and
// returns the raw result.  Each parameter is marshalled with encoding/json and
// their order is kept.  Any method name is accepted, which makes Call the
// escape hatch for the methods this package has no typed wrapper for.
//
// The returned error is one of *TransportError, *HTTPStatusError,
// *btcjson.RPCError or *DecodingError, or wraps ErrInvalidParam or
// ErrClientShutdown when nothing was sent.
func (c *Client) Call(ctx context.Context, method string,
	params ...interface{}) (json.RawMessage, error) {

	return c.CallAsync(ctx, method, params...).Receive()
}

// RawRequestAsync returns an instance of a type that can be used to get the
// result of a custom RPC request at some future time by invoking the Receive
// function on the returned instance.
//
// See RawRequest for the blocking version and more details.
func (c *Client) RawRequestAsync(ctx context.Context, method string,
	params []json.RawMessage) FutureRawResult {

	rawParams := make([]interface{}, 0, len(params))
	for _, param := range params {
		rawParams = append(rawParams, param)
	}
	return c.sendCmd(ctx, method, rawParams...)
}

// RawRequest allows the caller to send a raw or custom request to the server.
// This method may be used to send and receive requests and responses for
// requests that are not handled by this client package, or to proxy partially
// unmarshaled requests to another JSON-RPC server if a request cannot be
// handled directly.
func (c *Client) RawRequest(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	return c.RawRequestAsync(ctx, method, params).Receive()
}

// sendCmd builds the request envelope for method and params and posts it from
// a new goroutine.  It returns a channel that will receive the response.
func (c *Client) sendCmd(ctx context.Context, method string,
	params ...interface{}) chan *Response {

	if method == "" {
		return newFutureError(fmt.Errorf("%w: method may not be empty",
			ErrInvalidParam))
	}

	c.mtx.Lock()
	if c.shutdown {
		c.mtx.Unlock()
		return newFutureError(ErrClientShutdown)
	}
	c.wg.Add(1)
	c.mtx.Unlock()

	id := c.idGen.NextID()
	req, err := btcjson.NewRequest(btcjson.RpcVersion2, id, method, params)
	if err != nil {
		c.wg.Done()
		return newFutureError(fmt.Errorf("%w: %v", ErrInvalidParam, err))
	}

	responseChan := make(chan *Response, 1)
	go func() {
		defer c.wg.Done()

		result, err := c.sendPostRequest(ctx, req)
		responseChan <- &Response{result: result, err: err}
	}()

	return responseChan
}

// sendPostRequest sends the passed request to the server using HTTP POST mode
// and maps the outcome onto the error taxonomy of the package.
func (c *Client) sendPostRequest(ctx context.Context,
	req *btcjson.Request) ([]byte, error) {

	marshalledJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	log.Tracef("Sending command [%s] with id %v to %s", req.Method,
		req.ID, c.logURL)
	log.Tracef("Request: %v", newLogClosure(func() string {
		var buf bytes.Buffer
		if err := json.Indent(&buf, marshalledJSON, "", "  "); err != nil {
			return string(marshalledJSON)
		}
		return buf.String()
	}))

	// Generate a request to the configured RPC server.
	bodyReader := bytes.NewReader(marshalledJSON)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url,
		bodyReader)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range c.config.ExtraHeaders {
		httpReq.Header.Set(key, value)
	}

	// Configure basic access authorization.
	user, pass, err := c.credentials()
	if err != nil {
		return nil, &TransportError{
			Method: req.Method,
			Err:    fmt.Errorf("unable to get credentials: %w", err),
		}
	}
	if user != "" || pass != "" {
		httpReq.SetBasicAuth(user, pass)
	}

	httpResponse, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Err: err}
	}
	defer httpResponse.Body.Close()

	// Read the raw bytes.
	respBytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, &TransportError{
			Method: req.Method,
			Err:    fmt.Errorf("error reading json reply: %w", err),
		}
	}

	log.Debugf("Received %q for [%s] with id %v (%d bytes)",
		httpResponse.Status, req.Method, req.ID, len(respBytes))

	// The status is checked before anything else so that an
	// authentication failure, which comes with an empty or HTML body, is
	// reported as such.
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return nil, &HTTPStatusError{
			StatusCode: httpResponse.StatusCode,
			Status:     httpResponse.Status,
			Body:       respBytes,
		}
	}

	return c.decodeResponse(req, respBytes)
}

// isNullID reports whether the daemon left out the id or sent it as null,
// which it does when it could not parse the request.
func isNullID(id json.RawMessage) bool {
	return len(id) == 0 || bytes.Equal(bytes.TrimSpace(id), []byte("null"))
}

// decodeResponse unmarshals a 2xx body and returns either the raw result or
// the error object sent by the daemon.
func (c *Client) decodeResponse(req *btcjson.Request, body []byte) ([]byte, error) {
	var resp btcjson.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodingError{Body: body, Err: err}
	}

	if !c.config.DisableIDCheck && !isNullID(resp.ID) && !resp.IDMatches(req.ID) {
		log.Warnf("Response id %s for [%s] does not match request id %v",
			resp.ID, req.Method, req.ID)
		return nil, &DecodingError{Body: body, Err: ErrMismatchedID}
	}

	if resp.Error != nil {
		return nil, resp.Error
	}
	if !resp.HasResult() {
		return nil, &DecodingError{Body: body, Err: ErrEmptyResponse}
	}
	return resp.Result, nil
}

// Shutdown stops the client from accepting new calls.  Calls made afterwards
// fail with ErrClientShutdown while calls already in flight run to
// completion.  Use WaitForShutdown to wait for them.  It is safe to call
// Shutdown more than once.
func (c *Client) Shutdown() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.shutdown {
		return
	}
	log.Tracef("Shutting down RPC client %s", c.logURL)
	c.shutdown = true
}

// WaitForShutdown blocks until all calls in flight have completed.  It only
// makes sense after Shutdown, since new calls may start otherwise.
func (c *Client) WaitForShutdown() {
	c.wg.Wait()
}

// Close shuts the client down, waits for the calls in flight and releases the
// idle connections of the HTTP client it built.  An HTTP client passed
// through ConnConfig.HTTPClient is left alone.  Close is idempotent.
func (c *Client) Close() error {
	c.Shutdown()
	c.WaitForShutdown()

	c.closeOnce.Do(func() {
		if c.ownsHTTP {
			c.httpClient.CloseIdleConnections()
		}
		log.Debugf("Closed RPC client %s", c.logURL)
	})
	return nil
}
