// Copyright (c) 2014-2017 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/btcsuite/go-socks/socks"
	"github.com/forkscan/forkscand/rpcmodel"
	"github.com/pkg/errors"
)

const defaultRequestTimeout = 30 * time.Second

// ConnConfig describes the connection configuration parameters for the
// client.
type ConnConfig struct {
	// Host is the IP address and port of the RPC server you want to
	// connect to.
	Host string

	// User is the username to use to authenticate to the RPC server.
	User string

	// Pass is the passphrase to use to authenticate to the RPC server.
	Pass string

	// DisableTLS specifies whether transport layer security should be
	// disabled. It is recommended to always use TLS if the RPC server
	// supports it as otherwise your username and password is sent across
	// the wire in cleartext.
	DisableTLS bool

	// Proxy specifies to connect through a SOCKS 5 proxy server. It may
	// be an empty string if a proxy is not required.
	Proxy string

	// ProxyUser is an optional username to use for the proxy server if it
	// requires authentication. It has no effect if the Proxy parameter is
	// not set.
	ProxyUser string

	// ProxyPass is an optional password to use for the proxy server if it
	// requires authentication. It has no effect if the Proxy parameter is
	// not set.
	ProxyPass string

	// RequestTimeout is the time the client waits for every round trip to
	// the server before giving up. A zero value means the default of 30
	// seconds.
	RequestTimeout time.Duration
}

// Client represents a JSON-RPC client that issues commands to a node over
// HTTP POST. Requests are synchronous: every call performs one round trip
// and blocks until the server answers or the request times out.
type Client struct {
	id uint64 // atomic, so must stay 64-bit aligned

	config     *ConnConfig
	httpClient *http.Client
}

// New creates a new RPC client based on the provided connection
// configuration details.
func New(config *ConnConfig) (*Client, error) {
	httpClient, err := newHTTPClient(config)
	if err != nil {
		return nil, err
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// newHTTPClient returns a new http client that is configured according to
// the proxy settings in the associated connection configuration.
func newHTTPClient(config *ConnConfig) (*http.Client, error) {
	// Configure proxy if needed.
	var dial func(network, addr string) (net.Conn, error)
	if config.Proxy != "" {
		proxy := &socks.Proxy{
			Addr:     config.Proxy,
			Username: config.ProxyUser,
			Password: config.ProxyPass,
		}
		dial = func(network, addr string) (net.Conn, error) {
			c, err := proxy.Dial(network, addr)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	client := http.Client{
		Transport: &http.Transport{
			Dial: dial,
		},
		Timeout: timeout,
	}

	return &client, nil
}

// NextID returns the next id to be used when sending a JSON-RPC message.
// This ID allows responses to be associated with particular requests per the
// JSON-RPC specification.
func (c *Client) NextID() uint64 {
	return atomic.AddUint64(&c.id, 1)
}

// protocol returns either "http" or "https" depending on whether TLS is
// disabled for the connection.
func (c *Client) protocol() string {
	if c.config.DisableTLS {
		return "http"
	}
	return "https"
}

// sendCmd issues the given command as a single HTTP POST round trip and
// unmarshals the result into reply.
func (c *Client) sendCmd(cmd rpcmodel.Cmd, reply interface{}) error {
	method := cmd.Method()
	req, err := rpcmodel.NewRequest(c.NextID(), method, cmd.Params())
	if err != nil {
		return err
	}
	marshalledJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}

	url := c.protocol() + "://" + c.config.Host
	bodyReader := bytes.NewReader(marshalledJSON)
	httpReq, err := http.NewRequest("POST", url, bodyReader)
	if err != nil {
		return err
	}
	httpReq.Close = true
	httpReq.Header.Set("Content-Type", "application/json")

	// Configure basic access authorization.
	httpReq.SetBasicAuth(c.config.User, c.config.Pass)

	log.Tracef("Sending command [%s] to %s", method, c.config.Host)
	httpResponse, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "%s request to %s failed", method, c.config.Host)
	}

	body, err := ioutil.ReadAll(httpResponse.Body)
	httpResponse.Body.Close()
	if err != nil {
		return errors.Wrapf(err, "error reading json reply for %s", method)
	}

	// Try to unmarshal the response. If that fails it could be because the
	// server responded with a plain-text error page, so include the status
	// code in the error.
	var resp rpcmodel.Response
	err = json.Unmarshal(body, &resp)
	if err != nil {
		if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
			return errors.Errorf("status code: %d, response: %q",
				httpResponse.StatusCode, string(body))
		}
		return errors.Wrapf(err, "couldn't unmarshal %s response", method)
	}
	if resp.Error != nil {
		return resp.Error
	}

	return json.Unmarshal(resp.Result, reply)
}

// GetBlockCount returns the number of blocks in the longest block chain
// known to the node.
func (c *Client) GetBlockCount() (int64, error) {
	var count int64
	err := c.sendCmd(rpcmodel.NewGetBlockCountCmd(), &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockHashesByHeight returns the hashes of every candidate block the
// node knows at the given height.
func (c *Client) GetBlockHashesByHeight(height uint64) ([]string, error) {
	var hashes []string
	err := c.sendCmd(rpcmodel.NewGetBlockHashesByHeightCmd(height), &hashes)
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// GetBlockVerbose returns the data of the block with the given hash.
func (c *Client) GetBlockVerbose(hash string) (*rpcmodel.GetBlockResult, error) {
	var result rpcmodel.GetBlockResult
	err := c.sendCmd(rpcmodel.NewGetBlockCmd(hash), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
