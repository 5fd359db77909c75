package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

const rpcDialTimeout = 5 * time.Second

var rpcRequestID atomic.Uint64

// rpcCallError is a JSON-RPC error object returned by the server.
type rpcCallError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *rpcCallError) Error() string {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return fmt.Sprintf("rpc error (%d): %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error (%d): %s", e.Code, e.Message)
}

type rpcClient struct {
	socket string
}

func newRPCClient(socket string) *rpcClient {
	return &rpcClient{socket: socket}
}

// call sends one request on a fresh connection. The context deadline, if
// any, bounds the whole exchange.
func (c *rpcClient) call(ctx context.Context, method string, params any, out any) error {
	dialer := net.Dialer{Timeout: rpcDialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.socket, err)
	}
	defer func() { _ = conn.Close() }()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	id := rpcRequestID.Add(1)
	req := struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params"`
		ID      uint64 `json:"id"`
	}{JSONRPC: "2.0", Method: method, Params: params, ID: id}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcCallError   `json:"error"`
		ID     uint64          `json:"id"`
	}
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if resp.ID != id {
		return fmt.Errorf("%s: response id %d does not match request %d", method, resp.ID, id)
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}
