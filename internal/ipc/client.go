package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start monitoring.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Vigil.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop monitoring.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Vigil.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown asks the daemon process to exit.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.client.Call("Vigil.Shutdown", ShutdownRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Vigil.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the records of a day partition, optionally only unlabeled ones.
func (c *Client) List(day string, pendingOnly bool) (*ListResponse, error) {
	var resp ListResponse
	req := ListRequest{Day: day, PendingOnly: pendingOnly}
	if err := c.client.Call("Vigil.List", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resolve applies a decision to one record.
func (c *Client) Resolve(day, filename, decision string) (*ResolveResponse, error) {
	var resp ResolveResponse
	req := ResolveRequest{Day: day, Filename: filename, Decision: decision}
	if err := c.client.Call("Vigil.Resolve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetDay switches the active day partition.
func (c *Client) SetDay(day string) (*SetDayResponse, error) {
	var resp SetDayResponse
	if err := c.client.Call("Vigil.SetDay", SetDayRequest{Day: day}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetIntervals reconfigures the capture cadence bounds.
func (c *Client) SetIntervals(min, max int) (*SetIntervalsResponse, error) {
	var resp SetIntervalsResponse
	req := SetIntervalsRequest{Min: min, Max: max}
	if err := c.client.Call("Vigil.SetIntervals", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetPixelSize reconfigures the pixelation factor.
func (c *Client) SetPixelSize(size int) (*SetPixelSizeResponse, error) {
	var resp SetPixelSizeResponse
	if err := c.client.Call("Vigil.SetPixelSize", SetPixelSizeRequest{Size: size}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Vigil.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
