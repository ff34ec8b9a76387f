package watchman

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/vk/buildgridgo/internal/ctxlog"
)

// Client is a minimal subscription client for a watch service speaking
// JSON frames over a websocket. It performs the version handshake on dial
// and remembers which optional capabilities the server advertised, so
// matchers can be compiled against the live capability set.
type Client struct {
	conn *websocket.Conn
	caps CapabilitySet
}

// versionResponse is the handshake reply frame.
type versionResponse struct {
	Version      string          `json:"version"`
	Capabilities map[string]bool `json:"capabilities"`
	Error        string          `json:"error"`
}

// Dial connects to the watch service at the given websocket endpoint and
// performs the capability handshake.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	logger := ctxlog.FromContext(ctx)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("watchman: dial %s: %w", endpoint, err)
	}

	optional := make([]string, 0, len(allCapabilities))
	for _, c := range allCapabilities {
		optional = append(optional, string(c))
	}
	handshake := []any{"version", map[string]any{"optional": optional}}
	if err := conn.WriteJSON(handshake); err != nil {
		conn.Close()
		return nil, fmt.Errorf("watchman: version handshake: %w", err)
	}

	var resp versionResponse
	if err := conn.ReadJSON(&resp); err != nil {
		conn.Close()
		return nil, fmt.Errorf("watchman: version handshake: %w", err)
	}
	if resp.Error != "" {
		conn.Close()
		return nil, fmt.Errorf("watchman: version handshake: %s", resp.Error)
	}

	caps := make(CapabilitySet, len(resp.Capabilities))
	for name, supported := range resp.Capabilities {
		if supported {
			caps[Capability(name)] = struct{}{}
		}
	}
	logger.Debug("Watch service connected.", "version", resp.Version, "capabilities", len(caps))

	return &Client{conn: conn, caps: caps}, nil
}

// Capabilities returns the capability set the server advertised at dial
// time. The returned set must be treated as read-only.
func (c *Client) Capabilities() CapabilitySet {
	return c.caps
}

// subscribeResponse is the acknowledgement frame for a subscribe request.
type subscribeResponse struct {
	Subscribe string `json:"subscribe"`
	Error     string `json:"error"`
}

// Subscribe registers a named subscription for paths under root matching
// any of the given expressions and waits for the acknowledgement.
func (c *Client) Subscribe(ctx context.Context, root, name string, exprs ...Expr) error {
	if len(exprs) == 0 {
		return fmt.Errorf("watchman: subscribe %q: no expressions", name)
	}
	logger := ctxlog.FromContext(ctx)

	frame := []any{"subscribe", root, name, map[string]any{
		"expression": AnyOf(exprs...),
		"fields":     []string{"name"},
	}}
	if err := c.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("watchman: subscribe %q: %w", name, err)
	}

	var resp subscribeResponse
	if err := c.conn.ReadJSON(&resp); err != nil {
		return fmt.Errorf("watchman: subscribe %q: %w", name, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("watchman: subscribe %q: %s", name, resp.Error)
	}
	logger.Debug("Watch subscription established.", "name", resp.Subscribe, "root", root)
	return nil
}

// Close tears down the websocket connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
