// Package client is a thin HTTP/WebSocket client for cmd/nastrand's serve
// mode, letting another Go program drive a live ensemble the same way the
// server's own handlers do: load a schema, insert complexes, dispatch
// ticks, list live complexes, and stream trajectory events.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/daniacca/nastrand/internal/driver"
	"github.com/daniacca/nastrand/internal/trajectory"
)

// Client talks to one running nastrand serve instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client targeting baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// LoadSchema posts cfg to /schema, replacing the server's live ensemble.
func (c *Client) LoadSchema(ctx context.Context, cfg driver.Config) error {
	return c.postJSON(ctx, "schema", cfg, nil)
}

// InsertComplex posts cc to /complex, adding one more entry to the live
// ensemble without disturbing what is already running.
func (c *Client) InsertComplex(ctx context.Context, cc driver.ComplexConfig) error {
	return c.postJSON(ctx, "complex", cc, nil)
}

// Tick dispatches a single kinetic Monte Carlo step and returns the
// resulting trajectory event.
func (c *Client) Tick(ctx context.Context) (trajectory.StepEvent, error) {
	var ev trajectory.StepEvent
	err := c.postJSON(ctx, "tick", nil, &ev)
	return ev, err
}

// ListComplexes returns a dump of every currently live complex.
func (c *Client) ListComplexes(ctx context.Context) ([]map[string]any, error) {
	u, err := url.JoinPath(c.baseURL, "complexes")
	if err != nil {
		return nil, fmt.Errorf("client: building url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(body))
	}

	var dumps []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&dumps); err != nil {
		return nil, fmt.Errorf("client: decoding response: %w", err)
	}
	return dumps, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("client: building url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decoding response: %w", err)
		}
	}
	return nil
}

// Watch dials the server's /ws endpoint and streams decoded StepEvents to
// the returned channel until ctx is cancelled or the connection drops; the
// channel is closed on either exit. Decode errors are sent to errCh and do
// not stop the stream.
func (c *Client) Watch(ctx context.Context, errCh chan<- error) (<-chan trajectory.StepEvent, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parsing base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = u.Path + "/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("client: dialing websocket: %w", err)
	}

	events := make(chan trajectory.StepEvent, 64)
	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var ev trajectory.StepEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if errCh != nil {
					select {
					case errCh <- err:
					default:
					}
				}
				var syntaxErr *json.SyntaxError
				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
					continue
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return events, nil
}
