// Package apiclient talks to the query API of a minitsdb server
package apiclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Client struct {
	Address    string
	HttpClient *http.Client
}

// Query posts q to the server and reads the series header of the response.
// The caller must Close the result.
func (c *Client) Query(ctx context.Context, q Query) (*QueryResult, error) {
	qbuf, err := q.Build()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Address, bytes.NewReader(qbuf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/yaml")

	hc := c.HttpClient
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("minitsdb query: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("minitsdb returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	r := bufio.NewReader(resp.Body)

	buf, err := r.ReadBytes('\n')
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("minitsdb header: %w", err)
	}
	var series []Series
	if err := json.Unmarshal(buf, &series); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("minitsdb header: %w", err)
	}

	return &QueryResult{
		Series: series,
		r:      r,
		body:   resp.Body,
	}, nil
}
