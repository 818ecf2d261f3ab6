// Package docstore is a TCP client for the document store backing the
// intake service.
//
// Protocol: each message is [4-byte little-endian length][JSON payload].
// The server responds with {"ok": true, "data": ...} or
// {"ok": false, "error": "..."}.
package docstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// Client is a single-connection document store client. Thread-safe via
// mutex; use a pool for handler concurrency.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
}

// Connect dials the document store.
func Connect(host string, port int, timeout time.Duration) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect to %s: %w", addr, err)
	}
	conn.SetDeadline(time.Time{})
	return &Client{conn: conn}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) sendRaw(data []byte) error {
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(data)))
	if _, err := c.conn.Write(lenBuf); err != nil {
		return err
	}
	_, err := c.conn.Write(data)
	return err
}

func (c *Client) recvRaw() ([]byte, error) {
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(c.conn, lenBuf); err != nil {
		return nil, fmt.Errorf("docstore: read length: %w", err)
	}
	payload := make([]byte, binary.LittleEndian.Uint32(lenBuf))
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return nil, fmt.Errorf("docstore: read payload: %w", err)
	}
	return payload, nil
}

func (c *Client) request(payload map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("docstore: marshal request: %w", err)
	}
	if err := c.sendRaw(jsonBytes); err != nil {
		return nil, fmt.Errorf("docstore: send: %w", err)
	}
	respBytes, err := c.recvRaw()
	if err != nil {
		return nil, err
	}
	var resp map[string]any
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("docstore: unmarshal response: %w", err)
	}
	return resp, nil
}

func (c *Client) checked(payload map[string]any) (any, error) {
	resp, err := c.request(payload)
	if err != nil {
		return nil, err
	}
	ok, _ := resp["ok"].(bool)
	if !ok {
		errMsg, _ := resp["error"].(string)
		if errMsg == "" {
			errMsg = "unknown error"
		}
		return nil, &Error{Msg: errMsg}
	}
	return resp["data"], nil
}

// Ping checks connection liveness. The server answers "pong".
func (c *Client) Ping() (string, error) {
	data, err := c.checked(map[string]any{"cmd": "ping"})
	if err != nil {
		return "", err
	}
	s, _ := data.(string)
	return s, nil
}

// Insert inserts a single document and returns the raw response data,
// which carries the assigned document ID.
func (c *Client) Insert(collection string, doc map[string]any) (map[string]any, error) {
	data, err := c.checked(map[string]any{"cmd": "insert", "collection": collection, "doc": doc})
	if err != nil {
		return nil, err
	}
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"status": data}, nil
}

// FindOptions holds optional parameters for Find.
type FindOptions struct {
	Sort  map[string]any
	Skip  *int
	Limit *int
}

// Find returns documents matching a query.
func (c *Client) Find(collection string, query map[string]any, opts *FindOptions) ([]map[string]any, error) {
	payload := map[string]any{"cmd": "find", "collection": collection, "query": query}
	if opts != nil {
		if opts.Sort != nil {
			payload["sort"] = opts.Sort
		}
		if opts.Skip != nil {
			payload["skip"] = *opts.Skip
		}
		if opts.Limit != nil {
			payload["limit"] = *opts.Limit
		}
	}
	data, err := c.checked(payload)
	if err != nil {
		return nil, err
	}
	return toMapSlice(data), nil
}

// FindOne returns a single document matching a query, or nil.
func (c *Client) FindOne(collection string, query map[string]any) (map[string]any, error) {
	data, err := c.checked(map[string]any{"cmd": "find_one", "collection": collection, "query": query})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	m, _ := data.(map[string]any)
	return m, nil
}

// UpdateOne updates at most one document matching a query. The response
// carries the matched/modified counts.
func (c *Client) UpdateOne(collection string, query, update map[string]any) (map[string]any, error) {
	data, err := c.checked(map[string]any{
		"cmd": "update_one", "collection": collection,
		"query": query, "update": update,
	})
	if err != nil {
		return nil, err
	}
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"status": data}, nil
}

// DeleteOne deletes at most one document matching a query.
func (c *Client) DeleteOne(collection string, query map[string]any) (map[string]any, error) {
	data, err := c.checked(map[string]any{
		"cmd": "delete_one", "collection": collection, "query": query,
	})
	if err != nil {
		return nil, err
	}
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"status": data}, nil
}

// Count returns the number of documents matching a query.
func (c *Client) Count(collection string, query map[string]any) (int, error) {
	data, err := c.checked(map[string]any{
		"cmd": "count", "collection": collection, "query": query,
	})
	if err != nil {
		return 0, err
	}
	m, _ := data.(map[string]any)
	count, _ := m["count"].(float64)
	return int(count), nil
}

// CreateIndex creates a non-unique index on a field.
func (c *Client) CreateIndex(collection, field string) error {
	_, err := c.checked(map[string]any{"cmd": "create_index", "collection": collection, "field": field})
	return err
}

// CreateUniqueIndex creates a unique index on a field.
func (c *Client) CreateUniqueIndex(collection, field string) error {
	_, err := c.checked(map[string]any{"cmd": "create_unique_index", "collection": collection, "field": field})
	return err
}

func toMapSlice(data any) []map[string]any {
	arr, _ := data.([]any)
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
