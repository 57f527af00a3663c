package objectstore

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemClient is an in-memory Client, used to exercise the real-time chunk
// pipeline in tests without any network access.
type MemClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	meta    map[string]Object
}

// NewMemClient returns an empty MemClient.
func NewMemClient() *MemClient {
	return &MemClient{
		objects: make(map[string][]byte),
		meta:    make(map[string]Object),
	}
}

// Put adds or replaces an object.
func (c *MemClient) Put(obj Object, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[obj.Key] = data
	c.meta[obj.Key] = obj
}

// List implements Client.
func (c *MemClient) List(_ context.Context, prefix string) ([]Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Object
	for key, meta := range c.meta {
		if strings.HasPrefix(key, prefix) {
			out = append(out, meta)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get implements Client.
func (c *MemClient) Get(_ context.Context, key string) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(&byteSliceReader{data: data}), nil
}

type byteSliceReader struct {
	data []byte
	pos  int
}

func (r *byteSliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
