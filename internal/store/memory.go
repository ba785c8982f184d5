// README: In-memory Tree implementation for tests and local development.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
)

// Memory keeps the whole tree as nested map[string]interface{} values,
// normalised through JSON so typed reads and writes behave like the RTDB
// wire format. A single mutex makes transactions trivially atomic.
type Memory struct {
	mu   sync.Mutex
	root map[string]interface{}
}

func NewMemory() *Memory {
	return &Memory{root: make(map[string]interface{})}
}

func (s *Memory) Get(ctx context.Context, path string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.lookup(path)
	if !ok || node == nil {
		return nil
	}
	return remarshal(node, v)
}

func (s *Memory) Set(ctx context.Context, path string, v interface{}) error {
	norm, err := normalize(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(path, norm)
	return nil
}

func (s *Memory) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, _ := s.lookup(path)
	m, ok := node.(map[string]interface{})
	if !ok {
		m = make(map[string]interface{})
	}
	for k, v := range fields {
		norm, err := normalize(v)
		if err != nil {
			return err
		}
		if norm == nil {
			delete(m, k)
			continue
		}
		m[k] = norm
	}
	s.put(path, m)
	return nil
}

func (s *Memory) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(path, nil)
	return nil
}

func (s *Memory) Push(ctx context.Context, path string, v interface{}) (string, error) {
	key := newKey()
	if err := s.Set(ctx, path+"/"+key, v); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Memory) Transaction(ctx context.Context, path string, fn UpdateFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, _ := s.lookup(path)
	next, err := fn(memNode{value: node})
	if err != nil {
		return err
	}
	norm, err := normalize(next)
	if err != nil {
		return err
	}
	s.put(path, norm)
	return nil
}

type memNode struct {
	value interface{}
}

func (n memNode) Unmarshal(v interface{}) error {
	if n.value == nil {
		return nil
	}
	return remarshal(n.value, v)
}

// lookup walks the tree; callers hold the mutex.
func (s *Memory) lookup(path string) (interface{}, bool) {
	var node interface{} = s.root
	for _, seg := range segments(path) {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// put replaces the node at path, creating parents; nil removes the node.
func (s *Memory) put(path string, value interface{}) {
	segs := segments(path)
	if len(segs) == 0 {
		m, ok := value.(map[string]interface{})
		if !ok {
			m = make(map[string]interface{})
		}
		s.root = m
		return
	}
	parent := s.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := parent[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			parent[seg] = child
		}
		parent = child
	}
	last := segs[len(segs)-1]
	if value == nil {
		delete(parent, last)
		return
	}
	parent[last] = value
}

func segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func remarshal(node, v interface{}) error {
	b, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func newKey() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "-" + hex.EncodeToString(b[:])
}
