package store

import "context"

// Memory is an in-process KV. Err, when set, is returned by every call.
type Memory struct {
	data map[string]string
	Err  error
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.data[key] = value
	return nil
}

// Delete implements KV.
func (m *Memory) Delete(_ context.Context, key string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.data, key)
	return nil
}
