// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// mockKeyValueEntry implements jetstream.KeyValueEntry for tests.
type mockKeyValueEntry struct {
	key      string
	value    []byte
	revision uint64
}

func (m *mockKeyValueEntry) Bucket() string                  { return "mock" }
func (m *mockKeyValueEntry) Key() string                     { return m.key }
func (m *mockKeyValueEntry) Value() []byte                   { return m.value }
func (m *mockKeyValueEntry) Revision() uint64                { return m.revision }
func (m *mockKeyValueEntry) Created() time.Time              { return time.Now() }
func (m *mockKeyValueEntry) Delta() uint64                   { return 0 }
func (m *mockKeyValueEntry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

// mockKeyLister implements jetstream.KeyLister for tests.
type mockKeyLister struct {
	keys []string
}

func (m *mockKeyLister) Keys() <-chan string {
	ch := make(chan string, len(m.keys))
	for _, key := range m.keys {
		ch <- key
	}
	close(ch)
	return ch
}

func (m *mockKeyLister) Stop() error { return nil }

// MockNatsKeyValue is an in-memory INatsKeyValue for tests. It keeps
// per-key revisions so optimistic concurrency behaves like JetStream.
type MockNatsKeyValue struct {
	mu        sync.Mutex
	data      map[string][]byte
	revisions map[string]uint64

	// Error injection for failure-path tests.
	GetError    error
	PutError    error
	CreateError error
	UpdateError error
	DeleteError error
	ListError   error
}

// NewMockNatsKeyValue creates an empty in-memory KV store.
func NewMockNatsKeyValue() *MockNatsKeyValue {
	return &MockNatsKeyValue{
		data:      make(map[string][]byte),
		revisions: make(map[string]uint64),
	}
}

func (m *MockNatsKeyValue) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return &mockKeyValueEntry{key: key, value: value, revision: m.revisions[key]}, nil
}

func (m *MockNatsKeyValue) Put(_ context.Context, key string, value []byte) (uint64, error) {
	if m.PutError != nil {
		return 0, m.PutError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	m.revisions[key]++
	return m.revisions[key], nil
}

func (m *MockNatsKeyValue) Create(_ context.Context, key string, value []byte, _ ...jetstream.KVCreateOpt) (uint64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; ok {
		return 0, jetstream.ErrKeyExists
	}

	m.data[key] = value
	m.revisions[key] = 1
	return 1, nil
}

func (m *MockNatsKeyValue) Update(_ context.Context, key string, value []byte, revision uint64) (uint64, error) {
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return 0, jetstream.ErrKeyNotFound
	}
	if m.revisions[key] != revision {
		return 0, fmt.Errorf("nats: wrong last sequence: %d", m.revisions[key])
	}

	m.data[key] = value
	m.revisions[key]++
	return m.revisions[key], nil
}

func (m *MockNatsKeyValue) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return jetstream.ErrKeyNotFound
	}

	delete(m.data, key)
	delete(m.revisions, key)
	return nil
}

func (m *MockNatsKeyValue) ListKeys(_ context.Context, _ ...jetstream.WatchOpt) (jetstream.KeyLister, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return &mockKeyLister{keys: keys}, nil
}
