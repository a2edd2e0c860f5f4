package session

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryStore struct {
	lock    sync.RWMutex
	session *Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (m *InMemoryStore) Get(ctx context.Context) (*Session, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.session == nil {
		return nil, ErrNoSession
	}
	return m.session.Copy(), nil
}

func (m *InMemoryStore) Set(ctx context.Context, s *Session) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if s == nil {
		return fmt.Errorf("session is nil")
	}

	m.session = s
	return nil
}

func (m *InMemoryStore) Update(ctx context.Context, fn func(s *Session) error) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.session == nil {
		return ErrNoSession
	}
	return fn(m.session)
}

func (m *InMemoryStore) Clear(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.session = nil
	return nil
}
