package fakestore

import (
	"sync"

	"github.com/jrsteele09/go-price-dashboard/credentials"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore keeps the token in memory and counts accesses so tests can
// assert on credential traffic without touching the filesystem.
type FakeStore struct {
	token    string
	hasToken bool
	lock     sync.Mutex

	GetCalls   int
	SetCalls   int
	ClearCalls int

	GetErr   error // forced failures for error-path tests
	SetErr   error
	ClearErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// NewFakeStoreWithToken returns a store already holding token.
func NewFakeStoreWithToken(token string) *FakeStore {
	return &FakeStore{token: token, hasToken: true}
}

func (f *FakeStore) Get() (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.GetCalls++
	if f.GetErr != nil {
		return "", f.GetErr
	}
	if !f.hasToken {
		return "", credentials.ErrNoToken
	}
	return f.token, nil
}

func (f *FakeStore) Set(token string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SetCalls++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.token = token
	f.hasToken = true
	return nil
}

func (f *FakeStore) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token = ""
	f.hasToken = false
	return nil
}

// HasToken reports whether a token is currently held.
func (f *FakeStore) HasToken() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.hasToken
}
