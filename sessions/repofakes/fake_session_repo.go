package fakesessionrepo

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-mall-client/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// ErrInjected is returned by a FakeSessionRepo whose Fail flag is set
var ErrInjected = errors.New("injected storage failure")

type FakeSessionRepo struct {
	values map[string]string
	lock   sync.RWMutex

	// Fail makes every write return ErrInjected
	Fail bool
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		values: make(map[string]string),
	}
}

func (sr *FakeSessionRepo) Get(key string) (string, bool, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	value, ok := sr.values[key]
	return value, ok, nil
}

func (sr *FakeSessionRepo) SetAll(entries map[string]string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Fail {
		return ErrInjected
	}
	for k, v := range entries {
		sr.values[k] = v
	}
	return nil
}

func (sr *FakeSessionRepo) Delete(keys ...string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.Fail {
		return ErrInjected
	}
	for _, k := range keys {
		delete(sr.values, k)
	}
	return nil
}

// Len returns the number of stored entries
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.values)
}
