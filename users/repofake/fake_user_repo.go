package fakeuserrepo

import (
	"sort"
	"sync"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users     map[int64]*users.User
	usernames map[string]int64 // username to user id
	nextID    int64
	lock      sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:     make(map[int64]*users.User),
		usernames: make(map[string]int64),
		nextID:    1,
	}
}

func (ur *FakeUserRepo) Create(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.usernames[user.Username]; ok {
		return mallerrors.ErrUserExists
	}

	user.ID = ur.nextID
	ur.nextID++

	stored := *user
	ur.users[user.ID] = &stored
	ur.usernames[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) Update(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return mallerrors.ErrUserNotFound
	}
	if existing.Username != user.Username {
		return mallerrors.Wrapf(mallerrors.ErrInvalidInput, "username cannot change")
	}

	stored := *user
	ur.users[user.ID] = &stored
	return nil
}

func (ur *FakeUserRepo) GetByID(id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, mallerrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernames[username]
	if !ok {
		return nil, mallerrors.ErrUserNotFound
	}
	copied := *ur.users[id]
	return &copied, nil
}

func (ur *FakeUserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, user := range ur.users {
		copied := *user
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}
