package users

type UserRepo interface {
	// Create stores a new user, assigning its ID. Usernames are unique.
	Create(user *User) error
	Update(user *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	List() ([]*User, error)
}
