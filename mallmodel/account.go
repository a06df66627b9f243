package mallmodel

// UserType distinguishes customers from administrators in the login body
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeAdmin    UserType = "admin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the nested user object of a successful login body
type LoginUser struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Profile is returned by GET /customer/profile under "user_profile"
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Info     string `json:"info,omitempty"`
}

// ProfileUpdate is the body for PUT /customer/profile. Empty fields are left unchanged.
type ProfileUpdate struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}
