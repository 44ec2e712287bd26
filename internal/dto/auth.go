package dto

// ── auth module DTOs ──

// RegisterStudentRequest registers a new student account with its
// dormitory profile.
type RegisterStudentRequest struct {
	Username    string `json:"username"     binding:"required,min=3,max=150"`
	Password    string `json:"password"     binding:"required,min=8"`
	FirstName   string `json:"first_name"   binding:"required,max=150"`
	LastName    string `json:"last_name"    binding:"required,max=150"`
	MiddleName  string `json:"middle_name"  binding:"omitempty,max=20"`
	Email       string `json:"email"        binding:"required,email"`
	DateBirth   string `json:"date_birth"   binding:"required"` // YYYY-MM-DD
	BlockNumber int    `json:"block_number" binding:"required,gte=0"`
	Room        string `json:"room"         binding:"required,oneof=A B"`
}

// RegisterWorkerRequest registers a new worker account.
type RegisterWorkerRequest struct {
	Username   string `json:"username"    binding:"required,min=3,max=150"`
	Password   string `json:"password"    binding:"required,min=8"`
	FirstName  string `json:"first_name"  binding:"required,max=150"`
	LastName   string `json:"last_name"   binding:"required,max=150"`
	MiddleName string `json:"middle_name" binding:"omitempty,max=20"`
	Email      string `json:"email"       binding:"required,email"`
	DateBirth  string `json:"date_birth"  binding:"required"` // YYYY-MM-DD
	Post       string `json:"post"        binding:"omitempty,oneof=ADMIN COUNCIL"`
}

// LoginRequest authenticates by username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest changes the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Slug      string `json:"slug"`
}

// TokenResponse is the login/refresh reply.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}
