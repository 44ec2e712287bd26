package model

// User roles. The role is assigned once at registration and is the sole
// authorization signal consulted by the access policy.
const (
	RoleWorker  = "worker"
	RoleStudent = "student"
)

// User is the account record shared by students and workers.
type User struct {
	ID           uint   `gorm:"primaryKey"                 json:"id"`
	Username     string `gorm:"type:varchar(150);not null" json:"username"`
	FirstName    string `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(150);not null" json:"last_name"`
	MiddleName   string `gorm:"type:varchar(20)"           json:"middle_name,omitempty"`
	Email        string `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         string `gorm:"type:varchar(20);not null"  json:"role"`
	Slug         string `gorm:"type:varchar(255)"          json:"slug"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
