package model

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleTrainer  UserRole = "trainer"
	RoleObserver UserRole = "observer"
)

// User 账号实体，角色在创建后不可变更
// swagger:model User
type User struct {
	UUIDBase
	Username string   `gorm:"size:150;unique;not null" json:"username"`
	Email    string   `gorm:"size:150;unique;not null" json:"email"`
	Password string   `gorm:"size:256;not null" json:"-"`
	Role     UserRole `gorm:"size:50;not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
