package model

import "time"

// 角色。令牌中的角色按大写比较
const (
	RolePrincipal = "PRINCIPAL"
	RoleManager   = "MANAGER"
)

// User 账号表，对应 users
type User struct {
	UserID       int64     `gorm:"primaryKey;autoIncrement"           json:"user_id"`
	FullName     string    `gorm:"type:varchar(255);not null"         json:"full_name"`
	Email        string    `gorm:"type:varchar(255);not null;unique"  json:"email"`
	Phone        *string   `gorm:"type:varchar(20)"                   json:"phone,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null"         json:"-"`
	Role         string    `gorm:"type:varchar(50);not null"          json:"role"`
	CollegeID    *int64    `json:"college_id,omitempty"`
	IsActive     bool      `gorm:"not null;default:true"              json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
