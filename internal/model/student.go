package model

import "time"

// 报名审核状态
const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// Student 学生，对应 students
type Student struct {
	StudentID int64     `gorm:"primaryKey;autoIncrement"           json:"student_id"`
	CollegeID int64     `gorm:"not null;index"                     json:"college_id"`
	FullName  string    `gorm:"type:varchar(255);not null"         json:"full_name"`
	USN       string    `gorm:"column:usn;type:varchar(50);not null" json:"usn"`
	Email     string    `gorm:"type:varchar(255);not null;default:''" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null;default:''"  json:"phone"`
	PhotoURL  *string   `gorm:"type:varchar(500)"                  json:"photo_url,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// StudentApplication 报名申请，对应 student_applications，每个学生至多一条
type StudentApplication struct {
	ApplicationID int64     `gorm:"primaryKey;autoIncrement"                    json:"application_id"`
	StudentID     int64     `gorm:"not null;unique"                             json:"student_id"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
}

// TableName 指定表名
func (StudentApplication) TableName() string { return "student_applications" }

// StudentWithStatus 学生及其报名状态（无申请时 Status 为空）
type StudentWithStatus struct {
	Student
	Status string `gorm:"column:status" json:"status"`
}
