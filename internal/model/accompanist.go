package model

import "time"

// 随队人员类型
const (
	AccompanistFaculty      = "faculty"
	AccompanistProfessional = "professional"
)

// Accompanist 随队人员，对应 accompanists
type Accompanist struct {
	AccompanistID    int64     `gorm:"primaryKey;autoIncrement"           json:"accompanist_id"`
	CollegeID        int64     `gorm:"not null;index"                     json:"college_id"`
	FullName         string    `gorm:"type:varchar(255);not null"         json:"full_name"`
	Phone            string    `gorm:"type:varchar(20);not null;default:''"  json:"phone"`
	Email            string    `gorm:"type:varchar(255);not null;default:''" json:"email"`
	AccompanistType  string    `gorm:"type:varchar(20);not null;default:'faculty'" json:"accompanist_type"`
	PassportPhotoURL *string   `gorm:"type:varchar(500)"                  json:"passport_photo_url,omitempty"`
	IDProofURL       *string   `gorm:"column:id_proof_url;type:varchar(500)" json:"id_proof_url,omitempty"`
	IsTeamManager    bool      `gorm:"not null;default:false"             json:"is_team_manager"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Accompanist) TableName() string { return "accompanists" }

// AccompanistSession 领队资料补全会话，对应 accompanist_sessions
type AccompanistSession struct {
	SessionID       string    `gorm:"type:varchar(64);primaryKey"        json:"session_id"`
	CollegeID       int64     `gorm:"not null"                           json:"college_id"`
	FullName        string    `gorm:"type:varchar(255);not null"         json:"full_name"`
	Phone           string    `gorm:"type:varchar(20);not null;default:'PENDING'"  json:"phone"`
	Email           string    `gorm:"type:varchar(255);not null;default:'PENDING'" json:"email"`
	AccompanistType string    `gorm:"type:varchar(20);not null;default:'faculty'"  json:"accompanist_type"`
	StudentID       *int64    `json:"student_id,omitempty"`
	AssignedEvents  string    `gorm:"type:text;not null;default:'[]'"    json:"assigned_events"`
	ExpiresAt       time.Time `gorm:"not null;index"                     json:"expires_at"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (AccompanistSession) TableName() string { return "accompanist_sessions" }
