package model

import "time"

// 人员类型
const (
	PersonStudent     = "student"
	PersonAccompanist = "accompanist"
)

// 名单角色
const (
	RosterParticipant = "participant"
	RosterAccompanist = "accompanist"
)

// RosterEntry 赛项名单中的一行。
// 25 张 event_* 表结构相同，没有固定表名，读写时由调用方用 db.Table 指定。
type RosterEntry struct {
	EntryID          int64     `gorm:"primaryKey;autoIncrement"            json:"entry_id"`
	CollegeID        int64     `gorm:"not null"                           json:"college_id"`
	CollegeName      string    `gorm:"type:varchar(255);not null"          json:"college_name"`
	PersonType       string    `gorm:"type:varchar(20);not null"          json:"person_type"`
	PersonID         int64     `gorm:"not null"                           json:"person_id"`
	FullName         string    `gorm:"type:varchar(255);not null"          json:"full_name"`
	USN              *string   `gorm:"column:usn;type:varchar(50)"         json:"usn,omitempty"`
	Phone            string    `gorm:"type:varchar(20);not null;default:''"  json:"phone"`
	Email            string    `gorm:"type:varchar(255);not null;default:''" json:"email"`
	PhotoURL         *string   `gorm:"type:varchar(500)"                   json:"photo_url,omitempty"`
	Role             string    `gorm:"type:varchar(20);not null"           json:"role"`
	AssignedByUserID *int64    `json:"assigned_by_user_id,omitempty"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
}
