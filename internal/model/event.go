package model

// Event 赛项配置，对应 events，event_code 与赛项目录中的 slug 一致
type Event struct {
	EventID                   int64  `gorm:"primaryKey;autoIncrement"          json:"event_id"`
	EventCode                 string `gorm:"type:varchar(64);not null;unique"  json:"event_code"`
	EventName                 string `gorm:"type:varchar(255);not null"        json:"event_name"`
	EventType                 string `gorm:"type:varchar(20);not null"         json:"event_type"`
	MaxGroupsPerCollege       int    `gorm:"not null;default:1"                json:"max_groups_per_college"`
	MaxParticipantsPerCollege int    `gorm:"not null;default:1"                json:"max_participants_per_college"`
	MaxAccompanistsPerCollege int    `gorm:"not null;default:0"                json:"max_accompanists_per_college"`
	IsActive                  bool   `gorm:"not null;default:true"             json:"is_active"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
