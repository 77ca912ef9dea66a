package dto

// ── 赛项分配 DTO ──

// 分配动作
const (
	ActionFetch  = "FETCH"
	ActionAdd    = "ADD"
	ActionRemove = "REMOVE"
)

// 分配类型
const (
	EventTypeParticipating = "participating"
	EventTypeAccompanying  = "accompanying"
)

// AssignmentRequest POST /assign-events 请求体，字段按 action 取用
type AssignmentRequest struct {
	Action     string `json:"action"`
	EventSlug  string `json:"event_slug"`
	PersonID   int64  `json:"person_id"`
	PersonType string `json:"person_type"`
	EventType  string `json:"event_type"`
}

// RosterPerson 名单中的一人（分配时的快照）
type RosterPerson struct {
	PersonID   int64  `json:"person_id"`
	PersonType string `json:"person_type"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// AvailableStudent 可分配的已审核学生
type AvailableStudent struct {
	StudentID int64  `json:"student_id"`
	FullName  string `json:"full_name"`
	USN       string `json:"usn"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// AvailableAccompanist 可分配的随队人员
type AvailableAccompanist struct {
	AccompanistID   int64  `json:"accompanist_id"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	AccompanistType string `json:"accompanist_type"`
}

// EventRosterResponse FETCH 响应
type EventRosterResponse struct {
	EventSlug             string                 `json:"event_slug"`
	Participants          []RosterPerson         `json:"participants"`
	Accompanists          []RosterPerson         `json:"accompanists"`
	AvailableStudents     []AvailableStudent     `json:"available_students"`
	AvailableAccompanists []AvailableAccompanist `json:"available_accompanists"`
}
