package dto

// ── 领队 DTO ──

// AssignManagerRequest POST /assign-manager 请求体
type AssignManagerRequest struct {
	ManagerName  string `json:"manager_name"`
	ManagerEmail string `json:"manager_email"`
	ManagerPhone string `json:"manager_phone"`
}

// AssignManagerResponse 新建领队账号
type AssignManagerResponse struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// 领队资料动作
const (
	ProfileActionCheck    = "check_profile_status"
	ProfileActionInit     = "init_manager_profile"
	ProfileActionFinalize = "finalize_manager_profile"
)

// ManagerProfileRequest POST /manager-profile 请求体
type ManagerProfileRequest struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
}

// ProfileStatusResponse check_profile_status 响应
type ProfileStatusResponse struct {
	ProfileCompleted bool `json:"profile_completed"`
}

// UploadURLs 三类证件的预签名上传地址
type UploadURLs struct {
	PassportPhoto string `json:"passport_photo"`
	CollegeIDCard string `json:"college_id_card"`
	AadhaarCard   string `json:"aadhaar_card"`
}

// InitProfileResponse init_manager_profile 响应
type InitProfileResponse struct {
	SessionID  string     `json:"session_id"`
	UploadURLs UploadURLs `json:"upload_urls"`
	ExpiresAt  string     `json:"expires_at"`
}

// FinalizeProfileResponse finalize_manager_profile 响应
type FinalizeProfileResponse struct {
	AccompanistID int64 `json:"accompanist_id"`
}
