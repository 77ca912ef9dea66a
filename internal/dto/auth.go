package dto

// AuthContext 从令牌解析出的调用方身份，由 JWTAuth 中间件写入上下文
type AuthContext struct {
	UserID    int64  `json:"user_id"`
	CollegeID int64  `json:"college_id"`
	Role      string `json:"role"`
	FullName  string `json:"full_name,omitempty"`
}
