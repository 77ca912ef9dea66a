package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vtufest/backend/internal/dto"
	"vtufest/backend/pkg/jwt"
	"vtufest/backend/pkg/response"
)

// 上下文键
const (
	AuthContextKey = "auth"
	ContextUserID  = "user_id"
	ContextCollege = "college_id"
	ContextRole    = "role"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证令牌。
// 任何认证失败都返回 401 + 固定提示 + 登录跳转地址，前端据此回到登录页。
func JWTAuth(jwtMgr *jwt.Manager, loginRedirect string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthRequired(c, loginRedirect)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AuthRequired(c, loginRedirect)
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.AuthRequired(c, loginRedirect)
			c.Abort()
			return
		}

		auth := &dto.AuthContext{
			UserID:    claims.UserID,
			CollegeID: claims.CollegeID,
			Role:      strings.ToUpper(claims.Role),
			FullName:  claims.FullName,
		}

		// 将用户信息注入上下文
		c.Set(AuthContextKey, auth)
		c.Set(ContextUserID, auth.UserID)
		c.Set(ContextCollege, auth.CollegeID)
		c.Set(ContextRole, auth.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一（大小写不敏感）
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Forbidden(c, rolesMessage(allowedRoles))
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(role, r) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, rolesMessage(allowedRoles))
		c.Abort()
	}
}

// rolesMessage "Unauthorized: Principal or Manager role required"
func rolesMessage(roles []string) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		lower := strings.ToLower(r)
		if lower == "" {
			continue
		}
		names = append(names, strings.ToUpper(lower[:1])+lower[1:])
	}
	return "Unauthorized: " + strings.Join(names, " or ") + " role required"
}
