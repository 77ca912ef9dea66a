package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/service"
	"vtufest/backend/pkg/response"
)

// ManagerHandler 领队账号与资料补全
type ManagerHandler struct {
	managerSvc service.ManagerService
	profileSvc service.ManagerProfileService
}

// NewManagerHandler 创建 ManagerHandler
func NewManagerHandler(managerSvc service.ManagerService, profileSvc service.ManagerProfileService) *ManagerHandler {
	return &ManagerHandler{managerSvc: managerSvc, profileSvc: profileSvc}
}

// Assign 校长为本学院分配领队
// POST /api/v1/assign-manager
func (h *ManagerHandler) Assign(c *gin.Context) {
	auth, ok := MustGetAuth(c)
	if !ok {
		return
	}

	var req dto.AssignManagerRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.managerSvc.Assign(c.Request.Context(), auth, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Team Manager assigned successfully. Email sent with login credentials.", resp)
}

// Profile 领队资料补全，按 action 分发
// POST /api/v1/manager-profile
func (h *ManagerHandler) Profile(c *gin.Context) {
	auth, ok := MustGetAuth(c)
	if !ok {
		return
	}

	var req dto.ManagerProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	switch strings.TrimSpace(req.Action) {
	case "":
		response.BadRequest(c, "action is required")

	case dto.ProfileActionCheck:
		st, err := h.profileSvc.Status(ctx, auth)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, st)

	case dto.ProfileActionInit:
		resp, err := h.profileSvc.Init(ctx, auth)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, resp)

	case dto.ProfileActionFinalize:
		resp, err := h.profileSvc.Finalize(ctx, auth, strings.TrimSpace(req.SessionID))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OKMessage(c, "Profile completed successfully. You are now counted in the 45-person quota.", resp)

	default:
		response.BadRequest(c, "Invalid action")
	}
}
