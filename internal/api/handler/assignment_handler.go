package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/model"
	"vtufest/backend/internal/service"
	apperrors "vtufest/backend/pkg/errors"
	"vtufest/backend/pkg/metrics"
	"vtufest/backend/pkg/response"
)

// AssignmentHandler 赛项分配 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Handle 按 action 分发
// POST /api/v1/assign-events
//
//	FETCH  { event_slug }
//	ADD    { event_slug, person_id, person_type, event_type }
//	REMOVE { event_slug, person_id, person_type }
//
// 校长只读：除 FETCH 外的任何动作都在校验请求内容之前返回 403。
func (h *AssignmentHandler) Handle(c *gin.Context) {
	auth, ok := MustGetAuth(c)
	if !ok {
		return
	}

	// 先只读 action，校长的只读限制先于任何字段校验
	body, ok := readObject(c)
	if !ok {
		return
	}

	action := strings.ToUpper(strings.TrimSpace(body.tag("action")))
	if action == "" {
		response.BadRequest(c, "action is required")
		return
	}

	if auth.Role == model.RolePrincipal && action != dto.ActionFetch {
		metrics.ObserveAssignment(metricAction(action), string(apperrors.KindAuthorization))
		response.Forbidden(c, "Principals can only fetch event assignments (read-only)")
		return
	}

	req := dto.AssignmentRequest{
		Action:     action,
		EventSlug:  strings.TrimSpace(body.str("event_slug")),
		PersonID:   body.id("person_id"),
		PersonType: strings.TrimSpace(body.str("person_type")),
		EventType:  strings.TrimSpace(body.str("event_type")),
	}

	ctx := c.Request.Context()
	switch action {
	case dto.ActionFetch:
		roster, err := h.assignmentSvc.Fetch(ctx, auth.CollegeID, req.EventSlug)
		observe(action, err)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, roster)

	case dto.ActionAdd:
		msg, err := h.assignmentSvc.Add(ctx, auth, &req)
		observe(action, err)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OKMessage(c, msg, nil)

	case dto.ActionRemove:
		err := h.assignmentSvc.Remove(ctx, auth, &req)
		observe(action, err)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OKMessage(c, "Assignment removed successfully", nil)

	default:
		response.BadRequest(c, "Invalid action. Supported: FETCH, ADD, REMOVE")
	}
}

// metricAction 未知动作统一计为 OTHER
func metricAction(action string) string {
	switch action {
	case dto.ActionFetch, dto.ActionAdd, dto.ActionRemove:
		return action
	}
	return "OTHER"
}

func observe(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.KindOf(err))
	}
	metrics.ObserveAssignment(action, outcome)
}
