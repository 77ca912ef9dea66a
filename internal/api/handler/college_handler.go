package handler

import (
	"github.com/gin-gonic/gin"

	"vtufest/backend/internal/service"
	"vtufest/backend/pkg/response"
)

// CollegeHandler 学院状态与赛项列表
type CollegeHandler struct {
	lockSvc  service.LockService
	eventSvc service.EventService
}

// NewCollegeHandler 创建 CollegeHandler
func NewCollegeHandler(lockSvc service.LockService, eventSvc service.EventService) *CollegeHandler {
	return &CollegeHandler{lockSvc: lockSvc, eventSvc: eventSvc}
}

// LockStatus 查询学院锁定与缴费状态
// POST /api/v1/check-lock-status
func (h *CollegeHandler) LockStatus(c *gin.Context) {
	auth, ok := MustGetAuth(c)
	if !ok {
		return
	}

	status, err := h.lockSvc.GetStatus(c.Request.Context(), auth.CollegeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, status)
}

// Events 赛项列表及本学院已用名额
// POST /api/v1/get-events
func (h *CollegeHandler) Events(c *gin.Context) {
	auth, ok := MustGetAuth(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), auth.CollegeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"events": events})
}
