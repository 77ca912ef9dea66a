package handler

import "vtufest/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Assignment *AssignmentHandler
	College    *CollegeHandler
	Manager    *ManagerHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, db Pinger) *Handler {
	return &Handler{
		Assignment: NewAssignmentHandler(svc.Assignment),
		College:    NewCollegeHandler(svc.Lock, svc.Event),
		Manager:    NewManagerHandler(svc.Manager, svc.ManagerProfile),
		Export:     NewExportHandler(svc.Export),
		Health:     NewHealthHandler(db),
	}
}
