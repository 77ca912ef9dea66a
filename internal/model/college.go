package model

import "time"

// College 学院，对应 colleges
type College struct {
	CollegeID       int64      `gorm:"primaryKey;autoIncrement"            json:"college_id"`
	CollegeCode     string     `gorm:"type:varchar(20);not null;unique"    json:"college_code"`
	CollegeName     string     `gorm:"type:varchar(255);not null"          json:"college_name"`
	IsFinalApproved bool       `gorm:"not null;default:false"              json:"is_final_approved"`
	FinalApprovedAt *time.Time `json:"final_approved_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
}

// TableName 指定表名
func (College) TableName() string { return "colleges" }

// PaymentReceipt 缴费凭证，对应 payment_receipts
type PaymentReceipt struct {
	ReceiptID    int64      `gorm:"primaryKey;autoIncrement"                 json:"receipt_id"`
	CollegeID    int64      `gorm:"not null;unique"                          json:"college_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	UploadedAt   *time.Time `json:"uploaded_at,omitempty"`
	AdminRemarks *string    `json:"admin_remarks,omitempty"`
}

// TableName 指定表名
func (PaymentReceipt) TableName() string { return "payment_receipts" }

// CollegeWithPayment 学院及其缴费凭证（无凭证时缴费字段为空）
type CollegeWithPayment struct {
	College
	PaymentStatus     *string    `gorm:"column:payment_status"`
	PaymentUploadedAt *time.Time `gorm:"column:payment_uploaded_at"`
	PaymentRemarks    *string    `gorm:"column:payment_remarks"`
}
