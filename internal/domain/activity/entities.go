package activity

import "time"

type Action string

const (
	ActionLogin             Action = "LOGIN"
	ActionLogout            Action = "LOGOUT"
	ActionApplicationCreate Action = "APPLICATION_CREATE"
	ActionApplicationStatus Action = "APPLICATION_STATUS"
	ActionESignSend         Action = "ESIGN_SEND"
	ActionESignComplete     Action = "ESIGN_COMPLETE"
	ActionDisburse          Action = "DISBURSE"
	ActionProfileUpdate     Action = "BORROWER_PROFILE_UPDATE"
	ActionKYCReview         Action = "KYC_REVIEW"
	ActionKYCAttach         Action = "KYC_ATTACH"
	ActionFlagsUpdate       Action = "BORROWER_FLAGS_UPDATE"
	ActionPaymentRecord     Action = "PAYMENT_RECORD"
	ActionLateFeeWaive      Action = "LATE_FEE_WAIVE"
	ActionDocumentUpload    Action = "DOCUMENT_UPLOAD"
)

type EntityType string

const (
	EntityStaff       EntityType = "staff"
	EntityApplication EntityType = "loan_application"
	EntityBorrower    EntityType = "borrower"
	EntityRepayment   EntityType = "repayment"
	EntityDocument    EntityType = "document"
)

var EntityTypes = []EntityType{EntityApplication, EntityBorrower, EntityRepayment, EntityDocument, EntityStaff}

// Table: staff_activities
type Entry struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	ActivityID string     `gorm:"column:activity_id;type:char(32);not null;uniqueIndex:ux_staff_activities_activity_id"`
	StaffID    string     `gorm:"column:staff_id;size:64;not null;index:idx_staff_activities_staff"`
	StaffEmail string     `gorm:"column:staff_email;size:255;not null"`
	Action     Action     `gorm:"column:action;size:64;not null"`
	EntityType EntityType `gorm:"column:entity_type;size:32;not null;index:idx_staff_activities_entity,priority:1"`
	EntityID   string     `gorm:"column:entity_id;size:64;not null;index:idx_staff_activities_entity,priority:2"`
	Details    string     `gorm:"column:details;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_staff_activities_created"`
}

func (Entry) TableName() string { return "staff_activities" }

type Filter struct {
	EntityType EntityType
	EntityID   string
	StaffID    string
	Page       int
	Limit      int
}
