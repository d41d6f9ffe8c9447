package db

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Course is the off-chain metadata for a course. ChainID correlates it with the on-chain course.
type Course struct {
	ID             uint      `json:"id"`
	UUID           string    `json:"uuid" gorm:"size:255;uniqueIndex;not null"`
	CreatorAddress string    `json:"creator_address" gorm:"size:42;not null"`
	Title          string    `json:"title" gorm:"size:255;not null"`
	Description    string    `json:"description" gorm:"type:text"`
	ContentURL     *string   `json:"content_url" gorm:"size:255"`
	ChainID        string    `json:"chain_id" gorm:"size:255;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

type InstructorApplication struct {
	ID               uint       `json:"id"`
	ApplicantAddress string     `json:"applicant_address" gorm:"size:42;not null;index"`
	Name             string     `json:"name" gorm:"size:100;not null"`
	Title            string     `json:"title" gorm:"size:200;not null"`
	Experience       string     `json:"experience" gorm:"type:text"`
	Status           string     `json:"status" gorm:"size:20;default:pending;index"`
	AdminNotes       *string    `json:"admin_notes" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	ReviewedBy       *string    `json:"reviewed_by" gorm:"size:42"`
}

// ChainUser is any address seen as a creator, student or fee payer.
type ChainUser struct {
	ID string `json:"id" gorm:"primaryKey;size:42"`
}

// ChainCourse is the indexed on-chain state of a course, keyed by the decimal course id.
type ChainCourse struct {
	ID                 string          `json:"id" gorm:"primaryKey;size:78"`
	CreatorID          string          `json:"-" gorm:"size:42;index"`
	Creator            ChainUser       `json:"creator"`
	PriceInYd          decimal.Decimal `json:"priceInYd" gorm:"type:numeric(78,0)"`
	CreatedAtTimestamp int64           `json:"createdAtTimestamp"`
	PurchaseCount      int64           `json:"purchaseCount"`
	CreatedTxHash      string          `json:"-" gorm:"size:66"`
	CreatedLogIndex    uint            `json:"-"`
	DeletedAt          gorm.DeletedAt  `json:"-" gorm:"index"`
}

// CourseOwnership records one purchase. A user's coursesOwned is the list of these rows.
type CourseOwnership struct {
	ID          uint   `json:"-"`
	ChainUserID string `json:"user" gorm:"size:42;index;not null"`
	CourseID    string `json:"course" gorm:"size:78;index;not null"`
	TxHash      string `json:"txHash" gorm:"size:66;uniqueIndex:idx_ownership_event;not null"`
	LogIndex    uint   `json:"logIndex" gorm:"uniqueIndex:idx_ownership_event"`
	BlockHeight int64  `json:"blockHeight"`
}

type PlatformFee struct {
	ID          string          `json:"id" gorm:"primaryKey;size:100"`
	CourseID    string          `json:"courseId" gorm:"size:78;index"`
	PayerID     string          `json:"payer" gorm:"size:42;index"`
	FeeAmount   decimal.Decimal `json:"feeAmount" gorm:"type:numeric(78,0)"`
	Timestamp   int64           `json:"timestamp"`
	BlockHeight int64           `json:"blockHeight"`
}

type PlatformStats struct {
	ID        string          `json:"id" gorm:"primaryKey;size:20"`
	TotalFees decimal.Decimal `json:"totalFees" gorm:"type:numeric(78,0)"`
	FeeRate   decimal.Decimal `json:"feeRate" gorm:"type:numeric(78,0)"`
	Treasury  string          `json:"treasury" gorm:"size:42"`
}

// TableName keeps the singular/plural naming of the indexed entities consistent.
func (PlatformStats) TableName() string {
	return "platform_stats"
}

// IndexerCheckpoint is the highest block whose logs have been fully written for a contract.
type IndexerCheckpoint struct {
	Contract  string `gorm:"primaryKey;size:42"`
	Height    int64
	UpdatedAt time.Time
}

type FailedEvent struct {
	ID          uint
	Contract    string `gorm:"size:42"`
	BlockHeight int64  `gorm:"index"`
	TxHash      string `gorm:"size:66;uniqueIndex:idx_failed_event"`
	LogIndex    uint   `gorm:"uniqueIndex:idx_failed_event"`
	EventType   string
	Code        int
	Error       string `gorm:"type:text"`
	CreatedAt   time.Time
}
