package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/DefiantLabs/course-platform/platform"
	"github.com/DefiantLabs/course-platform/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	PlatformStatsID = "platform"
	ZeroAddress     = "0x0000000000000000000000000000000000000000"
)

// DefaultFeeRate is 5%, expressed in basis points.
var DefaultFeeRate = decimal.NewFromInt(500)

// EventMeta is the chain context a log was emitted in.
type EventMeta struct {
	TxHash      string
	LogIndex    uint
	BlockHeight int64
	BlockTime   int64
	// TxTo is the lowercase recipient of the emitting transaction, empty for contract creations.
	TxTo string
}

type EventDBWrapper struct {
	Meta  EventMeta
	Event platform.PlatformEvent
}

// IndexEvents writes one batch of decoded events in block order and advances the contract checkpoint to height,
// all in one transaction. Every event runs in its own savepoint: an event that fails to persist is rolled back,
// recorded in failed_events with indexFailureCode and returned, and the rest of the batch continues.
// Failures found before persistence (e.g. undecodable logs) are passed in failed and recorded as-is.
func IndexEvents(db *gorm.DB, contract string, height int64, events []EventDBWrapper, failed []FailedEvent, indexFailureCode int) ([]FailedEvent, error) {
	var indexFailures []FailedEvent
	err := db.Transaction(func(dbTransaction *gorm.DB) error {
		indexFailures = nil
		for _, evt := range events {
			err := dbTransaction.Transaction(func(eventTransaction *gorm.DB) error {
				return indexEvent(eventTransaction, evt)
			})
			if err != nil {
				indexFailures = append(indexFailures, FailedEvent{
					Contract:    contract,
					BlockHeight: evt.Meta.BlockHeight,
					TxHash:      evt.Meta.TxHash,
					LogIndex:    evt.Meta.LogIndex,
					EventType:   evt.Event.GetType(),
					Code:        indexFailureCode,
					Error:       err.Error(),
				})
			}
		}

		for _, failures := range [][]FailedEvent{failed, indexFailures} {
			for _, failure := range failures {
				if err := upsertFailedEvent(dbTransaction, failure); err != nil {
					return err
				}
			}
		}

		return upsertCheckpoint(dbTransaction, contract, height)
	})
	return indexFailures, err
}

func indexEvent(db *gorm.DB, evt EventDBWrapper) error {
	switch e := evt.Event.(type) {
	case *platform.WrapperCourseCreated:
		return indexCourseCreated(db, evt.Meta, e)
	case *platform.WrapperCoursePurchased:
		return indexCoursePurchased(db, evt.Meta, e)
	case *platform.WrapperCourseDeleted:
		return indexCourseDeleted(db, e)
	case *platform.WrapperPlatformFeeCollected:
		return indexPlatformFeeCollected(db, evt.Meta, e)
	case *platform.WrapperPlatformFeeRateUpdated:
		return indexPlatformFeeRateUpdated(db, evt.Meta, e)
	case *platform.WrapperPlatformTreasuryUpdated:
		return indexPlatformTreasuryUpdated(db, evt.Meta, e)
	default:
		return fmt.Errorf("no indexer for event %T", evt.Event)
	}
}

func ensureChainUser(db *gorm.DB, id string) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ChainUser{ID: id}).Error
}

func indexCourseCreated(db *gorm.DB, meta EventMeta, e *platform.WrapperCourseCreated) error {
	creatorID := platform.AddressID(e.Creator)
	if err := ensureChainUser(db, creatorID); err != nil {
		return err
	}

	courseID := e.CourseID.String()
	var existing ChainCourse
	err := db.Unscoped().Select("created_tx_hash", "created_log_index").First(&existing, "id = ?", courseID).Error
	if err == nil && existing.CreatedTxHash == meta.TxHash && existing.CreatedLogIndex == meta.LogIndex {
		// same creation seen on a previous pass, keep the purchases counted since
		return nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// A re-emitted id overwrites the previous course and clears any deletion
	course := ChainCourse{
		ID:                 courseID,
		CreatorID:          creatorID,
		PriceInYd:          util.ToNumeric(e.PriceInYd),
		CreatedAtTimestamp: meta.BlockTime,
		PurchaseCount:      0,
		CreatedTxHash:      meta.TxHash,
		CreatedLogIndex:    meta.LogIndex,
	}
	return db.Unscoped().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"creator_id", "price_in_yd", "created_at_timestamp", "purchase_count",
			"created_tx_hash", "created_log_index", "deleted_at",
		}),
	}).Create(&course).Error
}

func indexCoursePurchased(db *gorm.DB, meta EventMeta, e *platform.WrapperCoursePurchased) error {
	studentID := platform.AddressID(e.Student)
	if err := ensureChainUser(db, studentID); err != nil {
		return err
	}

	courseID := e.CourseID.String()
	var course ChainCourse
	err := db.First(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	ownership := CourseOwnership{
		ChainUserID: studentID,
		CourseID:    courseID,
		TxHash:      meta.TxHash,
		LogIndex:    meta.LogIndex,
		BlockHeight: meta.BlockHeight,
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ownership)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// already counted on a previous pass over this block
		return nil
	}

	return db.Model(&ChainCourse{}).Where("id = ?", courseID).
		UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", 1)).Error
}

func indexCourseDeleted(db *gorm.DB, e *platform.WrapperCourseDeleted) error {
	return db.Where("id = ?", e.CourseID.String()).Delete(&ChainCourse{}).Error
}

func feeID(meta EventMeta) string {
	return fmt.Sprintf("%s-%d", meta.TxHash, meta.LogIndex)
}

func indexPlatformFeeCollected(db *gorm.DB, meta EventMeta, e *platform.WrapperPlatformFeeCollected) error {
	payerID := platform.AddressID(e.From)
	fee := PlatformFee{
		ID:          feeID(meta),
		CourseID:    e.CourseID.String(),
		PayerID:     payerID,
		FeeAmount:   util.ToNumeric(e.FeeAmount),
		Timestamp:   meta.BlockTime,
		BlockHeight: meta.BlockHeight,
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fee)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}

	stats, err := loadOrInitPlatformStats(db, meta)
	if err != nil {
		return err
	}
	stats.TotalFees = stats.TotalFees.Add(fee.FeeAmount)
	if err := db.Save(&stats).Error; err != nil {
		return err
	}

	return ensureChainUser(db, payerID)
}

func indexPlatformFeeRateUpdated(db *gorm.DB, meta EventMeta, e *platform.WrapperPlatformFeeRateUpdated) error {
	stats, err := loadOrInitPlatformStats(db, meta)
	if err != nil {
		return err
	}
	stats.FeeRate = util.ToNumeric(e.NewRate)
	return db.Save(&stats).Error
}

func indexPlatformTreasuryUpdated(db *gorm.DB, meta EventMeta, e *platform.WrapperPlatformTreasuryUpdated) error {
	stats, err := loadOrInitPlatformStats(db, meta)
	if err != nil {
		return err
	}
	stats.Treasury = platform.AddressID(e.NewTreasury)
	return db.Save(&stats).Error
}

// loadOrInitPlatformStats returns the singleton stats row, or a fresh one with no fees, the default fee rate
// and the emitting transaction's recipient as treasury.
func loadOrInitPlatformStats(db *gorm.DB, meta EventMeta) (PlatformStats, error) {
	var stats PlatformStats
	err := db.First(&stats, "id = ?", PlatformStatsID).Error
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return stats, err
	}

	treasury := meta.TxTo
	if treasury == "" {
		treasury = ZeroAddress
	}
	return PlatformStats{
		ID:        PlatformStatsID,
		TotalFees: decimal.Zero,
		FeeRate:   DefaultFeeRate,
		Treasury:  treasury,
	}, nil
}

func upsertCheckpoint(db *gorm.DB, contract string, height int64) error {
	var checkpoint IndexerCheckpoint
	err := db.First(&checkpoint, "contract = ?", contract).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && checkpoint.Height >= height {
		return nil
	}

	checkpoint = IndexerCheckpoint{Contract: contract, Height: height, UpdatedAt: time.Now().UTC()}
	return db.Save(&checkpoint).Error
}

func upsertFailedEvent(db *gorm.DB, failure FailedEvent) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "error", "event_type"}),
	}).Create(&failure).Error
}
