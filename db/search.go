package db

import (
	"errors"

	"gorm.io/gorm"
)

// GetChainCourses returns every live indexed course, newest first.
func GetChainCourses(db *gorm.DB) ([]ChainCourse, error) {
	var courses []ChainCourse
	result := db.Preload("Creator").Order("created_at_timestamp desc").Order("id").Find(&courses)
	return courses, result.Error
}

func GetChainCourse(db *gorm.DB, id string) (ChainCourse, error) {
	var course ChainCourse
	err := db.Preload("Creator").First(&course, "id = ?", id).Error
	return course, notFound(err)
}

// GetChainUser returns the user and the ids of the courses it owns, in purchase order.
func GetChainUser(db *gorm.DB, id string) (ChainUser, []string, error) {
	var user ChainUser
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return user, nil, notFound(err)
	}

	owned := []string{}
	err := db.Model(&CourseOwnership{}).Where("chain_user_id = ?", id).
		Order("block_height").Order("log_index").Pluck("course_id", &owned).Error
	return user, owned, err
}

// GetPlatformFees lists collected fees, optionally restricted to one course.
func GetPlatformFees(db *gorm.DB, courseID string) ([]PlatformFee, error) {
	var fees []PlatformFee
	query := db.Order("block_height desc").Order("id")
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	result := query.Find(&fees)
	return fees, result.Error
}

func GetPlatformStats(db *gorm.DB) (PlatformStats, error) {
	var stats PlatformStats
	err := db.First(&stats, "id = ?", PlatformStatsID).Error
	return stats, notFound(err)
}

// GetHighestIndexedBlock returns the checkpoint for the contract, or -1 if nothing was indexed yet.
func GetHighestIndexedBlock(db *gorm.DB, contract string) (int64, error) {
	var checkpoint IndexerCheckpoint
	err := db.First(&checkpoint, "contract = ?", contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1, nil
	}
	return checkpoint.Height, err
}

func GetFailedEvents(db *gorm.DB, contract string) ([]FailedEvent, error) {
	var failed []FailedEvent
	result := db.Where("contract = ?", contract).Order("block_height").Order("log_index").Find(&failed)
	return failed, result.Error
}
