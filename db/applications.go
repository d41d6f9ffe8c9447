package db

import (
	"time"

	"gorm.io/gorm"
)

// CreateInstructorApplication stores a new pending application unless the applicant already has one pending.
func CreateInstructorApplication(db *gorm.DB, application *InstructorApplication) error {
	return db.Transaction(func(dbTransaction *gorm.DB) error {
		var pending int64
		err := dbTransaction.Model(&InstructorApplication{}).
			Where("applicant_address = ? AND status = ?", application.ApplicantAddress, ApplicationStatusPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingApplication
		}

		application.Status = ApplicationStatusPending
		return dbTransaction.Create(application).Error
	})
}

// GetInstructorApplications lists applications newest first, optionally filtered by status.
func GetInstructorApplications(db *gorm.DB, status string) ([]InstructorApplication, error) {
	var applications []InstructorApplication
	query := db.Order("created_at desc").Order("id desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	result := query.Find(&applications)
	return applications, result.Error
}

func GetInstructorApplicationsForAddress(db *gorm.DB, address string) ([]InstructorApplication, error) {
	var applications []InstructorApplication
	result := db.Where("applicant_address = ?", address).Order("created_at desc").Order("id desc").Find(&applications)
	return applications, result.Error
}

// ReviewInstructorApplication records an admin decision. Status validation is the caller's job.
func ReviewInstructorApplication(db *gorm.DB, id uint, status string, adminNotes *string, reviewedBy *string) (InstructorApplication, error) {
	var application InstructorApplication
	err := db.Transaction(func(dbTransaction *gorm.DB) error {
		if err := dbTransaction.First(&application, id).Error; err != nil {
			return notFound(err)
		}

		reviewedAt := time.Now().UTC()
		application.Status = status
		application.AdminNotes = adminNotes
		application.ReviewedBy = reviewedBy
		application.ReviewedAt = &reviewedAt

		return dbTransaction.Model(&application).Select("status", "admin_notes", "reviewed_by", "reviewed_at").Updates(&application).Error
	})
	return application, err
}

func IsReviewStatus(status string) bool {
	return status == ApplicationStatusApproved || status == ApplicationStatusRejected
}
