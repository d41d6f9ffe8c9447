package db

import (
	"time"

	"github.com/DefiantLabs/course-platform/util"
	"gorm.io/gorm"
)

func CreateCourse(db *gorm.DB, course *Course) error {
	return db.Create(course).Error
}

// GetCourses returns every course, newest first.
func GetCourses(db *gorm.DB) ([]Course, error) {
	var courses []Course
	result := db.Order("created_at desc").Order("id desc").Find(&courses)
	return courses, result.Error
}

// identifierColumn picks the lookup column for a course identifier: all digits means a chain id, anything else a UUID.
func identifierColumn(identifier string) string {
	if util.IsDigits(identifier) {
		return "chain_id"
	}
	return "uuid"
}

func GetCourseByIdentifier(db *gorm.DB, identifier string) (Course, error) {
	var course Course
	err := db.Where(identifierColumn(identifier)+" = ?", identifier).First(&course).Error
	return course, notFound(err)
}

// DeleteCourseByIdentifier removes the course matching identifier and returns the removed row.
func DeleteCourseByIdentifier(db *gorm.DB, identifier string) (Course, error) {
	var deleted Course
	err := db.Transaction(func(dbTransaction *gorm.DB) error {
		var err error
		deleted, err = GetCourseByIdentifier(dbTransaction, identifier)
		if err != nil {
			return err
		}
		return dbTransaction.Delete(&Course{}, deleted.ID).Error
	})
	return deleted, err
}

// GetCoursesWithoutChainCourse returns courses created before createdBefore whose chain id never showed up on-chain.
func GetCoursesWithoutChainCourse(db *gorm.DB, createdBefore time.Time) ([]Course, error) {
	var courses []Course
	result := db.Where("created_at < ?", createdBefore).
		Where("chain_id NOT IN (?)", db.Unscoped().Model(&ChainCourse{}).Select("id")).
		Order("created_at asc").
		Find(&courses)
	return courses, result.Error
}
