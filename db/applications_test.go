package db_test

import (
	"testing"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applicant = "0x2222222222222222222222222222222222222222"

func newApplication() *db.InstructorApplication {
	return &db.InstructorApplication{
		ApplicantAddress: applicant,
		Name:             "Ada",
		Title:            "Smart contract engineer",
		Experience:       "5 years",
	}
}

func TestOnePendingApplicationPerAddress(t *testing.T) {
	gormDB := dbtest.New(t)

	application := newApplication()
	require.NoError(t, db.CreateInstructorApplication(gormDB, application))
	assert.Equal(t, db.ApplicationStatusPending, application.Status)

	err := db.CreateInstructorApplication(gormDB, newApplication())
	assert.ErrorIs(t, err, db.ErrPendingApplication)

	notes := "welcome aboard"
	reviewer := "0x3333333333333333333333333333333333333333"
	reviewed, err := db.ReviewInstructorApplication(gormDB, application.ID, db.ApplicationStatusApproved, &notes, &reviewer)
	require.NoError(t, err)
	assert.Equal(t, db.ApplicationStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, reviewer, *reviewed.ReviewedBy)

	// reviewed applications no longer block a new one
	require.NoError(t, db.CreateInstructorApplication(gormDB, newApplication()))

	all, err := db.GetInstructorApplicationsForAddress(gormDB, applicant)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := db.GetInstructorApplications(gormDB, db.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	everything, err := db.GetInstructorApplications(gormDB, "")
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestReviewMissingApplication(t *testing.T) {
	gormDB := dbtest.New(t)

	_, err := db.ReviewInstructorApplication(gormDB, 99, db.ApplicationStatusRejected, nil, nil)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestIsReviewStatus(t *testing.T) {
	assert.True(t, db.IsReviewStatus(db.ApplicationStatusApproved))
	assert.True(t, db.IsReviewStatus(db.ApplicationStatusRejected))
	assert.False(t, db.IsReviewStatus(db.ApplicationStatusPending))
	assert.False(t, db.IsReviewStatus("archived"))
}
