package client

import (
	"net/http"
	"testing"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseReturnsDerivedChainID(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := createCourse(t, r, "Solidity 101")
	assert.Equal(t, "Course metadata saved. Ready to create on-chain.", resp.Message)

	parsed, err := uuid.Parse(resp.UUID)
	require.NoError(t, err)
	assert.Equal(t, platform.ChainIDFromUUID(parsed), resp.CourseIDForChain)

	var byChainID, byUUID db.Course
	w := doRequest(t, r, http.MethodGet, "/courses/"+resp.CourseIDForChain, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &byChainID)

	w = doRequest(t, r, http.MethodGet, "/courses/"+resp.UUID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &byUUID)

	assert.Equal(t, byChainID.ID, byUUID.ID)
	assert.Equal(t, "Solidity 101", byUUID.Title)
	assert.Equal(t, "learn things", byUUID.Description)
	assert.Equal(t, creatorAddress, byUUID.CreatorAddress)
	assert.Nil(t, byUUID.ContentURL)
}

func TestCreateCourseValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/courses", gin.H{"title": "no description", "creator_address": creatorAddress})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields."}`, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/courses", gin.H{"title": "t", "description": "d", "creator_address": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/courses", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListCourses(t *testing.T) {
	r, _ := newTestRouter(t)
	createCourse(t, r, "first")
	createCourse(t, r, "second")

	var courses []db.Course
	w := doRequest(t, r, http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &courses)
	assert.Len(t, courses, 2)
}

func TestGetUnknownCourse(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/courses/12345", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Course not found."}`, w.Body.String())
}

func TestDeleteCourse(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := createCourse(t, r, "short lived")

	w := doRequest(t, r, http.MethodDelete, "/courses/"+resp.UUID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted DeleteCourseResponse
	decode(t, w, &deleted)
	assert.Equal(t, "Course deleted successfully", deleted.Message)
	assert.Equal(t, "short lived", deleted.DeletedCourse.Title)

	w = doRequest(t, r, http.MethodDelete, "/courses/"+resp.CourseIDForChain, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
