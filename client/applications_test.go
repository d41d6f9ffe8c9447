package client

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applicantAddress = "0x2222222222222222222222222222222222222222"

func applicationBody() gin.H {
	return gin.H{"applicant_address": applicantAddress, "name": "Ada", "title": "Engineer", "experience": "lots"}
}

func TestCreateApplication(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/instructor-applications", applicationBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var resp ApplicationResponse
	decode(t, w, &resp)
	assert.Equal(t, "Instructor application submitted successfully", resp.Message)
	assert.Equal(t, db.ApplicationStatusPending, resp.Application.Status)

	w = doRequest(t, r, http.MethodPost, "/instructor-applications", applicationBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"You already have a pending application"}`, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/instructor-applications", gin.H{"applicant_address": applicantAddress})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields: applicant_address, name, title"}`, w.Body.String())
}

func TestReviewApplication(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/instructor-applications", applicationBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created ApplicationResponse
	decode(t, w, &created)
	path := "/instructor-applications/" + strconv.FormatUint(uint64(created.Application.ID), 10)

	w = doRequest(t, r, http.MethodPut, path, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/instructor-applications/abc", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/instructor-applications/999", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Application not found"}`, w.Body.String())

	w = doRequest(t, r, http.MethodPut, path, gin.H{"status": "approved", "admin_notes": "ok", "reviewed_by": "0x3333333333333333333333333333333333333333"})
	require.Equal(t, http.StatusOK, w.Code)
	var reviewed ApplicationResponse
	decode(t, w, &reviewed)
	assert.Equal(t, "Application approved successfully", reviewed.Message)
	assert.Equal(t, db.ApplicationStatusApproved, reviewed.Application.Status)
	require.NotNil(t, reviewed.Application.ReviewedAt)
	require.NotNil(t, reviewed.Application.AdminNotes)
	assert.Equal(t, "ok", *reviewed.Application.AdminNotes)
}

func TestListApplications(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/instructor-applications", applicationBody()).Code)
	other := applicationBody()
	other["applicant_address"] = "0x4444444444444444444444444444444444444444"
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/instructor-applications", other).Code)

	var all, pending, rejected, mine []db.InstructorApplication
	decode(t, doRequest(t, r, http.MethodGet, "/instructor-applications", nil), &all)
	decode(t, doRequest(t, r, http.MethodGet, "/instructor-applications?status=pending", nil), &pending)
	decode(t, doRequest(t, r, http.MethodGet, "/instructor-applications?status=rejected", nil), &rejected)
	decode(t, doRequest(t, r, http.MethodGet, "/instructor-applications/my/"+applicantAddress, nil), &mine)

	assert.Len(t, all, 2)
	assert.Len(t, pending, 2)
	assert.Empty(t, rejected)
	require.Len(t, mine, 1)
	assert.Equal(t, applicantAddress, mine[0].ApplicantAddress)
}
