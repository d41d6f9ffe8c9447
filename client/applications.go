package client

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/util"
	"github.com/gin-gonic/gin"
)

type CreateApplicationRequest struct {
	ApplicantAddress string `json:"applicant_address"`
	Name             string `json:"name"`
	Title            string `json:"title"`
	Experience       string `json:"experience"`
}

type ReviewApplicationRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
	ReviewedBy *string `json:"reviewed_by"`
}

type ApplicationResponse struct {
	Message     string                   `json:"message"`
	Application db.InstructorApplication `json:"application"`
}

const missingApplicationFields = "Missing required fields: applicant_address, name, title"

// CreateInstructorApplication godoc
// @Summary Apply to become an instructor
// @Tags instructor-applications
// @Accept json
// @Produce json
// @Param application body CreateApplicationRequest true "application"
// @Success 201 {object} ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Router /instructor-applications [post]
func (s *Server) CreateInstructorApplication(c *gin.Context) {
	var requestBody CreateApplicationRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(400, gin.H{"error": missingApplicationFields})
		return
	}
	if util.StrNotSet(requestBody.ApplicantAddress) || util.StrNotSet(requestBody.Name) || util.StrNotSet(requestBody.Title) {
		c.JSON(400, gin.H{"error": missingApplicationFields})
		return
	}

	application := db.InstructorApplication{
		ApplicantAddress: requestBody.ApplicantAddress,
		Name:             requestBody.Name,
		Title:            requestBody.Title,
		Experience:       requestBody.Experience,
	}
	err := db.CreateInstructorApplication(s.DB.WithContext(c.Request.Context()), &application)
	if errors.Is(err, db.ErrPendingApplication) {
		c.JSON(400, gin.H{"error": "You already have a pending application"})
		return
	} else if err != nil {
		serverError(c, "Error creating instructor application", err)
		return
	}

	config.Log.Infof("New instructor application from %s", application.ApplicantAddress)
	c.JSON(201, ApplicationResponse{Message: "Instructor application submitted successfully", Application: application})
}

// GetInstructorApplications godoc
// @Summary List instructor applications
// @Tags instructor-applications
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} db.InstructorApplication
// @Router /instructor-applications [get]
func (s *Server) GetInstructorApplications(c *gin.Context) {
	applications, err := db.GetInstructorApplications(s.DB.WithContext(c.Request.Context()), c.Query("status"))
	if err != nil {
		serverError(c, "Error fetching instructor applications", err)
		return
	}
	c.JSON(200, applications)
}

// GetMyInstructorApplications godoc
// @Summary List the applications of one address
// @Tags instructor-applications
// @Produce json
// @Param address path string true "applicant address"
// @Success 200 {array} db.InstructorApplication
// @Router /instructor-applications/my/{address} [get]
func (s *Server) GetMyInstructorApplications(c *gin.Context) {
	applications, err := db.GetInstructorApplicationsForAddress(s.DB.WithContext(c.Request.Context()), c.Param("address"))
	if err != nil {
		serverError(c, "Error fetching instructor applications", err)
		return
	}
	c.JSON(200, applications)
}

// ReviewInstructorApplication godoc
// @Summary Approve or reject an application
// @Tags instructor-applications
// @Accept json
// @Produce json
// @Param id path int true "application id"
// @Param review body ReviewApplicationRequest true "decision"
// @Success 200 {object} ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /instructor-applications/{id} [put]
func (s *Server) ReviewInstructorApplication(c *gin.Context) {
	var requestBody ReviewApplicationRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil || !db.IsReviewStatus(requestBody.Status) {
		c.JSON(400, gin.H{"error": `Status must be either "approved" or "rejected"`})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Application id must be a number"})
		return
	}

	application, err := db.ReviewInstructorApplication(s.DB.WithContext(c.Request.Context()), uint(id), requestBody.Status, requestBody.AdminNotes, requestBody.ReviewedBy)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Application not found"})
		return
	} else if err != nil {
		serverError(c, "Error reviewing instructor application", err)
		return
	}

	config.Log.Infof("Application %d %s", application.ID, application.Status)
	c.JSON(200, ApplicationResponse{Message: fmt.Sprintf("Application %s successfully", application.Status), Application: application})
}
