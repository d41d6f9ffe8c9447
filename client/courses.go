package client

import (
	"errors"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/DefiantLabs/course-platform/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type CreateCourseRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	CreatorAddress string  `json:"creator_address"`
	ContentURL     *string `json:"content_url"`
}

type CreateCourseResponse struct {
	Message          string `json:"message"`
	UUID             string `json:"uuid"`
	CourseIDForChain string `json:"courseIdForChain"`
}

type DeleteCourseResponse struct {
	Message       string    `json:"message"`
	DeletedCourse db.Course `json:"deleted_course"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// GetCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} db.Course
// @Router /courses [get]
func (s *Server) GetCourses(c *gin.Context) {
	courses, err := db.GetCourses(s.DB.WithContext(c.Request.Context()))
	if err != nil {
		serverError(c, "Error fetching courses", err)
		return
	}
	c.JSON(200, courses)
}

// CreateCourse godoc
// @Summary Save course metadata before it is created on-chain
// @Tags courses
// @Accept json
// @Produce json
// @Param course body CreateCourseRequest true "course metadata"
// @Success 201 {object} CreateCourseResponse
// @Failure 400 {object} ErrorResponse
// @Router /courses [post]
func (s *Server) CreateCourse(c *gin.Context) {
	var requestBody CreateCourseRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(400, gin.H{"error": "Missing required fields."})
		return
	}

	if util.StrNotSet(requestBody.Title) || util.StrNotSet(requestBody.Description) || util.StrNotSet(requestBody.CreatorAddress) {
		c.JSON(400, gin.H{"error": "Missing required fields."})
		return
	}
	if !common.IsHexAddress(requestBody.CreatorAddress) {
		c.JSON(400, gin.H{"error": "creator_address must be a hex address."})
		return
	}

	courseUUID, chainID, err := platform.NewCourseIdentifiers()
	if err != nil {
		serverError(c, "Error generating course identifiers", err)
		return
	}

	course := db.Course{
		UUID:           courseUUID,
		CreatorAddress: requestBody.CreatorAddress,
		Title:          requestBody.Title,
		Description:    requestBody.Description,
		ContentURL:     requestBody.ContentURL,
		ChainID:        chainID,
	}
	if err := db.CreateCourse(s.DB.WithContext(c.Request.Context()), &course); err != nil {
		serverError(c, "Error creating course", err)
		return
	}
	s.Catalog.Invalidate(c.Request.Context())

	config.Log.Infof("Course created off-chain with chain_id: %s", chainID)
	c.JSON(201, CreateCourseResponse{
		Message:          "Course metadata saved. Ready to create on-chain.",
		UUID:             courseUUID,
		CourseIDForChain: chainID,
	})
}

// GetCourse godoc
// @Summary Get a course by chain id (all digits) or UUID
// @Tags courses
// @Produce json
// @Param id path string true "chain id or uuid"
// @Success 200 {object} db.Course
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (s *Server) GetCourse(c *gin.Context) {
	course, err := db.GetCourseByIdentifier(s.DB.WithContext(c.Request.Context()), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Course not found."})
		return
	} else if err != nil {
		serverError(c, "Error fetching course", err)
		return
	}
	c.JSON(200, course)
}

// DeleteCourse godoc
// @Summary Delete a course by chain id (all digits) or UUID
// @Tags courses
// @Produce json
// @Param id path string true "chain id or uuid"
// @Success 200 {object} DeleteCourseResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (s *Server) DeleteCourse(c *gin.Context) {
	deleted, err := db.DeleteCourseByIdentifier(s.DB.WithContext(c.Request.Context()), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Course not found."})
		return
	} else if err != nil {
		serverError(c, "Error deleting course", err)
		return
	}
	s.Catalog.Invalidate(c.Request.Context())

	config.Log.Infof("Course deleted: %s", deleted.Title)
	c.JSON(200, DeleteCourseResponse{Message: "Course deleted successfully", DeletedCourse: deleted})
}
