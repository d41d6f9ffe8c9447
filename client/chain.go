package client

import (
	"errors"
	"strings"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/gin-gonic/gin"
)

type ChainUserResponse struct {
	ID           string   `json:"id"`
	CoursesOwned []string `json:"coursesOwned"`
}

type IndexerStatusResponse struct {
	Contract      string `json:"contract"`
	IndexedHeight int64  `json:"indexedHeight"`
}

// GetCatalog godoc
// @Summary Off-chain course metadata merged with indexed chain state
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.Entry
// @Router /catalog [get]
func (s *Server) GetCatalog(c *gin.Context) {
	c.JSON(200, s.Catalog.Entries(c.Request.Context()))
}

// GetChainCourses godoc
// @Summary Indexed on-chain courses
// @Tags chain
// @Produce json
// @Success 200 {array} db.ChainCourse
// @Router /chain/courses [get]
func (s *Server) GetChainCourses(c *gin.Context) {
	courses, err := db.GetChainCourses(s.DB.WithContext(c.Request.Context()))
	if err != nil {
		serverError(c, "Error fetching indexed courses", err)
		return
	}
	c.JSON(200, courses)
}

// GetChainCourse godoc
// @Summary One indexed on-chain course
// @Tags chain
// @Produce json
// @Param id path string true "on-chain course id"
// @Success 200 {object} db.ChainCourse
// @Failure 404 {object} ErrorResponse
// @Router /chain/courses/{id} [get]
func (s *Server) GetChainCourse(c *gin.Context) {
	course, err := db.GetChainCourse(s.DB.WithContext(c.Request.Context()), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Course not found."})
		return
	} else if err != nil {
		serverError(c, "Error fetching indexed course", err)
		return
	}
	c.JSON(200, course)
}

// GetChainUser godoc
// @Summary An indexed user and the courses it owns
// @Tags chain
// @Produce json
// @Param address path string true "user address"
// @Success 200 {object} ChainUserResponse
// @Failure 404 {object} ErrorResponse
// @Router /chain/users/{address} [get]
func (s *Server) GetChainUser(c *gin.Context) {
	user, owned, err := db.GetChainUser(s.DB.WithContext(c.Request.Context()), strings.ToLower(c.Param("address")))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "User not found."})
		return
	} else if err != nil {
		serverError(c, "Error fetching indexed user", err)
		return
	}
	c.JSON(200, ChainUserResponse{ID: user.ID, CoursesOwned: owned})
}

// GetPlatformFees godoc
// @Summary Collected platform fees
// @Tags chain
// @Produce json
// @Param course query string false "on-chain course id"
// @Success 200 {array} db.PlatformFee
// @Router /chain/fees [get]
func (s *Server) GetPlatformFees(c *gin.Context) {
	fees, err := db.GetPlatformFees(s.DB.WithContext(c.Request.Context()), c.Query("course"))
	if err != nil {
		serverError(c, "Error fetching platform fees", err)
		return
	}
	c.JSON(200, fees)
}

// GetPlatformStats godoc
// @Summary Platform totals, fee rate and treasury
// @Tags chain
// @Produce json
// @Success 200 {object} db.PlatformStats
// @Failure 404 {object} ErrorResponse
// @Router /chain/stats [get]
func (s *Server) GetPlatformStats(c *gin.Context) {
	stats, err := db.GetPlatformStats(s.DB.WithContext(c.Request.Context()))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Platform stats not indexed yet."})
		return
	} else if err != nil {
		serverError(c, "Error fetching platform stats", err)
		return
	}
	c.JSON(200, stats)
}

// GetIndexerStatus godoc
// @Summary Highest block indexed for the configured contract, -1 before the first batch
// @Tags chain
// @Produce json
// @Success 200 {object} IndexerStatusResponse
// @Router /chain/status [get]
func (s *Server) GetIndexerStatus(c *gin.Context) {
	height, err := db.GetHighestIndexedBlock(s.DB.WithContext(c.Request.Context()), s.Contract)
	if err != nil {
		serverError(c, "Error fetching indexer checkpoint", err)
		return
	}
	c.JSON(200, IndexerStatusResponse{Contract: s.Contract, IndexedHeight: height})
}
