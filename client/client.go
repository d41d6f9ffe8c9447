package client

import (
	"time"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/config"
	_ "github.com/DefiantLabs/course-platform/docs"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Server holds the dependencies shared by the REST handlers.
type Server struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	// Contract is the lowercase address whose indexer checkpoint /chain/status reports.
	Contract string
}

func NewServer(gormDB *gorm.DB, cat *catalog.Catalog, contract string) *Server {
	if cat == nil {
		cat = catalog.New(gormDB, nil)
	}
	return &Server{DB: gormDB, Catalog: cat, Contract: contract}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery(), CORSMiddleware())

	courses := r.Group("/courses")
	courses.GET("", s.GetCourses)
	courses.POST("", s.CreateCourse)
	courses.GET("/:id", s.GetCourse)
	courses.DELETE("/:id", s.DeleteCourse)

	applications := r.Group("/instructor-applications")
	applications.POST("", s.CreateInstructorApplication)
	applications.GET("", s.GetInstructorApplications)
	applications.GET("/my/:address", s.GetMyInstructorApplications)
	applications.PUT("/:id", s.ReviewInstructorApplication)

	r.GET("/catalog", s.GetCatalog)

	chain := r.Group("/chain")
	chain.GET("/courses", s.GetChainCourses)
	chain.GET("/courses/:id", s.GetChainCourse)
	chain.GET("/users/:address", s.GetChainUser)
	chain.GET("/fees", s.GetPlatformFees)
	chain.GET("/stats", s.GetPlatformStats)
	chain.GET("/status", s.GetIndexerStatus)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		//Probably want to lock CORs down later, will need to know the hostname of the UI server
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLogger writes one log line per request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := config.Log.ZeroLogger.Info()
		if c.Writer.Status() >= 500 {
			event = config.Log.ZeroLogger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}

func serverError(c *gin.Context, msg string, err error) {
	config.Log.Error(msg, err)
	c.JSON(500, gin.H{"error": "Server error"})
}
