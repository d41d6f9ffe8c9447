package main

import (
	"os"

	"github.com/DefiantLabs/course-platform/cmd"
)

// @title course-platform API
// @version 1.0
// @description Course metadata, instructor applications and indexed CoursePlatform contract state.
// @BasePath /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
