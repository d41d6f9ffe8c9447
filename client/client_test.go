package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/db/dbtest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	creatorAddress = "0x1111111111111111111111111111111111111111"
	contract       = "0x00000000000000000000000000000000000000c0"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	gormDB := dbtest.New(t)
	return NewServer(gormDB, catalog.New(gormDB, nil), contract).Router(), gormDB
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func createCourse(t *testing.T, r http.Handler, title string) CreateCourseResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/courses", gin.H{
		"title":           title,
		"description":     "learn things",
		"creator_address": creatorAddress,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp CreateCourseResponse
	decode(t, w, &resp)
	return resp
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodOptions, "/courses", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDocServed(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/instructor-applications/{id}")
}
