package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stdout) })
	return &buf
}

func TestRequestLoggerWritesJSONLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/companies", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"companies": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/companies?q=logistics", nil)
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/companies", line["path"])
	assert.Equal(t, "q=logistics", line["query"])
	assert.Equal(t, float64(http.StatusOK), line["status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), line["request_id"])
}

func TestRequestLoggerErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(w, req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), line["status"])
}
