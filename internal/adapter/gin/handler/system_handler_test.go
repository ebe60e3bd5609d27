package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSystemTest() (*gin.Engine, *SystemHandler) {
	gin.SetMode(gin.TestMode)
	handler := NewSystemHandler()
	r := gin.New()
	return r, handler
}

func TestPing(t *testing.T) {
	r, handler := setupSystemTest()
	r.GET("/ping", handler.Ping)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp PingResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "pong", resp.Message)
}

func TestEcho(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler := setupSystemTest()
		r.POST("/echo", handler.Echo)

		jsonBody, _ := json.Marshal(EchoRequest{Message: "hello"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/echo", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp EchoResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "hello", resp.Message)
	})

	t.Run("Missing Message", func(t *testing.T) {
		r, handler := setupSystemTest()
		r.POST("/echo", handler.Echo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/echo", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
