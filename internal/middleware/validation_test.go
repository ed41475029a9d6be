package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeKeyValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	type payload struct {
		Key string `json:"key" binding:"required,type_key"`
	}

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		key  string
		want int
	}{
		{"business_approved", http.StatusOK},
		{"job2_approved", http.StatusOK},
		{"BusinessApproved", http.StatusBadRequest},
		{"business-approved", http.StatusBadRequest},
		{"2fa_enabled", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"key":"`+tc.key+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "key %q", tc.key)
	}
}
