package bootstrap

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeley-decal/decal-portal/internal/config"
)

func limitedRouter(t *testing.T, maxJSON, maxMultipart int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.MaxJSONBody = maxJSON
	cfg.Server.MaxMultipartBody = maxMultipart

	router := gin.New()
	router.Use(limitRequestBody(cfg))
	router.POST("/upload", func(c *gin.Context) {
		if _, err := c.FormFile("cpf_file"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/json", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func multipartUpload(t *testing.T, payloadSize int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("cpf_file", "form.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), payloadSize))
	require.NoError(t, err)
	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

func TestLimitRequestBodyRejectsOversizedUpload(t *testing.T) {
	router := limitedRouter(t, 1<<10, 4<<10)

	body, contentType := multipartUpload(t, 16<<10)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLimitRequestBodyAllowsUploadWithinCap(t *testing.T) {
	router := limitedRouter(t, 1<<10, 64<<10)

	body, contentType := multipartUpload(t, 16<<10)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimitRequestBodyCapsJSONSeparately(t *testing.T) {
	router := limitedRouter(t, 64, 64<<10)

	big := strings.NewReader(`{"padding":"` + strings.Repeat("x", 256) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/json", big)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	small := strings.NewReader(`{"ok":true}`)
	req = httptest.NewRequest(http.MethodPost, "/json", small)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
