package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"gameportal-backend/internal/domains/game/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImportService struct {
	result *model.ImportResult
	err    error
}

func (s *stubImportService) ImportGames(context.Context, *multipart.FileHeader) (*model.ImportResult, error) {
	return s.result, s.err
}

func (s *stubImportService) TemplateCSV() []byte {
	return []byte("title,description,thumbnailurl,gameurl\n")
}

func newImportRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if withFile {
		fw, err := w.CreateFormFile("file", "games.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("title,description,thumbnailurl,gameurl\na,b,c,d\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/games/bulk-import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func performImport(t *testing.T, svc *stubImportService, withFile, authenticated bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = newImportRequest(t, withFile)
	if authenticated {
		c.Set("user_id", "11111111-1111-1111-1111-111111111111")
	}

	NewBulkImportHandler(svc).ImportGames(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestImportGames_RequiresAuthenticatedUser(t *testing.T) {
	rec, body := performImport(t, &stubImportService{}, true, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unauthorized", body["message"])
}

func TestImportGames_RequiresFile(t *testing.T) {
	rec, body := performImport(t, &stubImportService{}, false, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "file is required (multipart/form-data)", body["message"])
}

func TestImportGames_PreconditionFailureIs400(t *testing.T) {
	svc := &stubImportService{err: model.NewPreconditionError("file must have a .csv extension")}
	rec, body := performImport(t, svc, true, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "file must have a .csv extension", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestImportGames_StructuralErrorsIncluded(t *testing.T) {
	svc := &stubImportService{err: &model.PreconditionError{
		Message: "CSV contains structural errors",
		CSVErrors: []model.CSVError{
			{Row: 3, Code: "parse_error", Message: "wrong number of fields"},
		},
	}}
	rec, body := performImport(t, svc, true, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, body, "errors")
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, float64(3), first["row"])
	assert.Equal(t, "parse_error", first["code"])
}

func TestImportGames_UnexpectedErrorIs500(t *testing.T) {
	svc := &stubImportService{err: errors.New("connection reset")}
	rec, body := performImport(t, svc, true, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "bulk import failed", body["message"])
}

func TestImportGames_FullSuccessIs200(t *testing.T) {
	svc := &stubImportService{result: &model.ImportResult{
		Total: 2, Success: 2, Failed: 0,
		Errors: []model.RowError{}, Warnings: []model.RowWarning{},
		SuccessRate: "100.0%",
	}}
	rec, body := performImport(t, svc, true, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "import completed", body["message"])

	results := body["results"].(map[string]interface{})
	assert.Equal(t, "100.0%", results["successRate"])
}

func TestImportGames_PartialFailureIsStill200(t *testing.T) {
	svc := &stubImportService{result: &model.ImportResult{
		Total: 2, Success: 1, Failed: 1,
		Errors:      []model.RowError{{Row: 2, Error: `slug "x" already exists`}},
		Warnings:    []model.RowWarning{},
		SuccessRate: "50.0%",
	}}
	rec, body := performImport(t, svc, true, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "import completed with errors", body["message"])
}

func TestDownloadTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/games/bulk-import/template", nil)

	NewBulkImportHandler(&stubImportService{}).DownloadTemplate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "games-import-template.csv")
	assert.Contains(t, rec.Body.String(), "title,description,thumbnailurl,gameurl")
}
