package history

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo *testRepo) (http.Handler, *Service) {
	svc := newTestService(repo)
	r := chi.NewRouter()
	RegisterRoutes(r, svc)
	return r, svc
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetByID(t *testing.T) {
	h, _ := newTestRouter(newTestRepo(doeRecord()))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/patHistory/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"id":"1","patId":1,"patient":"Doe","creationDate":"2000-10-10","notes":"123 Main Street"}`,
		rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/patHistory/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListByPatient(t *testing.T) {
	h, _ := newTestRouter(newTestRepo(doeRecord()))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/patHistory?patId=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/patHistory?patId=42", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ListByPatient_BadParam(t *testing.T) {
	h, _ := newTestRouter(newTestRepo())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/patHistory", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/patHistory?patId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListAll(t *testing.T) {
	repo := newTestRepo(doeRecord())
	h, _ := newTestRouter(repo)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/patHistory/all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)

	repo.failAll = true
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/patHistory/all", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Create_FormEncoded(t *testing.T) {
	repo := newTestRepo()
	h, svc := newTestRouter(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	form := url.Values{}
	form.Set("id", "1")
	form.Set("patId", "1")
	form.Set("patient", "Doe")
	form.Set("creationDate", "2000-10-10")
	form.Set("notes", "123 Main Street")

	req := httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(h, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.CreationDate)
	assert.Equal(t, "2026-10-19", got.CreationDate.String())
	assert.Len(t, repo.byID, 1)
}

func TestHandler_Create_BadCoercion(t *testing.T) {
	h, _ := newTestRouter(newTestRepo())

	req := httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader("patId=one"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader("patId=1&creationDate=yesterday"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestHandler_Create_RejectsNonFormBody(t *testing.T) {
	repo := newTestRepo()
	h, _ := newTestRouter(repo)

	body := `{"patId":1,"patient":"Doe","notes":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnsupportedMediaType, serve(h, req).Code)

	// Sin Content-Type tampoco se acepta.
	req = httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader("patId=1"))
	assert.Equal(t, http.StatusUnsupportedMediaType, serve(h, req).Code)

	// Parámetros de media type (charset) no cambian el tipo.
	req = httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader("patId=1&patient=Doe"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	assert.Equal(t, http.StatusCreated, serve(h, req).Code)

	assert.Equal(t, 1, repo.saveCalls)
	assert.Len(t, repo.byID, 1)
}

func TestHandler_Create_StoreFailure(t *testing.T) {
	repo := newTestRepo()
	repo.failSave = true
	h, _ := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/patHistory/add", strings.NewReader("patId=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(h, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), errRepoDown.Error())
}

func TestHandler_Update(t *testing.T) {
	repo := newTestRepo(doeRecord())
	h, _ := newTestRouter(repo)

	body := `{"id":"7","patId":1,"patient":"Doe","creationDate":"2000-10-10","notes":"test"}`
	req := httptest.NewRequest(http.MethodPut, "/patHistory/update/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "test", repo.byID["1"].Notes)

	req = httptest.NewRequest(http.MethodPut, "/patHistory/update/2", strings.NewReader(body))
	assert.Equal(t, http.StatusNotFound, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodPut, "/patHistory/update/1", strings.NewReader("{"))
	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestHandler_Delete(t *testing.T) {
	repo := newTestRepo(doeRecord())
	h, _ := newTestRouter(repo)

	rec := serve(h, httptest.NewRequest(http.MethodDelete, "/patHistory/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.byID)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/patHistory/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
