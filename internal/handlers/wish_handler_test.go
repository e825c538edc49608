package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/Dias221467/Wish_Collector/internal/repository"
	"github.com/Dias221467/Wish_Collector/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Append(context.Context, *models.Wish) (*models.Wish, error) {
	return nil, &repository.StoreError{Kind: repository.DirectoryUnavailable, Path: "/secret/path", Err: errors.New("permission denied")}
}

func (brokenStore) LoadAll(context.Context) ([]models.Wish, error) {
	return nil, &repository.StoreError{Kind: repository.FileOpenFailed, Err: errors.New("permission denied")}
}

func newTestRouter(t *testing.T, redirect string) http.Handler {
	t.Helper()
	store := repository.NewFileWishRepository(filepath.Join(t.TempDir(), "data", "wishes.json"))
	return NewRouter(NewWishHandler(services.NewWishService(store), redirect))
}

func validForm() url.Values {
	return url.Values{
		"wish":      {"I wish for world peace"},
		"category":  {"world"},
		"timeframe": {"someday"},
		"intensity": {"7"},
		"name":      {""},
		"email":     {""},
	}
}

func postForm(router http.Handler, path string, form url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitWishCreated(t *testing.T) {
	router := newTestRouter(t, "")

	rec := postForm(router, "/wishes", validForm(), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Wish
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Len(t, created.ID, 32)
	assert.Equal(t, "Anonymous", created.Name)
	assert.Equal(t, 7, created.Intensity)
	assert.Equal(t, "/wishes/"+created.ID, rec.Header().Get("Location"))

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/wishes/"+created.ID, nil))
	require.Equal(t, http.StatusOK, get.Code)
}

func TestSubmitWishRedirectsBrowsers(t *testing.T) {
	router := newTestRouter(t, "index.html")

	rec := postForm(router, "/save_wish", validForm(), "text/html")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "1", loc.Query().Get("success"))
	assert.Len(t, loc.Query().Get("id"), 32)

	// JSON clients still get the record.
	rec = postForm(router, "/save_wish", validForm(), "application/json")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmitWishValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"short wish", "wish", "hey", "Wish must be between 5 and 500 characters."},
		{"missing category", "category", "", "Category and timeframe are required."},
		{"bad intensity", "intensity", "eleven", "Intensity must be between 1 and 10."},
		{"bad email", "email", "not-an-email", "Invalid email."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, "")
			form := validForm()
			form.Set(tt.field, tt.value)

			rec := postForm(router, "/wishes", form, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, strings.TrimSpace(rec.Body.String()))

			list := httptest.NewRecorder()
			router.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/wishes", nil))
			assert.JSONEq(t, `[]`, list.Body.String())
		})
	}
}

func TestSubmitWishStoreFailureIsGeneric(t *testing.T) {
	router := NewRouter(NewWishHandler(services.NewWishService(brokenStore{}), ""))

	rec := postForm(router, "/wishes", validForm(), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to save wish.", strings.TrimSpace(rec.Body.String()))
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestSubmitRouteRejectsOtherMethods(t *testing.T) {
	router := newTestRouter(t, "")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/save_wish", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "Method not allowed.", strings.TrimSpace(rec.Body.String()))
	}
}

func TestGetWishesListsInOrder(t *testing.T) {
	router := newTestRouter(t, "")

	for _, text := range []string{"first wish here", "second wish here"} {
		form := validForm()
		form.Set("wish", text)
		require.Equal(t, http.StatusCreated, postForm(router, "/wishes", form, "").Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var wishes []models.Wish
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wishes))
	require.Len(t, wishes, 2)
	assert.Equal(t, "first wish here", wishes[0].Wish)
	assert.Equal(t, "second wish here", wishes[1].Wish)
}

func TestGetWishByIDNotFound(t *testing.T) {
	router := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishes/deadbeef", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
