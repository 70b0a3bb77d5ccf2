package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"listinghub/internal/auth"
	apphttp "listinghub/internal/http"
	"listinghub/internal/repository/sqlite"
	"listinghub/internal/service"
	"listinghub/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router *gin.Engine
}

// fakeStorage records delete-prefix calls so tests can assert which remote
// objects a handler touched.
type fakeStorage struct {
	deletedPrefixes []string
}

func (f *fakeStorage) UploadObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	return key, nil
}

func (f *fakeStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStorage) DeletePrefix(ctx context.Context, bucket, prefix string) error {
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return nil
}

func (f *fakeStorage) GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	return newAPIFixtureWithStorage(t, nil)
}

func newAPIFixtureWithStorage(t *testing.T, store storage.Service) *apiFixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := t.Context()
	agentRepo := sqlite.NewAgentRepository(db)
	listingRepo := sqlite.NewListingRepository(db)
	photoRepo := sqlite.NewListingPhotoRepository(db)
	templateRepo := sqlite.NewEmailTemplateRepository(db)
	prefsRepo := sqlite.NewNotificationPrefsRepository(db)
	require.NoError(t, agentRepo.Init(ctx))
	require.NoError(t, listingRepo.Init(ctx))
	require.NoError(t, photoRepo.Init(ctx))
	require.NoError(t, templateRepo.Init(ctx))
	require.NoError(t, prefsRepo.Init(ctx))

	codec, err := auth.NewCodec("api-test-secret")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	bucket, keyPrefix := "", ""
	if store != nil {
		bucket, keyPrefix = "test-bucket", "photos"
	}

	handler := apphttp.NewHandler(
		service.NewAgentService(agentRepo),
		service.NewListingService(listingRepo, photoRepo),
		service.NewTemplateService(templateRepo),
		service.NewNotificationService(prefsRepo),
		codec,
		store,
		bucket, keyPrefix,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return &apiFixture{router: router}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (f *apiFixture) registerAgent(t *testing.T, username string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password-123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	f.registerAgent(t, "jmartin")

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "jmartin",
		"password": "password-123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.NotEmpty(t, body["token"])

	agent, ok := body["agent"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "jmartin", agent["username"])

	rec = f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "jmartin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, decode(t, rec), "message")

	rec = f.do(t, http.MethodGet, "/api/profile", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	token := f.registerAgent(t, "profiled")

	rec := f.do(t, http.MethodPut, "/api/profile", token, gin.H{
		"full_name": "Jane Martin",
		"agency":    "Martin Realty",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "Jane Martin", body["full_name"])
	require.Equal(t, "Martin Realty", body["agency"])
}

func TestListingVisibility(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	token := f.registerAgent(t, "lister")

	rec := f.do(t, http.MethodPost, "/api/listings", token, gin.H{
		"title":       "Sunny Bungalow",
		"city":        "Austin",
		"price_cents": 45000000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	slug, _ := created["slug"].(string)
	require.NotEmpty(t, slug)
	id := int64(created["id"].(float64))

	// drafts are not browsable anonymously
	rec = f.do(t, http.MethodGet, "/api/listings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/listings/"+slug, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// owner still sees the draft by slug and in their own browse
	rec = f.do(t, http.MethodGet, "/api/listings/"+slug, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/listings?mine=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	rec = f.do(t, http.MethodPatch, "/api/listings/"+itoa(id)+"/status", token, gin.H{"status": "active"})
	require.Equal(t, http.StatusOK, rec.Code)

	// active listings are public, without the agent contact block
	rec = f.do(t, http.MethodGet, "/api/listings/"+slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Contains(t, body, "listing")
	require.NotContains(t, body, "agent")

	// authenticated viewers get the contact block
	viewer := f.registerAgent(t, "viewer")
	rec = f.do(t, http.MethodGet, "/api/listings/"+slug, viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Contains(t, body, "agent")
}

func TestListingOwnershipEnforced(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	owner := f.registerAgent(t, "owner")
	intruder := f.registerAgent(t, "intruder")

	rec := f.do(t, http.MethodPost, "/api/listings", owner, gin.H{"title": "Guarded"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode(t, rec)["id"].(float64))

	rec = f.do(t, http.MethodPut, "/api/listings/"+itoa(id), intruder, gin.H{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/listings/"+itoa(id), intruder, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteRemoteRequiresOwnership(t *testing.T) {
	t.Parallel()

	store := &fakeStorage{}
	f := newAPIFixtureWithStorage(t, store)
	owner := f.registerAgent(t, "photoowner")
	intruder := f.registerAgent(t, "photothief")

	rec := f.do(t, http.MethodPost, "/api/listings", owner, gin.H{"title": "With Remote Photos"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	id := int64(created["id"].(float64))
	slug, _ := created["slug"].(string)

	rec = f.do(t, http.MethodDelete, "/api/listings/"+itoa(id)+"?delete_remote=true", intruder, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, store.deletedPrefixes)

	rec = f.do(t, http.MethodDelete, "/api/listings/"+itoa(id)+"?delete_remote=true", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"photos/" + slug}, store.deletedPrefixes)
}

func TestTemplatesCRUD(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	token := f.registerAgent(t, "templater")

	rec := f.do(t, http.MethodPost, "/api/templates", token, gin.H{
		"name":    "welcome",
		"subject": "Hi there",
		"body":    "Thanks for reaching out.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode(t, rec)["id"].(float64))

	rec = f.do(t, http.MethodPost, "/api/templates", token, gin.H{"name": "welcome"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/templates/"+itoa(id), token, gin.H{
		"name":    "welcome",
		"subject": "Hello!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/templates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/templates/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNotificationDefaultsAndUpdate(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	token := f.registerAgent(t, "notified")

	rec := f.do(t, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["email_new_lead"])
	require.Equal(t, false, body["sms_enabled"])

	rec = f.do(t, http.MethodPut, "/api/notifications", token, gin.H{
		"email_new_lead": false,
		"sms_enabled":    true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Equal(t, false, body["email_new_lead"])
	require.Equal(t, true, body["sms_enabled"])
}

func TestHealthIsPublic(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec)["status"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
