package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hantagam/qrmenu/internal/auth"
	"github.com/hantagam/qrmenu/internal/db"
	authmw "github.com/hantagam/qrmenu/internal/middleware/auth"
	"github.com/hantagam/qrmenu/internal/repo"
	"github.com/hantagam/qrmenu/internal/service"
	"github.com/hantagam/qrmenu/internal/sse"
	"github.com/hantagam/qrmenu/internal/storage"
)

const (
	testAdminUser     = "hantagam_admin"
	testAdminPassword = "correct-password"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *auth.TokenService
	Broker *sse.Broker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gormDB))

	pwHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := &auth.TokenService{
		Secret: []byte("test-secret-test-secret-test-secret!"),
		TTL:    24 * time.Hour,
	}
	guard := authmw.NewGuard(tokens)
	broker := sse.NewBroker()
	gormRepo := repo.New(gormDB)
	menuSvc := &service.MenuService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}

	// built admin pages: a login index plus one page per section
	pagesRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pagesRoot, "index.html"), []byte("<html>login</html>"), 0o644))
	for _, section := range AdminSections {
		dir := filepath.Join(pagesRoot, section)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"+section+"</html>"), 0o644))
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{
			Limiter:  auth.NewLoginLimiter(5, 15*time.Minute),
			Verifier: &auth.CredentialVerifier{AdminUsername: testAdminUser, AdminPasswordHash: string(pwHash)},
			Tokens:   tokens,
		},
		CategoryHandler:   &CategoryHTTP{Svc: menuSvc},
		MealHandler:       &MealHTTP{Svc: menuSvc},
		OrderHandler:      &OrderHTTP{Svc: orderSvc},
		ImageHandler:      &ImageHTTP{Store: storage.NewImageStore(t.TempDir()), Broker: broker},
		EventsHandler:     &EventsHTTP{Broker: broker},
		RestaurantHandler: &RestaurantHTTP{Repo: gormRepo},
		DeliveryHandler:   &DeliveryHTTP{Fee: 50, Currency: "TMT"},
		SearchHandler:     &SearchHTTP{},
		Guard:             guard,
		AdminPagesRoot:    pagesRoot,
	})

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &testEnv{T: t, E: e, DB: gormDB, Tokens: tokens, Broker: broker}
}

func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSONFromIP(ip, method, path string, body interface{}) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// login performs a successful admin login and returns the session
// cookie from the response.
func (env *testEnv) login() *http.Cookie {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.CookieName {
			return ck
		}
	}
	env.T.Fatal("no auth_token cookie in login response")
	return nil
}
