package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type testEnv struct {
	app      *fiber.App
	db       *sqlx.DB
	accounts *services.AccountService
	tokens   *repos.TokenRepo
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		app:      handlers.NewApp(handlers.NewDeps(db)),
		db:       db,
		accounts: &services.AccountService{Accounts: repos.NewAccountRepo(db)},
		tokens:   repos.NewTokenRepo(db),
	}
}

// register creates an account directly through the service layer; the fixture
// password is always "abcd".
func (e *testEnv) register(t *testing.T, email string, seller bool) *domain.Account {
	t.Helper()
	a, err := e.accounts.Register(services.NewAccount{
		Email:     email,
		Password:  "abcd",
		FirstName: "John",
		LastName:  "Doe",
		IsSeller:  seller,
	})
	if err != nil {
		t.Fatalf("register fixture %s: %v", email, err)
	}
	return a
}

func (e *testEnv) registerSuperuser(t *testing.T, email string) *domain.Account {
	t.Helper()
	a, err := e.accounts.RegisterSuperuser(services.NewAccount{
		Email:     email,
		Password:  "1234",
		FirstName: "Admin",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register superuser fixture: %v", err)
	}
	return a
}

func (e *testEnv) token(t *testing.T, a *domain.Account) string {
	t.Helper()
	key, err := e.tokens.GetOrCreate(a.ID)
	if err != nil {
		t.Fatalf("token for %s: %v", a.Email, err)
	}
	return key
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(readBody(t, resp), &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(readBody(t, resp), &l); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return l
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

// detailContains asserts the {"detail": ...} body mentions needle, whether
// detail is a string or a list of messages.
func detailContains(t *testing.T, m map[string]any, needle string) {
	t.Helper()
	d, ok := m["detail"]
	if !ok {
		t.Fatalf("body has no detail key: %v", m)
	}
	var joined string
	switch v := d.(type) {
	case string:
		joined = v
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, p.(string))
		}
		joined = strings.Join(parts, " ")
	default:
		t.Fatalf("unexpected detail shape: %T", d)
	}
	if !strings.Contains(joined, needle) {
		t.Fatalf("detail %q does not mention %q", joined, needle)
	}
}

func fieldMentions(t *testing.T, m map[string]any, field, needle string) {
	t.Helper()
	v, ok := m[field]
	if !ok {
		t.Fatalf("expected error for field %q, body: %v", field, m)
	}
	msgs, ok := v.([]any)
	if !ok {
		t.Fatalf("field %q errors are not a list: %T", field, v)
	}
	for _, msg := range msgs {
		if strings.Contains(msg.(string), needle) {
			return
		}
	}
	t.Fatalf("field %q errors %v do not mention %q", field, msgs, needle)
}
