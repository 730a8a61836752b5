package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/handler"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/middleware"
	"github.com/ErlanBelekov/friendlist/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	login    func(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error)
	profile  func(ctx context.Context, userID string) (*domain.User, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error) {
	return f.login(ctx, input)
}

func (f *fakeAuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return f.profile(ctx, userID)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	h := handler.NewAuthHandler(uc, testLogger())

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/me", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		c.Next()
	}, h.Me)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

var annUser = &domain.User{
	ID:           "user-1",
	Name:         "Ann",
	Email:        "ann@x.io",
	PasswordHash: "$2a$12$secret",
	CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

// ---- Register ----

func TestRegister_Success_Returns201(t *testing.T) {
	var got usecase.RegisterInput
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			got = in
			return &usecase.AuthResult{Token: "tok", User: annUser}, nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/api/auth/register", `{"name":"Ann","email":"ann@x.io","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if got.Name != "Ann" || got.Email != "ann@x.io" || got.Password != "secret1" {
		t.Errorf("usecase input = %+v", got)
	}

	var body struct {
		Message string                 `json:"message"`
		Token   string                 `json:"token"`
		User    map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Message != "User created successfully" || body.Token != "tok" {
		t.Errorf("body = %+v", body)
	}
	if body.User["id"] != "user-1" || body.User["createdAt"] != "2026-01-02T03:04:05Z" {
		t.Errorf("user = %v", body.User)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("response leaks the password hash")
	}
}

func TestRegister_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrMissingRegistrationFields, http.StatusBadRequest, "Name, email, and password are required"},
		{domain.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{domain.ErrEmailTaken, http.StatusBadRequest, "User already exists with this email"},
		{domain.ErrNulCharacter, http.StatusBadRequest, "Fields must not contain NUL characters"},
		{errors.New("db down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			uc := &fakeAuthUsecase{
				register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
					return nil, tc.err
				},
			}
			w := postJSON(newAuthEngine(uc), "/api/auth/register", `{}`)
			if w.Code != tc.code {
				t.Errorf("status = %d, want %d", w.Code, tc.code)
			}
			if got := errorBody(t, w); got != tc.msg {
				t.Errorf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

func TestRegister_WrappedErrorStillMapped(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
			return nil, errors.Join(errors.New("create user"), domain.ErrEmailTaken)
		},
	}
	w := postJSON(newAuthEngine(uc), "/api/auth/register", `{}`)
	if got := errorBody(t, w); got != "User already exists with this email" {
		t.Errorf("error = %q", got)
	}
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/api/auth/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "Invalid request body" {
		t.Errorf("error = %q", got)
	}
}

func TestRegister_EmptyBody_ReachesUsecase(t *testing.T) {
	called := false
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			called = true
			if in != (usecase.RegisterInput{}) {
				t.Errorf("input = %+v, want zero", in)
			}
			return nil, domain.ErrMissingRegistrationFields
		},
	}
	w := postJSON(newAuthEngine(uc), "/api/auth/register", ``)
	if !called {
		t.Fatal("usecase not called for empty body")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Login ----

func TestLogin_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, in usecase.LoginInput) (*usecase.AuthResult, error) {
			if in.Email != "ann@x.io" || in.Password != "secret1" {
				t.Errorf("input = %+v", in)
			}
			return &usecase.AuthResult{Token: "tok", User: annUser}, nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/api/auth/login", `{"email":"ann@x.io","password":"secret1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"message":"Login successful"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLogin_InvalidCredentials_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, usecase.LoginInput) (*usecase.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	w := postJSON(newAuthEngine(uc), "/api/auth/login", `{"email":"ann@x.io","password":"nope"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "Invalid credentials" {
		t.Errorf("error = %q", got)
	}
}

func TestLogin_WrongFieldType_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/api/auth/login", `{"email":42}`)
	if got := errorBody(t, w); got != "Invalid request body" {
		t.Errorf("error = %q", got)
	}
}

// ---- Me ----

func TestMe_ReturnsProfile(t *testing.T) {
	uc := &fakeAuthUsecase{
		profile: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			return annUser, nil
		},
	}
	w := httptest.NewRecorder()
	newAuthEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want := `{"id":"user-1","name":"Ann","email":"ann@x.io","createdAt":"2026-01-02T03:04:05Z"}`
	if got := w.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestMe_UserGone_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		profile: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := httptest.NewRecorder()
	newAuthEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := errorBody(t, w); got != "User not found" {
		t.Errorf("error = %q", got)
	}
}
