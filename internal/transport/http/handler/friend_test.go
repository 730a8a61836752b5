package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/handler"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/middleware"
	"github.com/ErlanBelekov/friendlist/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeFriendUsecase struct {
	list   func(ctx context.Context, ownerID string) ([]*domain.Friend, error)
	create func(ctx context.Context, ownerID string, in usecase.FriendInput) (*domain.Friend, error)
	update func(ctx context.Context, ownerID, id string, in usecase.FriendInput) (*domain.Friend, error)
	delete func(ctx context.Context, ownerID, id string) error
}

func (f *fakeFriendUsecase) List(ctx context.Context, ownerID string) ([]*domain.Friend, error) {
	return f.list(ctx, ownerID)
}

func (f *fakeFriendUsecase) Create(ctx context.Context, ownerID string, in usecase.FriendInput) (*domain.Friend, error) {
	return f.create(ctx, ownerID, in)
}

func (f *fakeFriendUsecase) Update(ctx context.Context, ownerID, id string, in usecase.FriendInput) (*domain.Friend, error) {
	return f.update(ctx, ownerID, id, in)
}

func (f *fakeFriendUsecase) Delete(ctx context.Context, ownerID, id string) error {
	return f.delete(ctx, ownerID, id)
}

const ownerID = "owner-1"

func newFriendEngine(uc *fakeFriendUsecase) *gin.Engine {
	h := handler.NewFriendHandler(uc, testLogger())

	r := gin.New()
	friends := r.Group("/api/friends", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, ownerID)
		c.Next()
	})
	friends.GET("", h.List)
	friends.POST("", h.Create)
	friends.PUT("/:id", h.Update)
	friends.DELETE("/:id", h.Delete)
	return r
}

func sendJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

var bob = &domain.Friend{
	ID:        "f-1",
	OwnerID:   ownerID,
	Name:      "Bob",
	Email:     "bob@x.io",
	CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
}

// ---- List ----

func TestListFriends_Empty_ReturnsArray(t *testing.T) {
	uc := &fakeFriendUsecase{
		list: func(_ context.Context, owner string) ([]*domain.Friend, error) {
			if owner != ownerID {
				t.Errorf("owner = %q", owner)
			}
			return []*domain.Friend{}, nil
		},
	}
	w := sendJSON(newFriendEngine(uc), http.MethodGet, "/api/friends", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestListFriends_SerializesCamelCase(t *testing.T) {
	uc := &fakeFriendUsecase{
		list: func(context.Context, string) ([]*domain.Friend, error) {
			return []*domain.Friend{bob}, nil
		},
	}
	w := sendJSON(newFriendEngine(uc), http.MethodGet, "/api/friends", "")

	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	for _, key := range []string{"id", "userId", "name", "email", "phone", "company", "notes", "createdAt", "updatedAt"} {
		if _, ok := got[0][key]; !ok {
			t.Errorf("missing key %q in %v", key, got[0])
		}
	}
	if got[0]["userId"] != ownerID || got[0]["phone"] != "" {
		t.Errorf("friend = %v", got[0])
	}
}

// ---- Create ----

func TestCreateFriend_Success_Returns201(t *testing.T) {
	uc := &fakeFriendUsecase{
		create: func(_ context.Context, owner string, in usecase.FriendInput) (*domain.Friend, error) {
			if owner != ownerID || in.Name != "Bob" || in.Email != "bob@x.io" || in.Company != "Acme" {
				t.Errorf("owner = %q, input = %+v", owner, in)
			}
			return bob, nil
		},
	}
	w := sendJSON(newFriendEngine(uc), http.MethodPost, "/api/friends", `{"name":"Bob","email":"bob@x.io","company":"Acme"}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}

func TestCreateFriend_DomainErrors(t *testing.T) {
	cases := []struct {
		err error
		msg string
	}{
		{domain.ErrMissingFriendFields, "Name and email are required"},
		{domain.ErrFriendEmailTaken, "Friend with this email already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			uc := &fakeFriendUsecase{
				create: func(context.Context, string, usecase.FriendInput) (*domain.Friend, error) {
					return nil, tc.err
				},
			}
			w := sendJSON(newFriendEngine(uc), http.MethodPost, "/api/friends", `{"name":"Bob"}`)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if got := errorBody(t, w); got != tc.msg {
				t.Errorf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

// ---- Update ----

func TestUpdateFriend_PassesPathID(t *testing.T) {
	uc := &fakeFriendUsecase{
		update: func(_ context.Context, owner, id string, in usecase.FriendInput) (*domain.Friend, error) {
			if id != "f-1" || owner != ownerID {
				t.Errorf("owner = %q, id = %q", owner, id)
			}
			return bob, nil
		},
	}
	w := sendJSON(newFriendEngine(uc), http.MethodPut, "/api/friends/f-1", `{"name":"Bob","email":"bob@x.io"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestUpdateFriend_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrFriendNotFound, http.StatusNotFound, "Friend not found"},
		{domain.ErrFriendEmailConflict, http.StatusBadRequest, "Another friend with this email already exists"},
		{domain.ErrMissingFriendFields, http.StatusBadRequest, "Name and email are required"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			uc := &fakeFriendUsecase{
				update: func(context.Context, string, string, usecase.FriendInput) (*domain.Friend, error) {
					return nil, tc.err
				},
			}
			w := sendJSON(newFriendEngine(uc), http.MethodPut, "/api/friends/f-1", `{}`)
			if w.Code != tc.code {
				t.Errorf("status = %d, want %d", w.Code, tc.code)
			}
			if got := errorBody(t, w); got != tc.msg {
				t.Errorf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

// ---- Delete ----

func TestDeleteFriend_Success(t *testing.T) {
	uc := &fakeFriendUsecase{
		delete: func(_ context.Context, owner, id string) error {
			if owner != ownerID || id != "f-1" {
				t.Errorf("owner = %q, id = %q", owner, id)
			}
			return nil
		},
	}
	w := sendJSON(newFriendEngine(uc), http.MethodDelete, "/api/friends/f-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"message":"Friend deleted successfully"}` {
		t.Errorf("body = %s", got)
	}
}

func TestDeleteFriend_NotFound_Returns404(t *testing.T) {
	uc := &fakeFriendUsecase{
		delete: func(context.Context, string, string) error { return domain.ErrFriendNotFound },
	}
	w := sendJSON(newFriendEngine(uc), http.MethodDelete, "/api/friends/nope", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
