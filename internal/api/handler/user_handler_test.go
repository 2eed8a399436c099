package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

type stubUserService struct {
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	updateFn func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, skip, limit int) ([]*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.listFn(ctx, skip, limit)
}

func TestUserHandler_Me(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/", "")
	asUser(c, 3)

	if err := NewUserHandler(&stubUserService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if rec.Code != http.StatusOK || resp.ID != 3 {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_UpdateMe_PartialPatch(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			p := in.Patch
			if in.ID != 3 || in.Actor == nil || in.Actor.ID != 3 {
				t.Fatalf("unexpected target: %+v", in)
			}
			if !p.FullName.Set || p.FullName.Value == nil || *p.FullName.Value != "Al" || p.Email != nil || p.Username != nil || p.IsActive != nil {
				t.Fatalf("expected only full_name in patch: %+v", p)
			}
			return &domain.User{ID: 3, FullName: p.FullName.Value}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPut, "/", `{"full_name":"Al"}`)
	asUser(c, 3)

	if err := NewUserHandler(stub).UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateMe_NullClearsFullName(t *testing.T) {
	cases := map[string]struct {
		body    string
		set     bool
		cleared bool
	}{
		"absent":   {body: `{"is_active":true}`, set: false},
		"null":     {body: `{"full_name":null}`, set: true, cleared: true},
		"supplied": {body: `{"full_name":"Al"}`, set: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubUserService{
				updateFn: func(_ context.Context, in ports.UpdateUserInput) (*domain.User, error) {
					fn := in.Patch.FullName
					if fn.Set != tc.set || (fn.Set && (fn.Value == nil) != tc.cleared) {
						t.Fatalf("full_name = %+v, want set=%v cleared=%v", fn, tc.set, tc.cleared)
					}
					return &domain.User{ID: 3}, nil
				},
			}
			c, rec := newJSONContext(http.MethodPut, "/", tc.body)
			asUser(c, 3)

			if err := NewUserHandler(stub).UpdateMe(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestUserHandler_Update_RejectsEmptyEmail(t *testing.T) {
	c, _ := newJSONContext(http.MethodPut, "/", `{"email":""}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	asUser(c, 1)

	var ve *domain.ValidationError
	if err := NewUserHandler(&stubUserService{}).Update(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_List_Paging(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, skip, limit int) ([]*domain.User, error) {
			if skip != 0 || limit != 100 {
				t.Fatalf("expected defaults 0/100, got %d/%d", skip, limit)
			}
			return []*domain.User{{ID: 1}, {ID: 2}}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/", "")

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}

	c, _ = newJSONContext(http.MethodGet, "/?limit=1001", "")
	var ve *domain.ValidationError
	if err := NewUserHandler(stub).List(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for limit=1001, got %v", err)
	}
}

func TestUserHandler_GetAndDelete_NotFound(t *testing.T) {
	stub := &stubUserService{
		getFn:    func(context.Context, int64) (*domain.User, error) { return nil, domain.ErrUserNotFound },
		deleteFn: func(context.Context, int64) error { return domain.ErrUserNotFound },
	}

	c, _ := newJSONContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := NewUserHandler(stub).Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	c, _ = newJSONContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := NewUserHandler(stub).Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
