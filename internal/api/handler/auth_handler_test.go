package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.AccessToken, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) ResolveToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Password != "Passw0rd1" || !in.IsActive || in.IsSuperuser {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 7, Username: in.Username, Email: in.Email, PasswordHash: "h", IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/v1/users/register",
		`{"email":"alice@example.com","username":"alice","password":"Passw0rd1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["id"] != float64(7) {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_Register_LongUsernameAccepted(t *testing.T) {
	username := strings.Repeat("u", 60)
	fullName := strings.Repeat("N", 150)
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != username || in.FullName == nil || *in.FullName != fullName {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: in.Username, Email: in.Email, FullName: in.FullName, IsActive: true}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/v1/users/register",
		`{"email":"long@example.com","username":"`+username+`","password":"Passw0rd1","full_name":"`+fullName+`"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/", `{"email":"b@example.com","username":"bob","password":"Passw0rd1"}`)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/", "not-json")

	_ = NewAuthHandler(stub).Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	cases := map[string]struct {
		body  string
		field string
	}{
		"short username":   {`{"email":"a@example.com","username":"ab","password":"Passw0rd1"}`, "username"},
		"symbol username":  {`{"email":"a@example.com","username":"al-ice","password":"Passw0rd1"}`, "username"},
		"no digit":         {`{"email":"a@example.com","username":"alice","password":"Password"}`, "password"},
		"no uppercase":     {`{"email":"a@example.com","username":"alice","password":"passw0rd1"}`, "password"},
		"short password":   {`{"email":"a@example.com","username":"alice","password":"Pa0"}`, "password"},
		"bad email":        {`{"email":"nope","username":"alice","password":"Passw0rd1"}`, "email"},
		"missing username": {`{"email":"a@example.com","password":"Passw0rd1"}`, "username"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/", tc.body)
			err := NewAuthHandler(stub).Register(c)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got := ve.Violations[0].Loc; got[0] != "body" || got[1] != tc.field {
				t.Fatalf("expected violation on body.%s, got %v", tc.field, got)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.AccessToken, *domain.User, error) {
			if username != "alice" || password != "Passw0rd1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.AccessToken{Token: "token123", TokenType: "bearer", ExpiresIn: 1800}, &domain.User{ID: 1}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/", `{"username":"alice","password":"Passw0rd1"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "token123" || resp.TokenType != "bearer" || resp.ExpiresIn != 1800 {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, _ string) (*ports.AccessToken, *domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %q", username)
			}
			return &ports.AccessToken{Token: "t", TokenType: "bearer"}, &domain.User{ID: 1}, nil
		},
	}
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=alice&password=Passw0rd1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := NewAuthHandler(stub).Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Invalid(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AccessToken, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/", `{"username":"alice","password":"nope"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
