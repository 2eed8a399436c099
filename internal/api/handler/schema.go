package handler

import (
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type registerRequest struct {
	Email       string  `json:"email"        validate:"required,email"`
	Username    string  `json:"username"     validate:"required,min=3,alphanum"`
	Password    string  `json:"password"     validate:"required,min=8,password"`
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// updateUserRequest: "full_name": null clears the name, other nulls are ignored.
type updateUserRequest struct {
	Email       *string                 `json:"email"        validate:"omitnil,email"`
	Username    *string                 `json:"username"     validate:"omitnil,min=3,alphanum"`
	FullName    domain.Nullable[string] `json:"full_name"`
	IsActive    *bool                   `json:"is_active"`
	IsSuperuser *bool                   `json:"is_superuser"`
}

type listUsersQuery struct {
	Skip  int `query:"skip"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=1,lte=1000"`
}

func (listUsersQuery) location() string { return "query" }

type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FullName    *string   `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// --- Items ---

type createItemRequest struct {
	Title       string  `json:"title"       validate:"required,notblank"`
	Description *string `json:"description"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Status      string  `json:"status"      validate:"omitempty,oneof=active inactive archived"`
}

// updateItemRequest: "description": null clears it, other nulls are ignored.
type updateItemRequest struct {
	Title       *string                 `json:"title"       validate:"omitnil,notblank"`
	Description domain.Nullable[string] `json:"description"`
	Price       *float64                `json:"price"       validate:"omitnil,gt=0"`
	Status      *string                 `json:"status"      validate:"omitnil,oneof=active inactive archived"`
}

type statusRequest struct {
	Status string `json:"status" query:"status" validate:"required,oneof=active inactive archived"`
}

type listItemsQuery struct {
	Page   int    `query:"page"   validate:"gte=1"`
	Size   int    `query:"size"   validate:"gte=1,lte=100"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive archived"`
}

func (listItemsQuery) location() string { return "query" }

type itemResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Pages int            `json:"pages"`
}
