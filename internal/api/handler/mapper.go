package handler

import (
	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		Status:      string(it.Status),
		OwnerID:     it.OwnerID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toItemListResponse(res *ports.ListItemsResult) itemListResponse {
	items := make([]itemResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, toItemResponse(it))
	}
	return itemListResponse{
		Items: items,
		Total: res.Total,
		Page:  res.Page,
		Size:  res.Size,
		Pages: res.Pages,
	}
}

func (r updateUserRequest) patch() domain.UserPatch {
	return domain.UserPatch{
		Email:       r.Email,
		Username:    r.Username,
		FullName:    r.FullName,
		IsActive:    r.IsActive,
		IsSuperuser: r.IsSuperuser,
	}
}

func (r updateItemRequest) patch() domain.ItemPatch {
	p := domain.ItemPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
	}
	if r.Status != nil {
		st := domain.ItemStatus(*r.Status)
		p.Status = &st
	}
	return p
}
