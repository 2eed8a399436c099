package service

import (
	"context"
	"fmt"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// SeedConfig describes the demo data created at startup.
type SeedConfig struct {
	AdminEmail    string
	AdminUsername string
	AdminPassword string
	// AdminPasswordHash takes precedence over AdminPassword when set.
	AdminPasswordHash string
	SampleItems       bool
}

func strPtr(s string) *string { return &s }

var sampleItems = []ports.CreateItemInput{
	{Title: "Premium Headphones", Description: strPtr("High-quality wireless headphones with noise cancellation"), Price: 199.99, Status: domain.ItemActive},
	{Title: "Smart Watch", Description: strPtr("Feature-rich smartwatch with fitness tracking"), Price: 299.99, Status: domain.ItemActive},
	{Title: "Bluetooth Speaker", Description: strPtr("Portable Bluetooth speaker with excellent sound quality"), Price: 79.99, Status: domain.ItemInactive},
}

// Seed creates the superuser and, optionally, sample items owned by it.
// The superuser is created even when self elevation is disabled.
func Seed(ctx context.Context, auth *AuthService, items *ItemService, cfg SeedConfig) (*domain.User, error) {
	admin, err := auth.createUser(ctx, ports.RegisterInput{
		Email:       cfg.AdminEmail,
		Username:    cfg.AdminUsername,
		Password:    cfg.AdminPassword,
		FullName:    strPtr("System Administrator"),
		IsActive:    true,
		IsSuperuser: true,
	}, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	if cfg.SampleItems {
		for _, in := range sampleItems {
			in.OwnerID = admin.ID
			if _, err := items.Create(ctx, in); err != nil {
				return nil, fmt.Errorf("seed item %q: %w", in.Title, err)
			}
		}
	}
	return admin, nil
}
