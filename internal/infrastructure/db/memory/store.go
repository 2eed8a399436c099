// Package memory implements the user and item stores as process-local,
// mutex-guarded collections. Every read-modify-write sequence runs under
// the owning store's lock.
package memory

import "github.com/99minutos/catalog-api/internal/core/domain"

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.FullName != nil {
		name := *u.FullName
		c.FullName = &name
	}
	return &c
}

func cloneItem(it *domain.Item) *domain.Item {
	if it == nil {
		return nil
	}
	c := *it
	if it.Description != nil {
		desc := *it.Description
		c.Description = &desc
	}
	return &c
}

// window returns the [skip, skip+limit) bounds clamped to n. limit <= 0 means unbounded.
func window(n, skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip > n {
		skip = n
	}
	end := n
	if limit > 0 && skip+limit < n {
		end = skip + limit
	}
	return skip, end
}
