package queries

import (
	"errors"
	"strings"

	"storefront/internal/pkg/guard"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// ListProductsQuery lists the catalog by name, optionally narrowed to one
// category. Categories match case-insensitively; a blank category lists all.
type ListProductsQuery struct {
	category string

	guard guard.ConstructorGuard
}

func NewListProductsQuery(category string) ListProductsQuery {
	return ListProductsQuery{
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) Category() string {
	return q.category
}
