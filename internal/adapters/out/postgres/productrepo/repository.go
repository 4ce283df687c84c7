package productrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/pgerrs"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, product *inventory.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate("product", product.ID().String(), err)
	}
	return nil
}

// Update overwrites every column of the product row.
func (r *GormProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate("product", product.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", product.ID().String())
	}
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Product, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the product row until the surrounding transaction ends.
// Every stock mutation reads its product through here.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.Product, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&ProductDTO{})
	if result.Error != nil {
		return pgerrs.Translate("product", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	return nil
}

func (r *GormProductRepository) get(db *gorm.DB, id kernel.UUID) (*inventory.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, pgerrs.Translate("product", id.String(), err)
	}

	return toDomain(dto)
}
