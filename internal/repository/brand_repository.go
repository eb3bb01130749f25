package repository

import (
	"context"
	"fmt"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// BrandRepository provides read-only access to the brand/branch catalog.
type BrandRepository struct {
	pool PoolInterface
}

// NewBrandRepository creates a new BrandRepository with the given pool.
func NewBrandRepository(pool PoolInterface) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// ListBrands returns all brands.
func (r *BrandRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	if brands == nil {
		brands = []model.Brand{}
	}
	return brands, nil
}

// ListBranches returns the branches of a brand.
func (r *BrandRepository) ListBranches(ctx context.Context, brandID int64) ([]model.Branch, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, brand_id, name FROM branches WHERE brand_id = $1 ORDER BY name`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list branches for brand %d: %w", brandID, err)
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		var b model.Branch
		if err := rows.Scan(&b.ID, &b.BrandID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branch rows: %w", err)
	}

	if branches == nil {
		branches = []model.Branch{}
	}
	return branches, nil
}
