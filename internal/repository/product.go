package repository

import (
	"context"
	"strings"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// ProductListOptions narrows a catalog listing. Empty strings mean "no filter".
type ProductListOptions struct {
	Category    string
	SubCategory string
	// Search matches name or brand, case-insensitively.
	Search string
	// OrderBy defaults to store order (product_id ascending).
	OrderBy []store.Order
	Limit   int
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, opts ProductListOptions) ([]*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	store store.Store
}

// NewProductRepository returns a ProductRepository over s.
func NewProductRepository(s store.Store) ProductRepository {
	return &productRepository{store: s}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.store.Insert(ctx, store.Products, product)
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := getOne(ctx, r.store, store.Products, "Product", "product_id", id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, opts ProductListOptions) ([]*models.Product, error) {
	q := store.Query{Limit: opts.Limit}
	if opts.Category != "" {
		q.Filters = append(q.Filters, store.Eq("category", opts.Category))
	}
	if opts.SubCategory != "" {
		q.Filters = append(q.Filters, store.Eq("sub_category", opts.SubCategory))
	}
	if s := strings.TrimSpace(opts.Search); s != "" {
		q.Filters = append(q.Filters, store.AnyILike(store.Contains(s), "name", "brand"))
	}
	q.OrderBy = append(q.OrderBy, opts.OrderBy...)
	q.OrderBy = append(q.OrderBy, store.Order{Column: "product_id"})

	products := []*models.Product{}
	if err := r.store.Query(ctx, store.Products, q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	n, err := r.store.Delete(ctx, store.Products, store.Eq("product_id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("Product", id)
	}
	return nil
}
