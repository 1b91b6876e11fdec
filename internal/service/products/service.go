// internal/service/products/service.go
package products

import (
	"context"
	"errors"
	"strings"

	"backoffice-service/internal/domain/product"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/paging"

	"go.uber.org/zap"
)

// Service implements product administration.
type Service struct {
	products  product.Repository
	pagingCfg paging.Config
	logger    *zap.Logger
}

func NewService(products product.Repository, pagingCfg paging.Config, logger *zap.Logger) *Service {
	return &Service{products: products, pagingCfg: pagingCfg, logger: logger}
}

// List returns one page of products matching the filters.
func (s *Service) List(ctx context.Context, f product.ListFilters) (*paging.Result, error) {
	total, err := s.products.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	p := paging.Calculate(f.Page, f.PerPage, total, s.pagingCfg)
	list := []product.Product{}
	if p.CurrentPage > 0 {
		list, err = s.products.List(ctx, f, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
	}

	res := paging.NewResult(p, list)
	return &res, nil
}

// Dropdown returns the reduced projection for selects.
func (s *Service) Dropdown(ctx context.Context) ([]product.Option, error) {
	return s.products.ListAll(ctx)
}

// Get loads one product.
func (s *Service) Get(ctx context.Context, id int64) (*product.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create adds a product; duplicate names are a Conflict.
func (s *Service) Create(ctx context.Context, input product.CreateInput) (*product.Product, error) {
	name := strings.TrimSpace(input.Name)
	if err := validate(name, input.Price); err != nil {
		return nil, err
	}

	taken, err := s.products.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, xerrors.ErrConflict
	}

	p := &product.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return p, nil
}

// Update patches a product.
func (s *Service) Update(ctx context.Context, id int64, input product.UpdateInput) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if err := validate(p.Name, p.Price); err != nil {
		return nil, err
	}

	taken, err := s.products.NameTaken(ctx, p.Name, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, xerrors.ErrConflict
	}

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func validate(name string, price float64) error {
	fe := xerrors.NewFieldErrors()
	if name == "" {
		fe.Add("name", "name is required")
	}
	if price < 0 {
		fe.Add("price", "price cannot be negative")
	}
	return fe.ErrOrNil()
}
