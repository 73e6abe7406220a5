package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog-api/internal/models"
	"catalog-api/internal/pkg/clock"
)

type memoryRecord struct {
	product models.Product
	seq     uint64
}

// MemoryProductRepository is an in-memory ProductStore with the same id
// format, ordering and filter semantics as the Mongo repository.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]memoryRecord
	seq      uint64
	clock    clock.Clock
}

func NewMemoryProductRepository(clk clock.Clock) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[primitive.ObjectID]memoryRecord),
		clock:    clk,
	}
}

func (r *MemoryProductRepository) Insert(_ context.Context, in models.ProductInput) (*models.Product, error) {
	product, err := models.NewProduct(in, r.clock.Now())
	if err != nil {
		return nil, err
	}
	product.ID = primitive.NewObjectID()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.products[product.ID] = memoryRecord{product: *product, seq: r.seq}
	return product, nil
}

func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.products[objID]
	if !ok {
		return nil, models.ErrNotFound
	}
	product := rec.product
	return &product, nil
}

func (r *MemoryProductRepository) UpdateByID(_ context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if _, err := update.Changes(); err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.products[objID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := update.Apply(&rec.product, r.clock.Now()); err != nil {
		return nil, err
	}
	r.products[objID] = rec

	product := rec.product
	return &product, nil
}

func (r *MemoryProductRepository) DeleteByID(_ context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.products[objID]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(r.products, objID)

	product := rec.product
	return &product, nil
}

func (r *MemoryProductRepository) Query(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]memoryRecord, 0, len(r.products))
	for _, rec := range r.products {
		if filter.Matches(rec.product) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.product.CreatedAt.Equal(b.product.CreatedAt) {
			return a.product.CreatedAt.After(b.product.CreatedAt)
		}
		return a.seq > b.seq
	})

	products := make([]models.Product, 0, len(matched))
	for _, rec := range matched {
		products = append(products, rec.product)
	}
	return products, nil
}

func (r *MemoryProductRepository) Ping(context.Context) error {
	return nil
}
