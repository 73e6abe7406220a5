package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog-api/internal/models"
	"catalog-api/internal/pkg/clock"
)

//go:generate mockgen -destination=mocks/mock_product_store.go -package=mocks catalog-api/internal/repository ProductStore

// ProductStore es el almacén de productos que usan los handlers HTTP.
type ProductStore interface {
	Insert(ctx context.Context, in models.ProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	UpdateByID(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	DeleteByID(ctx context.Context, id string) (*models.Product, error)
	Query(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Ping(ctx context.Context) error
}

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	queryTimeout = 10 * time.Second
)

// newestFirst ordena por fecha de creación y, a igual milisegundo, por id.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type MongoProductRepository struct {
	collection *mongo.Collection
	clock      clock.Clock
}

func NewMongoProductRepository(collection *mongo.Collection, clk clock.Clock) *MongoProductRepository {
	return &MongoProductRepository{
		collection: collection,
		clock:      clk,
	}
}

// Insert crea un nuevo producto
func (r *MongoProductRepository) Insert(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product, err := models.NewProduct(in, r.clock.Now())
	if err != nil {
		return nil, err
	}
	product.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, storeError("insert product", err)
	}
	return product, nil
}

// GetByID obtiene un producto por ID
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		return nil, storeError("find product", err)
	}
	return &product, nil
}

// UpdateByID aplica los campos enviados y devuelve el estado nuevo. Una
// actualización vacía igual actualiza updatedAt.
func (r *MongoProductRepository) UpdateByID(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	set, err := update.Changes()
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	// Agregar updatedAt automáticamente
	set["updatedAt"] = r.clock.Now()

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		return nil, storeError("update product", err)
	}
	return &product, nil
}

// DeleteByID borra el documento y devuelve su último estado
func (r *MongoProductRepository) DeleteByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var product models.Product
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		return nil, storeError("delete product", err)
	}
	return &product, nil
}

// Query lista los productos que cumplen el filtro, más recientes primero
func (r *MongoProductRepository) Query(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, BuildFilter(filter), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, storeError("query products", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeError("decode products", err)
	}
	return products, nil
}

func (r *MongoProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	if err := r.collection.Database().Client().Ping(ctx, nil); err != nil {
		return storeError("ping", err)
	}
	return nil
}

// BuildFilter traduce el filtro a un documento de consulta de Mongo.
func BuildFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}

	if f.Status != nil {
		filter["status"] = *f.Status
	}

	date := bson.M{}
	if f.DateFrom != nil {
		date["$gte"] = *f.DateFrom
	}
	if f.DateTo != nil {
		date["$lte"] = *f.DateTo
	}
	if len(date) > 0 {
		filter["date"] = date
	}

	return filter
}

func storeError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %w", models.ErrStore, op, err)
}
