package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"catalog-api/internal/models"
	"catalog-api/internal/pkg/clock"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func productDoc(id primitive.ObjectID, title string, status models.Status, date, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "status", Value: string(status)},
		{Key: "date", Value: primitive.NewDateTimeFromTime(date)},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(created)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(created)},
	}
}

func findAndModifyResponse(doc any) bson.D {
	return bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}}
}

func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("insert assigns id and timestamps", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p, err := repo.Insert(context.Background(), models.ProductInput{Title: "Pen", Status: "Active", Date: "2025-01-01"})
		require.NoError(mt, err)
		assert.False(mt, p.ID.IsZero())
		assert.Equal(mt, models.StatusActive, p.Status)
		assert.Equal(mt, jan, p.Date)
		assert.Equal(mt, fixedNow, p.CreatedAt)
		assert.Equal(mt, fixedNow, p.UpdatedAt)
	})

	mt.Run("insert validation never reaches the store", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))

		_, err := repo.Insert(context.Background(), models.ProductInput{Title: "Pen", Status: "pending", Date: "2025-01-01"})
		var vErr *models.ValidationError
		require.ErrorAs(mt, err, &vErr)
		assert.Equal(mt, "status", vErr.Field)
	})

	mt.Run("insert store failure", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "document failed validation",
		}))

		_, err := repo.Insert(context.Background(), models.ProductInput{Title: "Pen", Status: "active", Date: "2025-01-01"})
		assert.ErrorIs(mt, err, models.ErrStore)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch,
			productDoc(id, "Pen", models.StatusActive, jan, fixedNow)))

		p, err := repo.GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Pen", p.Title)
		assert.Equal(mt, jan, p.Date.UTC())
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))

		_, err := repo.GetByID(context.Background(), "123")
		assert.ErrorIs(mt, err, models.ErrNotFound)
		_, err = repo.UpdateByID(context.Background(), "123", models.ProductUpdate{})
		assert.ErrorIs(mt, err, models.ErrNotFound)
		_, err = repo.DeleteByID(context.Background(), "123")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("update returns new state", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		id := primitive.NewObjectID()
		mt.AddMockResponses(findAndModifyResponse(productDoc(id, "Pen", models.StatusInactive, jan, fixedNow)))

		inactive := "Inactive"
		p, err := repo.UpdateByID(context.Background(), id.Hex(), models.ProductUpdate{Status: &inactive})
		require.NoError(mt, err)
		assert.Equal(mt, models.StatusInactive, p.Status)
	})

	mt.Run("update missing record", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(findAndModifyResponse(nil))

		_, err := repo.UpdateByID(context.Background(), primitive.NewObjectID().Hex(), models.ProductUpdate{})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete returns last state", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		id := primitive.NewObjectID()
		mt.AddMockResponses(findAndModifyResponse(productDoc(id, "Desk", models.StatusActive, jan, fixedNow)))

		p, err := repo.DeleteByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Desk", p.Title)
	})

	mt.Run("delete missing record", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(findAndModifyResponse(nil))

		_, err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("query decodes every document", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch,
			productDoc(primitive.NewObjectID(), "Desk", models.StatusInactive, feb, fixedNow.Add(time.Second)),
			productDoc(primitive.NewObjectID(), "Pen", models.StatusActive, jan, fixedNow),
		))

		products, err := repo.Query(context.Background(), models.ProductFilter{})
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "Desk", products[0].Title)
		assert.Equal(mt, "Pen", products[1].Title)
	})

	mt.Run("query with no matches is empty, not nil", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch))

		products, err := repo.Query(context.Background(), models.ProductFilter{})
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("query store failure", func(mt *mtest.T) {
		repo := NewMongoProductRepository(mt.Coll, clock.NewFake(fixedNow))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := repo.Query(context.Background(), models.ProductFilter{})
		assert.ErrorIs(mt, err, models.ErrStore)
	})
}

func TestBuildFilter(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	active := models.StatusActive

	assert.Equal(t, bson.M{}, BuildFilter(models.ProductFilter{}))

	assert.Equal(t, bson.M{"status": models.StatusActive}, BuildFilter(models.ProductFilter{Status: &active}))

	assert.Equal(t, bson.M{"date": bson.M{"$gte": jan}}, BuildFilter(models.ProductFilter{DateFrom: &jan}))

	assert.Equal(t, bson.M{
		"status": models.StatusActive,
		"date":   bson.M{"$gte": jan, "$lte": feb},
	}, BuildFilter(models.ProductFilter{Status: &active, DateFrom: &jan, DateTo: &feb}))
}
