// Package repo holds the MongoDB-backed read paths for the tyre dataset and
// the Redis-backed chat transcript store.
package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/revozen-chatbot/server/internal/agent/model"
	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// TyreRepository reads the addtyres collection.
type TyreRepository struct {
	col *mongo.Collection
}

func NewTyreRepository(db *mongo.Database) *TyreRepository {
	return &TyreRepository{col: db.Collection("addtyres")}
}

func (r *TyreRepository) FindBySize(ctx context.Context, size string) ([]model.Tyre, error) {
	return r.find(ctx, bson.M{"stock.size": size})
}

func (r *TyreRepository) FindByBrand(ctx context.Context, brand string) ([]model.Tyre, error) {
	filter := bson.M{}
	if brand != "" {
		filter["brand"] = bson.M{"$regex": brand, "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *TyreRepository) FindTubeless(ctx context.Context, brand string) ([]model.Tyre, error) {
	filter := bson.M{"type": bson.M{"$regex": "tubeless", "$options": "i"}}
	if brand != "" {
		filter["brand"] = bson.M{"$regex": brand, "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *TyreRepository) find(ctx context.Context, filter bson.M) ([]model.Tyre, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		logx.Error().Err(err).Interface("filter", filter).Msg("tyre lookup failed")
		return nil, errx.WrapMongo(err)
	}
	defer cur.Close(ctx)

	var tyres []model.Tyre
	if err := cur.All(ctx, &tyres); err != nil {
		logx.Error().Err(err).Msg("tyre cursor drain failed")
		return nil, errx.WrapMongo(err)
	}
	return tyres, nil
}

var _ model.TyreFinder = (*TyreRepository)(nil)
