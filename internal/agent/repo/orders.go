package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/revozen-chatbot/server/internal/agent/model"
	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// OrderRepository reads the clientorders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("clientorders")}
}

// FindOrders returns orders referencing any of the given tyres within the
// optional creation window. An empty tyreIDs set drops the tyre filter
// entirely and returns all orders in the window; callers rely on that.
func (r *OrderRepository) FindOrders(ctx context.Context, tyreIDs []primitive.ObjectID, window *model.DateWindow) ([]model.Order, error) {
	filter := bson.M{}
	if len(tyreIDs) > 0 {
		filter["orderItems.tyre"] = bson.M{"$in": tyreIDs}
	}
	if window != nil {
		filter["createdAt"] = bson.M{"$gte": window.Start, "$lte": window.End}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		logx.Error().Err(err).Interface("filter", filter).Msg("order lookup failed")
		return nil, errx.WrapMongo(err)
	}
	defer cur.Close(ctx)

	var orders []model.Order
	if err := cur.All(ctx, &orders); err != nil {
		logx.Error().Err(err).Msg("order cursor drain failed")
		return nil, errx.WrapMongo(err)
	}
	return orders, nil
}

var _ model.OrderFinder = (*OrderRepository)(nil)
