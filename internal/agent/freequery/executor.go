package freequery

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// QueryRunner executes an already-parsed synthesized query against one of
// the two collections.
type QueryRunner interface {
	Run(ctx context.Context, target Target, query any) ([]bson.M, error)
}

// MongoExecutor runs synthesized queries against the tyres database: an
// aggregation when the query is an ordered stage list, a filtered read when
// it is a single filter object. Driver faults come back as typed errors and
// never crash the process.
type MongoExecutor struct {
	db *mongo.Database
}

func NewMongoExecutor(db *mongo.Database) *MongoExecutor {
	return &MongoExecutor{db: db}
}

func (e *MongoExecutor) Run(ctx context.Context, target Target, query any) ([]bson.M, error) {
	col := e.db.Collection(target.Collection())

	var (
		cur *mongo.Cursor
		err error
	)
	switch q := query.(type) {
	case []any:
		cur, err = col.Aggregate(ctx, q)
	case map[string]any:
		cur, err = e.find(ctx, col, q)
	default:
		return nil, errx.New(nil, 422, "invalid MongoDB query format")
	}
	if err != nil {
		logx.Error().Err(err).Str("collection", target.Collection()).Msg("query execution failed")
		return nil, errx.WrapMongo(err)
	}
	defer cur.Close(ctx)

	results := []bson.M{}
	if err := cur.All(ctx, &results); err != nil {
		logx.Error().Err(err).Str("collection", target.Collection()).Msg("cursor drain failed")
		return nil, errx.WrapMongo(err)
	}
	return results, nil
}

// find honors an explicit nested directive ({"find": ..., "filter": ...,
// "projection": ...}) and otherwise treats the whole object as the filter.
func (e *MongoExecutor) find(ctx context.Context, col *mongo.Collection, q map[string]any) (*mongo.Cursor, error) {
	if _, ok := q["find"]; !ok {
		return col.Find(ctx, q)
	}

	filter, _ := q["filter"].(map[string]any)
	if filter == nil {
		filter = map[string]any{}
	}
	opts := options.Find()
	if projection, ok := q["projection"]; ok && projection != nil {
		opts.SetProjection(projection)
	}
	return col.Find(ctx, filter, opts)
}

var _ QueryRunner = (*MongoExecutor)(nil)
