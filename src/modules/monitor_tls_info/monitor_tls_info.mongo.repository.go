package monitor_tls_info

import (
	"context"
	"errors"
	"sentrywatch/src/config"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoModel struct {
	ID        primitive.ObjectID `bson:"_id"`
	MonitorID primitive.ObjectID `bson:"monitor_id"`
	InfoJSON  string             `bson:"info_json"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toDomainModel(mm *mongoModel) *Model {
	return &Model{
		ID:        mm.ID.Hex(),
		MonitorID: mm.MonitorID.Hex(),
		InfoJSON:  mm.InfoJSON,
		CreatedAt: mm.CreatedAt,
		UpdatedAt: mm.UpdatedAt,
	}
}

type sentHistoryMongoModel struct {
	ID        primitive.ObjectID `bson:"_id"`
	Type      string             `bson:"type"`
	MonitorID primitive.ObjectID `bson:"monitor_id"`
	Days      int                `bson:"days"`
	CreatedAt time.Time          `bson:"created_at"`
}

type MongoRepositoryImpl struct {
	client           *mongo.Client
	db               *mongo.Database
	collection       *mongo.Collection
	historyCollection *mongo.Collection
}

func NewMongoRepository(client *mongo.Client, cfg *config.Config) Repository {
	db := client.Database(cfg.DBName)
	collection := db.Collection("monitor_tls_info")
	historyCollection := db.Collection("notification_sent_history")

	_, err := collection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "monitor_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		panic("Failed to create index for monitor_tls_info: " + err.Error())
	}

	_, err = historyCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "monitor_id", Value: 1},
			{Key: "days", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		panic("Failed to create index for notification_sent_history: " + err.Error())
	}

	return &MongoRepositoryImpl{client, db, collection, historyCollection}
}

func (r *MongoRepositoryImpl) Upsert(ctx context.Context, monitorID string, infoJSON string) (*Model, error) {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filter := bson.M{"monitor_id": monitorObjectID}
	update := bson.M{
		"$set": bson.M{
			"info_json":  infoJSON,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, err
	}

	return r.FindByMonitorID(ctx, monitorID)
}

func (r *MongoRepositoryImpl) FindByMonitorID(ctx context.Context, monitorID string) (*Model, error) {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return nil, err
	}

	var entity mongoModel
	err = r.collection.FindOne(ctx, bson.M{"monitor_id": monitorObjectID}).Decode(&entity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&entity), nil
}

func (r *MongoRepositoryImpl) DeleteByMonitorID(ctx context.Context, monitorID string) error {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"monitor_id": monitorObjectID})
	return err
}

func (r *MongoRepositoryImpl) HasNotificationSent(ctx context.Context, notificationType, monitorID string, days int) (bool, error) {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return false, err
	}

	count, err := r.historyCollection.CountDocuments(ctx, bson.M{
		"type":       notificationType,
		"monitor_id": monitorObjectID,
		"days":       days,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoRepositoryImpl) RecordNotificationSent(ctx context.Context, notificationType, monitorID string, days int) error {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return err
	}

	sm := &sentHistoryMongoModel{
		ID:        primitive.NewObjectID(),
		Type:      notificationType,
		MonitorID: monitorObjectID,
		Days:      days,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.historyCollection.InsertOne(ctx, sm)
	return err
}

func (r *MongoRepositoryImpl) DeleteNotificationHistory(ctx context.Context, notificationType, monitorID string) error {
	monitorObjectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return err
	}
	_, err = r.historyCollection.DeleteMany(ctx, bson.M{
		"type":       notificationType,
		"monitor_id": monitorObjectID,
	})
	return err
}
