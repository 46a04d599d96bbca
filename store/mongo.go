package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nwakakukaks/mont/models"
)

const responsesCollection = "responses"

// Mongo implements Store on top of two whole-document collections plus a
// responses collection.
type Mongo struct {
	db *mongo.Database
}

// Dial connects to the Mongo deployment and pings it before returning.
func Dial(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr("connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, storeErr("ping", err)
	}
	return &Mongo{db: client.Database(database)}, nil
}

// Close releases the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

func (m *Mongo) collection(table Table) *mongo.Collection {
	return m.db.Collection(string(table))
}

func (m *Mongo) Save(ctx context.Context, table Table, rec *models.FormRecord) error {
	if rec.OwnerID == "" {
		return ErrUnauthenticated
	}

	rec.UpdatedAt = time.Now().UTC()
	rec.SchemaVersion = models.SchemaVersion

	// Conflict on id overwrites the whole record, last write wins.
	ropts := options.Replace().SetUpsert(true)
	_, err := m.collection(table).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, ropts)
	if err != nil {
		return storeErr("save", err)
	}
	return nil
}

func (m *Mongo) LoadByID(ctx context.Context, id string) (*models.FormRecord, Table, error) {
	for _, table := range []Table{TableForms, TableOnboarding} {
		rec := &models.FormRecord{}
		err := m.collection(table).FindOne(ctx, bson.M{"_id": id}).Decode(rec)
		if err == nil {
			models.Normalize(&rec.State)
			return rec, table, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", storeErr("load", err)
		}
	}
	return nil, "", ErrNotFound
}

func (m *Mongo) ListByOwner(ctx context.Context, table Table, ownerID string) ([]models.FormListEntry, error) {
	opt := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "title", Value: 1}, {Key: "state", Value: 1}})

	cur, err := m.collection(table).Find(ctx, bson.M{"ownerId": ownerID}, opt)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer cur.Close(ctx)

	entries := []models.FormListEntry{}
	for cur.Next(ctx) {
		var entry models.FormListEntry
		if err := cur.Decode(&entry); err != nil {
			return nil, storeErr("list", err)
		}
		models.Normalize(&entry.State)
		entries = append(entries, entry)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return entries, nil
}

func (m *Mongo) DeleteByID(ctx context.Context, table Table, id, ownerID string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}

	filt := bson.M{"$and": bson.A{
		bson.M{"_id": id},
		bson.M{"ownerId": ownerID}}}

	res, err := m.collection(table).DeleteOne(ctx, filt)
	if err != nil {
		return storeErr("delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	// Remove submissions along with the form.
	_, err = m.db.Collection(responsesCollection).DeleteMany(ctx, bson.M{"formid": id})
	if err != nil {
		return storeErr("delete responses", err)
	}
	return nil
}

func (m *Mongo) SaveResponse(ctx context.Context, resp *models.FormResponse) error {
	resp.Timestamp = time.Now().UTC()
	_, err := m.db.Collection(responsesCollection).InsertOne(ctx, resp)
	if err != nil {
		return storeErr("save response", err)
	}
	return nil
}

func (m *Mongo) ListResponses(ctx context.Context, formID string) ([]models.FormResponse, error) {
	cur, err := m.db.Collection(responsesCollection).Find(ctx, bson.M{"formid": formID})
	if err != nil {
		return nil, storeErr("list responses", err)
	}
	defer cur.Close(ctx)

	responses := []models.FormResponse{}
	for cur.Next(ctx) {
		var elem models.FormResponse
		if err := cur.Decode(&elem); err != nil {
			return nil, storeErr("list responses", err)
		}
		responses = append(responses, elem)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list responses", err)
	}
	return responses, nil
}
