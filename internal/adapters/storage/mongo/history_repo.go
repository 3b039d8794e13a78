package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-history/internal/domain/history"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// historyDoc es la forma BSON. El _id puede ser ObjectID (altas de este servicio)
// o string (documentos con id asignado a mano); hacia el dominio viaja como string.
type historyDoc struct {
	ID           any        `bson:"_id,omitempty"`
	PatientID    int        `bson:"patId"`
	PatientName  string     `bson:"patient"`
	CreationDate *time.Time `bson:"creationDate"`
	Notes        string     `bson:"notes"`
}

type HistoryRepo struct {
	coll *mongo.Collection
}

func NewHistoryRepo(coll *mongo.Collection) *HistoryRepo {
	return &HistoryRepo{coll: coll}
}

func (r *HistoryRepo) FindByID(ctx context.Context, id string) (history.Record, error) {
	key, ok := parseID(id)
	if !ok {
		return history.Record{}, history.ErrNotFound
	}

	var doc historyDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return history.Record{}, history.ErrNotFound
		}
		return history.Record{}, fmt.Errorf("find history %s: %w", id, err)
	}
	return doc.toRecord(), nil
}

func (r *HistoryRepo) FindByPatientID(ctx context.Context, patientID int) ([]history.Record, error) {
	return r.find(ctx, bson.M{"patId": patientID})
}

func (r *HistoryRepo) FindAll(ctx context.Context) ([]history.Record, error) {
	return r.find(ctx, bson.M{})
}

func (r *HistoryRepo) find(ctx context.Context, filter bson.M) ([]history.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creationDate", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find histories: %w", err)
	}

	var docs []historyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode histories: %w", err)
	}

	out := make([]history.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

// Save: sin id => insert con ObjectID nuevo; con id => replace con upsert.
func (r *HistoryRepo) Save(ctx context.Context, h history.Record) (history.Record, error) {
	doc := toHistoryDoc(h)

	if strings.TrimSpace(h.ID) == "" {
		doc.ID = bson.NewObjectID()
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return history.Record{}, fmt.Errorf("insert history: %w", err)
		}
		return doc.toRecord(), nil
	}

	key, _ := parseID(h.ID)
	doc.ID = key

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return history.Record{}, fmt.Errorf("replace history %s: %w", h.ID, err)
	}
	return doc.toRecord(), nil
}

func (r *HistoryRepo) DeleteByID(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return history.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("delete history %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return history.ErrNotFound
	}
	return nil
}

// parseID devuelve el valor de _id a filtrar: ObjectID si id es hex válido,
// si no el string tal cual. ok=false solo para id vacío.
func parseID(id string) (any, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid, true
	}
	return id, true
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func toHistoryDoc(h history.Record) historyDoc {
	d := historyDoc{
		PatientID:   h.PatientID,
		PatientName: h.PatientName,
		Notes:       h.Notes,
	}
	if !h.CreationDate.IsZero() {
		t := h.CreationDate.UTC()
		d.CreationDate = &t
	}
	return d
}

func (d historyDoc) toRecord() history.Record {
	h := history.Record{
		PatientID:   d.PatientID,
		PatientName: d.PatientName,
		Notes:       d.Notes,
	}
	h.ID = idString(d.ID)
	if d.CreationDate != nil {
		h.CreationDate = d.CreationDate.UTC()
	}
	return h
}
