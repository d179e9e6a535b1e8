package roamstay

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository[P Principal] struct {
	collection *mongo.Collection
	blank      func() P
}

// NewMongoRepository wraps a collection as the credential store for one
// principal kind. blank produces the empty record FindOne decodes into.
// The collection is expected to carry a unique index on email; violations
// surface as ErrEmailInUse.
func NewMongoRepository[P Principal](c *mongo.Collection, blank func() P) Repository[P] {
	return &mongoRepository[P]{collection: c, blank: blank}
}

func (m *mongoRepository[P]) FindByID(id ID) (P, error) {
	return m.findBy("_id", string(id))
}

func (m *mongoRepository[P]) FindByEmail(email string) (P, error) {
	return m.findBy("email", email)
}

func (m *mongoRepository[P]) findBy(key string, val string) (P, error) {
	var zero P

	sr := m.collection.FindOne(context.TODO(), bson.M{key: val})
	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return zero, ErrNotFound
	}

	p := m.blank()
	if err := sr.Decode(p); err != nil {
		return zero, err
	}
	return p, nil
}

func (m *mongoRepository[P]) Store(p P) error {
	_, err := m.collection.InsertOne(context.TODO(), p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailInUse
	}
	return err
}

func (m *mongoRepository[P]) Update(p P) error {
	_, err := m.collection.ReplaceOne(context.TODO(), bson.M{"_id": string(p.AccountID())}, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailInUse
	}
	return err
}

func (m *mongoRepository[P]) Delete(id ID) error {
	res, err := m.collection.DeleteOne(context.TODO(), bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
