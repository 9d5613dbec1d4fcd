package socialmedia

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

type dbAccount struct {
	ID       int64  `bson:"_id"`
	Username string `bson:"username"`
	Password string `bson:"password"`
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection("accounts"),
		counters:   db.Collection("counters"),
	}
}

// EnsureAccountIndexes creates the unique index on username. Duplicate
// registrations that race past the service-level lookup fail here.
func EnsureAccountIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *mongoAccountRepository) Store(acc *Account) (*Account, error) {
	id, err := nextSequence(m.counters, "accounts")
	if err != nil {
		return nil, err
	}

	dba := dbAccount{ID: id, Username: acc.Username, Password: acc.Password}
	if _, err := m.collection.InsertOne(context.TODO(), &dba); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrExistingUsername
		}
		return nil, err
	}

	return &Account{ID: dba.ID, Username: dba.Username, Password: dba.Password}, nil
}

func (m *mongoAccountRepository) FindByUsername(username string) (*Account, error) {
	return m.findAccountBy(bson.M{"username": username})
}

func (m *mongoAccountRepository) FindByID(id int64) (*Account, error) {
	return m.findAccountBy(bson.M{"_id": id})
}

func (m *mongoAccountRepository) findAccountBy(filter bson.M) (*Account, error) {
	var dba dbAccount
	sr := m.collection.FindOne(context.TODO(), filter)

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrAccountNotFound
	}

	if err := sr.Decode(&dba); err != nil {
		return nil, err
	}

	return &Account{ID: dba.ID, Username: dba.Username, Password: dba.Password}, nil
}

func (m *mongoAccountRepository) ExistsByID(id int64) (bool, error) {
	count, err := m.collection.CountDocuments(context.TODO(), bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type mongoMessageRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

type dbMessage struct {
	ID       int64  `bson:"_id"`
	Text     string `bson:"text"`
	PostedBy int64  `bson:"posted_by"`
}

func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection("messages"),
		counters:   db.Collection("counters"),
	}
}

func (m *mongoMessageRepository) Store(msg *Message) (*Message, error) {
	id, err := nextSequence(m.counters, "messages")
	if err != nil {
		return nil, err
	}

	dbm := dbMessage{ID: id, Text: msg.Text, PostedBy: msg.PostedBy}
	if _, err := m.collection.InsertOne(context.TODO(), &dbm); err != nil {
		return nil, err
	}

	return &Message{ID: dbm.ID, Text: dbm.Text, PostedBy: dbm.PostedBy}, nil
}

func (m *mongoMessageRepository) FindByID(id int64) (*Message, error) {
	var dbm dbMessage
	sr := m.collection.FindOne(context.TODO(), bson.M{"_id": id})

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrMessageNotFound
	}

	if err := sr.Decode(&dbm); err != nil {
		return nil, err
	}

	return &Message{ID: dbm.ID, Text: dbm.Text, PostedBy: dbm.PostedBy}, nil
}

func (m *mongoMessageRepository) FindByPostedBy(accountID int64) ([]Message, error) {
	return m.findMessages(bson.M{"posted_by": accountID})
}

func (m *mongoMessageRepository) FindAll() ([]Message, error) {
	return m.findMessages(bson.M{})
}

func (m *mongoMessageRepository) findMessages(filter bson.M) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.collection.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.TODO())

	msgs := []Message{}
	for cur.Next(context.TODO()) {
		var dbm dbMessage
		if err := cur.Decode(&dbm); err != nil {
			return nil, err
		}
		msgs = append(msgs, Message{ID: dbm.ID, Text: dbm.Text, PostedBy: dbm.PostedBy})
	}
	return msgs, cur.Err()
}

func (m *mongoMessageRepository) UpdateText(id int64, text string) (int64, error) {
	res, err := m.collection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"text": text}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (m *mongoMessageRepository) Delete(id int64) error {
	_, err := m.collection.DeleteOne(context.TODO(), bson.M{"_id": id})
	return err
}

// nextSequence returns the next value of a named counter, creating the
// counter document on first use.
func nextSequence(counters *mongo.Collection, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := counters.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}
