package store

import (
	"context"
	"errors"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) error {
	_, err := s.coll.InsertOne(ctx, u)
	return err
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type MongoProfileStore struct {
	coll *mongo.Collection
}

func NewMongoProfileStore(coll *mongo.Collection) *MongoProfileStore {
	return &MongoProfileStore{coll: coll}
}

func (s *MongoProfileStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.findOne(ctx, bson.M{"user": userID})
}

func (s *MongoProfileStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.findOne(ctx, bson.M{"handle": handle})
}

func (s *MongoProfileStore) findOne(ctx context.Context, filter bson.M) (*models.Profile, error) {
	var p models.Profile
	err := s.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoProfileStore) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *MongoProfileStore) Insert(ctx context.Context, p *models.Profile) error {
	_, err := s.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateHandle
	}
	return err
}

func (s *MongoProfileStore) Merge(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.Profile, error) {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("handle", upd.Handle)
	setString("company", upd.Company)
	setString("website", upd.Website)
	setString("location", upd.Location)
	setString("status", upd.Status)
	setString("bio", upd.Bio)
	setString("githubusername", upd.GithubUsername)
	if upd.Skills != nil {
		set["skills"] = upd.Skills
	}
	if upd.Social != nil {
		set["social"] = upd.Social
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateHandle
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Replace writes the whole document back. Sub-entity mutations go through
// here, so concurrent writers to the same profile are last-write-wins.
func (s *MongoProfileStore) Replace(ctx context.Context, p *models.Profile) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProfileStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

type MongoPostStore struct {
	coll *mongo.Collection
}

func NewMongoPostStore(coll *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{coll: coll}
}

func (s *MongoPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) Insert(ctx context.Context, p *models.Post) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

// Replace writes the whole post back, likes and comments included.
func (s *MongoPostStore) Replace(ctx context.Context, p *models.Post) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwned filters on both id and owner so deleting someone else's post
// is indistinguishable from deleting a missing one.
func (s *MongoPostStore) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
