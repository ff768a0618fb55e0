// Package store defines the persistence ports the handlers talk to and
// their MongoDB implementations. Handlers never see bson; tests swap in
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound covers missing documents and, for owned deletes, documents
	// the caller does not own. Callers cannot tell the two apart.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateHandle is returned when a profile insert collides with the
	// unique handle index.
	ErrDuplicateHandle = errors.New("store: handle already exists")
)

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProfileStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Insert(ctx context.Context, p *models.Profile) error
	// Merge applies only the fields set in upd to the caller's profile and
	// returns the updated document. Embedded experience/education are never
	// touched by a merge.
	Merge(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.Profile, error)
	Replace(ctx context.Context, p *models.Profile) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type PostStore interface {
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Insert(ctx context.Context, p *models.Post) error
	Replace(ctx context.Context, p *models.Post) error
	// DeleteOwned deletes the post only when owner matches; a non-owned post
	// yields ErrNotFound just like a missing one.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
}

// ProfileUpdate is the sparse field set for a profile merge. Nil pointers
// (and nil slices) mean "leave the stored value alone".
type ProfileUpdate struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         []string
	Social         *models.Social
}
