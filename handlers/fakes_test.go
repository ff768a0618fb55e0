package handlers

import (
	"context"
	"errors"
	"sort"

	"devconnect/models"
	"devconnect/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo stores. Each keeps documents by value
// so handler-side mutations only become visible through Replace, the same
// way the real store behaves.

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.users, id)
	return nil
}

type fakeProfileStore struct {
	profiles map[primitive.ObjectID]models.Profile // keyed by owning user id
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[primitive.ObjectID]models.Profile{}}
}

func (s *fakeProfileStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProfileStore) FindByHandle(_ context.Context, handle string) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.Handle == handle {
			p := p
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeProfileStore) FindAll(_ context.Context) ([]models.Profile, error) {
	var all []models.Profile
	for _, p := range s.profiles {
		all = append(all, p)
	}
	return all, nil
}

func (s *fakeProfileStore) Insert(_ context.Context, p *models.Profile) error {
	for _, existing := range s.profiles {
		if existing.Handle == p.Handle {
			return store.ErrDuplicateHandle
		}
	}
	s.profiles[p.UserID] = *p
	return nil
}

func (s *fakeProfileStore) Merge(_ context.Context, userID primitive.ObjectID, upd store.ProfileUpdate) (*models.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Handle != nil {
		for owner, existing := range s.profiles {
			if owner != userID && existing.Handle == *upd.Handle {
				return nil, store.ErrDuplicateHandle
			}
		}
		p.Handle = *upd.Handle
	}
	if upd.Company != nil {
		p.Company = *upd.Company
	}
	if upd.Website != nil {
		p.Website = *upd.Website
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	if upd.GithubUsername != nil {
		p.GithubUsername = *upd.GithubUsername
	}
	if upd.Skills != nil {
		p.Skills = upd.Skills
	}
	if upd.Social != nil {
		p.Social = upd.Social
	}
	s.profiles[userID] = p
	return &p, nil
}

func (s *fakeProfileStore) Replace(_ context.Context, p *models.Profile) error {
	if _, ok := s.profiles[p.UserID]; !ok {
		return store.ErrNotFound
	}
	s.profiles[p.UserID] = *p
	return nil
}

func (s *fakeProfileStore) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(s.profiles, userID)
	return nil
}

type fakePostStore struct {
	posts   map[primitive.ObjectID]models.Post
	failAll bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]models.Post{}}
}

func (s *fakePostStore) FindAll(_ context.Context) ([]models.Post, error) {
	if s.failAll {
		return nil, errors.New("store unavailable")
	}
	var all []models.Post
	for _, p := range s.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date > all[j].Date })
	return all, nil
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakePostStore) Insert(_ context.Context, p *models.Post) error {
	s.posts[p.ID] = *p
	return nil
}

func (s *fakePostStore) Replace(_ context.Context, p *models.Post) error {
	if _, ok := s.posts[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.posts[p.ID] = *p
	return nil
}

func (s *fakePostStore) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) error {
	p, ok := s.posts[id]
	if !ok || p.UserID != owner {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
