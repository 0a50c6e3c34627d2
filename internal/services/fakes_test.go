package services

import (
	"context"
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := u
	return &found, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = *u
	return nil
}

type fakeCardRepo struct {
	cards []models.Card
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{}
}

func (r *fakeCardRepo) Create(_ context.Context, c *models.Card) error {
	c.ID = primitive.NewObjectID()
	// strictly increasing timestamps keep the newest-first order unambiguous
	c.CreatedAt = time.Now().UTC().Add(time.Duration(len(r.cards)) * time.Millisecond)
	c.UpdatedAt = c.CreatedAt
	r.cards = append(r.cards, *c)
	return nil
}

func (r *fakeCardRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Card, error) {
	out := make([]models.Card, 0)
	for i := len(r.cards) - 1; i >= 0; i-- {
		if r.cards[i].UserID == userID {
			out = append(out, r.cards[i])
		}
	}
	return out, nil
}
