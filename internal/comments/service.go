package comments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/postdigester/donation-backend/internal/models"
	"github.com/postdigester/donation-backend/internal/records"
)

// TimestampLayout renders comment times the way the front end displays them.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

var ErrUserNotFound = errors.New("user not found")

// UserLookup resolves the commenting user; *users.Service satisfies it.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Service struct {
	users UserLookup
	store records.Store
	now   func() time.Time
}

func NewService(u UserLookup, s records.Store) *Service {
	return &Service{users: u, store: s, now: time.Now}
}

// Add stores a comment with the author's current name and image copied in.
func (s *Service) Add(ctx context.Context, email, text string) (models.InsertResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.InsertResult{}, err
	}
	if u == nil {
		return models.InsertResult{}, ErrUserNotFound
	}
	c := models.Comment{
		Email:          email,
		CommenterName:  u.Name,
		Comments:       text,
		CommenterImage: u.Image,
		Timestamp:      s.now().Format(TimestampLayout),
	}
	raw, err := bson.Marshal(c)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("encode comment: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return models.InsertResult{}, fmt.Errorf("encode comment: %w", err)
	}
	return s.store.Insert(ctx, doc)
}

func (s *Service) List(ctx context.Context) ([]bson.M, error) {
	return s.store.List(ctx)
}
