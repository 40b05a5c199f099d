package donor

import (
	"context"
	"errors"
	"fmt"

	"github.com/postdigester/donation-backend/internal/models"
	"github.com/postdigester/donation-backend/pkg/logger"
	"github.com/postdigester/donation-backend/pkg/metrics"
)

// Receipt describes what RecordDonation did. Exactly one of Inserted or Updated is set.
type Receipt struct {
	Inserted *models.InsertResult
	Updated  *models.UpdateResult
}

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// RecordDonation adds amount to the donor's running total, creating the donor
// on the first contribution. Existing totals are bumped with $inc so two
// concurrent contributions never overwrite each other.
func (s *Service) RecordDonation(ctx context.Context, d models.Donor) (*Receipt, error) {
	existing, err := s.repo.FindByEmail(ctx, d.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		row := d
		err := s.repo.Insert(ctx, &row)
		switch {
		case err == nil:
			metrics.DonorContributions.WithLabelValues("created").Inc()
			return &Receipt{Inserted: &models.InsertResult{Acknowledged: true, InsertedID: row.ID}}, nil
		case errors.Is(err, ErrDonorExists):
			// lost the race for the first row; fall through to the increment
			logger.Debugf("donor %s inserted concurrently, incrementing instead", d.Email)
		default:
			return nil, err
		}
	}
	res, err := s.repo.Increment(ctx, d.Email, d.Amount)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("donor %s vanished before increment", d.Email)
	}
	metrics.DonorContributions.WithLabelValues("incremented").Inc()
	return &Receipt{Updated: &res}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Donor, error) {
	return s.repo.List(ctx)
}
