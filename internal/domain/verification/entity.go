// Package verification models cook-through feedback on recipes and the
// denormalized rating stats kept on each recipe row.
package verification

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRatingOutOfRange   = errors.New("rating must be between 1.0 and 5.0")
	ErrNegativeCookMinute = errors.New("execution time cannot be negative")
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Verification records that a user cooked a recipe and how it went.
// ExecutionMinutes is the actual cook time when the user reported one.
type Verification struct {
	ID               uuid.UUID
	RecipeID         uuid.UUID
	UserID           uuid.UUID
	Rating           float64
	Notes            string
	WouldMake        bool
	ExecutionMinutes *int
	VerifiedAt       time.Time
}

// New validates the rating and materializes a verification with
// identity and timestamp.
func New(recipeID, userID uuid.UUID, rating float64, notes string, wouldMake bool, executionMinutes *int) (*Verification, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrRatingOutOfRange
	}
	if executionMinutes != nil && *executionMinutes < 0 {
		return nil, ErrNegativeCookMinute
	}
	return &Verification{
		ID:               uuid.New(),
		RecipeID:         recipeID,
		UserID:           userID,
		Rating:           rating,
		Notes:            notes,
		WouldMake:        wouldMake,
		ExecutionMinutes: executionMinutes,
		VerifiedAt:       time.Now().UTC(),
	}, nil
}

// Stats is the rollup persisted on a recipe after every new
// verification: count and mean rating rounded to two decimals.
type Stats struct {
	VerifiedCount int
	AvgRating     float64
}

// Summarize computes stats over the ratings of all verifications for a
// recipe. An empty slice yields zero stats.
func Summarize(ratings []float64) Stats {
	if len(ratings) == 0 {
		return Stats{}
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	mean := sum / float64(len(ratings))
	return Stats{
		VerifiedCount: len(ratings),
		AvgRating:     math.Round(mean*100) / 100,
	}
}

// SuccessRate is the share of verifications the cook would make again,
// as a percentage rounded to one decimal.
func SuccessRate(wouldMake, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(wouldMake) / float64(total) * 100
	return math.Round(pct*10) / 10
}
