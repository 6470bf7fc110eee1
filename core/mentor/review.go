package mentor

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

var ErrAlreadyReviewed = errors.New("you have already reviewed this mentor")

// Review is a student's rating of a mentor. UserID is empty for seeded reviews.
type Review struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentor_id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type NewReview struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,notblank,max=2000"`
}

func (nr *NewReview) Validate(svc *Service) error {
	nr.Comment = core.CleanString(nr.Comment)
	return svc.validate.Struct(nr)
}

// Reviews returns the reviews of a mentor, newest first.
func (svc *Service) Reviews(mentorID string) ([]Review, error) {
	if _, err := svc.repo.GetMentorByID(mentorID); err != nil {
		return nil, err
	}
	return svc.repo.QueryReviews(mentorID)
}

// AddReview records the author's review. Each user reviews a mentor once.
func (svc *Service) AddReview(mentorID string, author user.User, nr NewReview) (Review, error) {
	reviews, err := svc.Reviews(mentorID)
	if err != nil {
		return Review{}, err
	}
	for _, r := range reviews {
		if author.ID != "" && r.UserID == author.ID {
			return Review{}, core.NewValidationError(ErrAlreadyReviewed)
		}
	}
	return svc.repo.CreateReview(Review{
		ID:        uuid.New().String(),
		MentorID:  mentorID,
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Rating:    nr.Rating,
		Comment:   nr.Comment,
		CreatedAt: time.Now().UTC(),
	})
}

// SeedReviews returns the demo reviews of every seeded mentor, dated relative to now.
func SeedReviews(now time.Time) []Review {
	reviews := make([]Review, 0, 2*len(Seed))
	for _, m := range Seed {
		reviews = append(reviews,
			Review{
				ID:        m.ID + "-r1",
				MentorID:  m.ID,
				Name:      "Emily Davis",
				Avatar:    user.Avatar("Emily Davis"),
				Rating:    5,
				Comment:   "An incredible mentor! She helped me understand complex algorithms in a way that finally made sense.",
				CreatedAt: now.AddDate(0, 0, -21),
			},
			Review{
				ID:        m.ID + "-r2",
				MentorID:  m.ID,
				Name:      "James Wilson",
				Avatar:    user.Avatar("James Wilson"),
				Rating:    5,
				Comment:   "Very patient and knowledgeable. Highly recommend taking any of her courses.",
				CreatedAt: now.AddDate(0, -1, 0),
			},
		)
	}
	return reviews
}
