package feedback

import (
	"testing"

	"glowdesk/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFeedback struct {
	stored []models.Feedback
}

func (s *stubFeedback) Create(feedback *models.Feedback) error {
	s.stored = append(s.stored, *feedback)
	return nil
}

func (s *stubFeedback) GetByID(string) (*models.Feedback, error) { return nil, nil }

func (s *stubFeedback) GetByTenant(string, models.FeedbackFilter) ([]models.Feedback, error) {
	return s.stored, nil
}

func (s *stubFeedback) AverageRating(string) (float64, int64, error) {
	var sum int
	for _, f := range s.stored {
		sum += f.Rating
	}
	if len(s.stored) == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(len(s.stored)), int64(len(s.stored)), nil
}

type ratingRecorder struct {
	staffID string
	rating  int
	calls   int
}

func (r *ratingRecorder) Create(*models.Staff) error                  { return nil }
func (r *ratingRecorder) GetByID(string) (*models.Staff, error)       { return nil, nil }
func (r *ratingRecorder) GetByIDs([]string) ([]models.Staff, error)   { return nil, nil }
func (r *ratingRecorder) GetByTenant(string) ([]models.Staff, error)  { return nil, nil }
func (r *ratingRecorder) GetActiveByTenant(string) ([]models.Staff, error) {
	return nil, nil
}
func (r *ratingRecorder) Update(*models.Staff) error             { return nil }
func (r *ratingRecorder) RecordCompletion(string, float64) error { return nil }

func (r *ratingRecorder) RecordRating(staffID string, rating int) error {
	r.staffID = staffID
	r.rating = rating
	r.calls++
	return nil
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	svc := NewFeedbackService(&stubFeedback{}, &ratingRecorder{}, zap.NewNop())

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create("tenant-1", CreateFeedbackRequest{ClientID: "client-1", Rating: rating})
		require.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestCreateRecordsStaffRating(t *testing.T) {
	staff := &ratingRecorder{}
	svc := NewFeedbackService(&stubFeedback{}, staff, zap.NewNop())

	fb, err := svc.Create("tenant-1", CreateFeedbackRequest{
		ClientID: "client-1",
		StaffID:  "staff-1",
		Rating:   5,
		Comment:  "Loved it",
	})
	require.NoError(t, err)
	require.NotEmpty(t, fb.ID)
	require.Equal(t, 1, staff.calls)
	require.Equal(t, "staff-1", staff.staffID)
	require.Equal(t, 5, staff.rating)
}

func TestCreateWithoutStaffSkipsRating(t *testing.T) {
	staff := &ratingRecorder{}
	svc := NewFeedbackService(&stubFeedback{}, staff, zap.NewNop())

	_, err := svc.Create("tenant-1", CreateFeedbackRequest{ClientID: "client-1", Rating: 4})
	require.NoError(t, err)
	require.Zero(t, staff.calls)
}

func TestSummaryAverages(t *testing.T) {
	store := &stubFeedback{}
	svc := NewFeedbackService(store, &ratingRecorder{}, zap.NewNop())

	for _, rating := range []int{5, 4, 3} {
		_, err := svc.Create("tenant-1", CreateFeedbackRequest{ClientID: "client-1", Rating: rating})
		require.NoError(t, err)
	}

	avg, count, err := svc.Summary("tenant-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	require.InDelta(t, 4.0, avg, 0.001)
}
