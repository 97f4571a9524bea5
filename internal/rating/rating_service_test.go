package rating_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"hrms/internal/rating"
	ratingerrors "hrms/internal/rating/errors"
	"hrms/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*rating.PeerRating
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*rating.PeerRating)}
}

func periodKey(pr *rating.PeerRating) string {
	return fmt.Sprintf("%s:%s:%d:%d", pr.RaterID, pr.RateeID, pr.Month, pr.Year)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) rating.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, pr *rating.PeerRating) error {
	k := periodKey(pr)
	if _, exists := f.rows[k]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_rating_rater_ratee_period"}
	}
	cp := *pr
	f.rows[k] = &cp
	return nil
}

func (f *fakeRepo) FindByRater(ctx context.Context, raterID string, month, year int) ([]rating.PeerRating, error) {
	var out []rating.PeerRating
	for _, pr := range f.rows {
		if pr.RaterID.String() == raterID && pr.Month == month && pr.Year == year {
			out = append(out, *pr)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByRatee(ctx context.Context, rateeID string, month, year int) ([]rating.PeerRating, error) {
	var out []rating.PeerRating
	for _, pr := range f.rows {
		if pr.RateeID.String() == rateeID && pr.Month == month && pr.Year == year {
			out = append(out, *pr)
		}
	}
	return out, nil
}

func (f *fakeRepo) AggregateByPeriod(ctx context.Context, month, year int) ([]rating.MonthlyAverage, error) {
	byRatee := make(map[string]*rating.MonthlyAverage)
	for _, pr := range f.rows {
		if pr.Month != month || pr.Year != year {
			continue
		}
		k := pr.RateeID.String()
		agg, ok := byRatee[k]
		if !ok {
			agg = &rating.MonthlyAverage{RateeID: k}
			byRatee[k] = agg
		}
		agg.RatingCount++
		agg.AvgTeamwork += pr.TeamworkScore
		agg.AvgDelivery += pr.DeliveryScore
	}
	var out []rating.MonthlyAverage
	for _, agg := range byRatee {
		n := float64(agg.RatingCount)
		agg.AvgTeamwork /= n
		agg.AvgDelivery /= n
		agg.OverallAverage = (agg.AvgTeamwork + agg.AvgDelivery) / 2
		out = append(out, *agg)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		f.users[u.ID.String()] = u
	}
	return f
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository              { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAllActive(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) FindSubordinates(ctx context.Context, approverID string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) AdjustCasualLeaveAvailed(ctx context.Context, id string, delta float64) error {
	return nil
}
func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error { return nil }

func TestCreate_DuplicatePeriodConflicts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ratee := &user.User{ID: uuid.New(), FullName: "Rae Ratee", IsActive: true}
	svc := rating.NewService(db, newFakeRepo(), newFakeUserRepo(ratee))

	raterID := uuid.New().String()
	req := rating.CreateRatingRequest{
		RateeID:       ratee.ID.String(),
		Month:         3,
		Year:          2026,
		TeamworkScore: 8,
		DeliveryScore: 7.5,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), raterID, req)
	assert.NoError(t, err)
	assert.Equal(t, 8.0, resp.TeamworkScore)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Create(context.Background(), raterID, req)
	assert.ErrorIs(t, err, ratingerrors.ErrDuplicateRating)
}

func TestCreate_SelfRating(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := rating.NewService(db, newFakeRepo(), newFakeUserRepo())

	id := uuid.New().String()
	_, err := svc.Create(context.Background(), id, rating.CreateRatingRequest{
		RateeID: id,
		Month:   3,
		Year:    2026,
	})
	assert.ErrorIs(t, err, ratingerrors.ErrSelfRating)
}

func TestCreate_UnknownRatee(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := rating.NewService(db, newFakeRepo(), newFakeUserRepo())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), rating.CreateRatingRequest{
		RateeID: uuid.New().String(),
		Month:   3,
		Year:    2026,
	})
	assert.ErrorIs(t, err, ratingerrors.ErrRateeNotFound)
}

func TestGetMonthlyAverages(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ratee := &user.User{ID: uuid.New(), FullName: "Rae Ratee", IsActive: true}
	repo := newFakeRepo()
	svc := rating.NewService(db, repo, newFakeUserRepo(ratee))

	for _, scores := range [][2]float64{{8, 6}, {6, 8}} {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Create(context.Background(), uuid.New().String(), rating.CreateRatingRequest{
			RateeID:       ratee.ID.String(),
			Month:         3,
			Year:          2026,
			TeamworkScore: scores[0],
			DeliveryScore: scores[1],
		})
		assert.NoError(t, err)
	}

	averages, err := svc.GetMonthlyAverages(context.Background(), 3, 2026)
	assert.NoError(t, err)
	assert.Len(t, averages, 1)
	assert.Equal(t, 2, averages[0].RatingCount)
	assert.Equal(t, 7.0, averages[0].AvgTeamwork)
	assert.Equal(t, 7.0, averages[0].AvgDelivery)
	assert.Equal(t, 7.0, averages[0].OverallAverage)

	_, err = svc.GetMonthlyAverages(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, ratingerrors.ErrInvalidMonth)
}
