package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atelierhq/studio-api/internal/database"
	"github.com/atelierhq/studio-api/internal/model"
)

type OnboardRepository interface {
	List(ctx context.Context, filter model.OnboardFilter, limit, offset int) ([]model.OnboardRequest, error)
	Count(ctx context.Context, filter model.OnboardFilter) (int, error)
	FindByID(ctx context.Context, id int64) (*model.OnboardRequest, error)
	Create(ctx context.Context, params model.CreateOnboardParams) (*model.OnboardRequest, error)
	// SetDecision only touches undecided rows; nil result means the row is
	// missing or was decided concurrently.
	SetDecision(ctx context.Context, id int64, approved bool, meetingLink *string) (*model.OnboardRequest, error)
	// SetDone only touches approved, uncompleted rows.
	SetDone(ctx context.Context, id int64, done bool) (*model.OnboardRequest, error)
}

type onboardRepo struct {
	db database.DBTX
}

func NewOnboardRepository(db database.DBTX) OnboardRepository {
	return &onboardRepo{db: db}
}

func onboardWhere(filter model.OnboardFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Approved != nil {
		args = append(args, *filter.Approved)
		conds = append(conds, fmt.Sprintf("approved = $%d", len(args)))
	}
	if filter.Done != nil {
		args = append(args, *filter.Done)
		conds = append(conds, fmt.Sprintf("done = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *onboardRepo) List(ctx context.Context, filter model.OnboardFilter, limit, offset int) ([]model.OnboardRequest, error) {
	where, args := onboardWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT * FROM onboard_requests%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var requests []model.OnboardRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, err
}

func (r *onboardRepo) Count(ctx context.Context, filter model.OnboardFilter) (int, error) {
	where, args := onboardWhere(filter)

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM onboard_requests`+where, args...)
	return count, err
}

func (r *onboardRepo) FindByID(ctx context.Context, id int64) (*model.OnboardRequest, error) {
	var req model.OnboardRequest
	err := r.db.GetContext(ctx, &req, `SELECT * FROM onboard_requests WHERE id = $1`, id)
	return HandleNotFound(&req, err)
}

func (r *onboardRepo) Create(ctx context.Context, params model.CreateOnboardParams) (*model.OnboardRequest, error) {
	var req model.OnboardRequest
	err := r.db.GetContext(ctx, &req, `
		INSERT INTO onboard_requests
			(name, email, organisation, title, message, meeting_date, meeting_time, meeting_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`, params.Name, params.Email, params.Organisation, params.Title,
		params.Message, params.Date, params.Time, params.MeetingID)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *onboardRepo) SetDecision(ctx context.Context, id int64, approved bool, meetingLink *string) (*model.OnboardRequest, error) {
	var req model.OnboardRequest
	err := r.db.GetContext(ctx, &req, `
		UPDATE onboard_requests SET
			approved = $2,
			meeting_link = $3,
			updated_at = $4
		WHERE id = $1 AND approved IS NULL
		RETURNING *
	`, id, approved, meetingLink, time.Now())
	return HandleNotFound(&req, err)
}

func (r *onboardRepo) SetDone(ctx context.Context, id int64, done bool) (*model.OnboardRequest, error) {
	var req model.OnboardRequest
	err := r.db.GetContext(ctx, &req, `
		UPDATE onboard_requests SET
			done = $2,
			updated_at = $3
		WHERE id = $1 AND approved = TRUE AND (done IS NULL OR done = FALSE)
		RETURNING *
	`, id, done, time.Now())
	return HandleNotFound(&req, err)
}
