package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/mapping"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/pagination"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryWithTx {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryWithTx
var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

var FULL_LOAN_SELECT_QUERY = `
SELECT
	l.loan_id, l.organization_id, l.facility_id, l.credit_line_id, l.reference_number,
	l.amount, l.sibor_rate, l.bank_rate, l.start_date, l.due_date, l.status,
	l.principal_outstanding, l.interest_outstanding, l.fees_outstanding,
	l.settled_amount, l.settled_date,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM loans l
`

func (r *PgxLoanRepository) getLoans(ctx context.Context, filterQuery string, args ...any) ([]domain.Loan, error) {
	query := FULL_LOAN_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query loans", err)
	}
	defer rows.Close()
	modelLoans, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Loan{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect loan rows", err)
	}

	return mapping.ToDomainLoanSlice(modelLoans), nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, opening finance.LoanBalance) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (
			loan_id, organization_id, facility_id, credit_line_id, reference_number,
			amount, sibor_rate, bank_rate, start_date, due_date, status,
			principal_outstanding, interest_outstanding, fees_outstanding,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.OrganizationID,
		m.FacilityID,
		m.CreditLineID,
		m.ReferenceNumber,
		m.Amount,
		m.SiborRate,
		m.BankRate,
		m.StartDate,
		m.DueDate,
		m.Status,
		opening.Principal,
		opening.Interest,
		opening.Fees,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "loan reference "+loan.ReferenceNumber+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "facility or credit line does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save loan "+loan.LoanID, err)
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		UPDATE loans
		SET sibor_rate = $1, start_date = $2, due_date = $3, status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE loan_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.SiborRate,
		m.StartDate,
		m.DueDate,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LoanID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update loan "+loan.LoanID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) MarkLoanSettled(ctx context.Context, loanID string, settledAmount decimal.Decimal, settledDate time.Time, userID string, now time.Time) error {
	query := `
		UPDATE loans
		SET status = $1, settled_amount = $2, settled_date = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		domain.LoanSettled,
		settledAmount,
		settledDate,
		now,
		userID,
		loanID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle loan "+loanID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) MarkLoanCancelled(ctx context.Context, loanID string, userID string, now time.Time) error {
	query := `
		UPDATE loans
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE loan_id = $4;
	`
	result, err := r.Pool.Exec(ctx, query, domain.LoanCancelled, now, userID, loanID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel loan "+loanID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `WHERE l.loan_id = $1`
	loans, err := r.getLoans(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &loans[0], nil
}

func (r *PgxLoanRepository) FindLoanByReference(ctx context.Context, organizationID string, referenceNumber string) (*domain.Loan, error) {
	query := `WHERE l.organization_id = $1 AND l.reference_number = $2`
	loans, err := r.getLoans(ctx, query, organizationID, referenceNumber)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &loans[0], nil
}

// ListLoans retrieves a paginated list of loans for an organization using token-based pagination.
// Loans are ordered by due date so the soonest-maturing loans come first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, organizationID string, status *domain.LoanStatus, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	filterClause := `WHERE l.organization_id = $1`
	args := []any{organizationID}

	if status != nil {
		args = append(args, *status)
		filterClause += ` AND l.status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor condition stable across ties on due_date.
		args = append(args, lastDueDate, lastCreatedAt)
		filterClause += ` AND (l.due_date, l.created_at) > ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := filterClause + ` ORDER BY l.due_date ASC, l.created_at ASC LIMIT $` + strconv.Itoa(len(args)) + `;`

	loans, err := r.getLoans(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(loans) > limit {
		lastLoan := loans[limit-1]
		token := pagination.EncodeToken(lastLoan.DueDate, lastLoan.CreatedAt)
		nextTokenVal = &token
		loans = loans[:limit]
	}

	return loans, nextTokenVal, nil
}

func (r *PgxLoanRepository) ListLoansByFacility(ctx context.Context, facilityID string) ([]domain.Loan, error) {
	query := `WHERE l.facility_id = $1 ORDER BY l.due_date ASC, l.created_at ASC;`
	return r.getLoans(ctx, query, facilityID)
}

// ListLoansDueBefore retrieves outstanding loans due on or before the cutoff,
// soonest due date first.
func (r *PgxLoanRepository) ListLoansDueBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]domain.Loan, error) {
	query := `
		WHERE l.organization_id = $1 AND l.due_date <= $2 AND l.status IN ($3, $4)
		ORDER BY l.due_date ASC, l.created_at ASC;
	`
	return r.getLoans(ctx, query, organizationID, cutoff, domain.LoanActive, domain.LoanOverdue)
}

func (r *PgxLoanRepository) GetLoanBalance(ctx context.Context, loanID string) (finance.LoanBalance, error) {
	query := `
		SELECT principal_outstanding, interest_outstanding, fees_outstanding
		FROM loans
		WHERE loan_id = $1;
	`
	var balance finance.LoanBalance
	err := r.Pool.QueryRow(ctx, query, loanID).Scan(
		&balance.Principal,
		&balance.Interest,
		&balance.Fees,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.LoanBalance{}, apperrors.ErrNotFound
		}
		return finance.LoanBalance{}, apperrors.NewAppError(500, "failed to read balance for loan "+loanID, err)
	}
	return balance, nil
}

// GetLoanBalanceForUpdate reads and row-locks the loan's balance buckets inside tx.
// Concurrent payments against the same loan serialize on this lock.
func (r *PgxLoanRepository) GetLoanBalanceForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (finance.LoanBalance, error) {
	query := `
		SELECT principal_outstanding, interest_outstanding, fees_outstanding
		FROM loans
		WHERE loan_id = $1
		FOR UPDATE;
	`
	var balance finance.LoanBalance
	err := tx.QueryRow(ctx, query, loanID).Scan(
		&balance.Principal,
		&balance.Interest,
		&balance.Fees,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.LoanBalance{}, apperrors.ErrNotFound
		}
		return finance.LoanBalance{}, apperrors.NewAppError(500, "failed to lock balance for loan "+loanID, err)
	}
	return balance, nil
}

// UpdateLoanBalanceInTx writes the post-payment balance buckets inside tx.
func (r *PgxLoanRepository) UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID string, balance finance.LoanBalance, userID string, now time.Time) error {
	query := `
		UPDATE loans
		SET principal_outstanding = $1, interest_outstanding = $2, fees_outstanding = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $6;
	`
	result, err := tx.Exec(ctx, query,
		balance.Principal,
		balance.Interest,
		balance.Fees,
		now,
		userID,
		loanID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for loan "+loanID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
