package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

var FULL_PAYMENT_SELECT_QUERY = `
SELECT
	p.payment_id, p.organization_id, p.loan_id, p.amount, p.policy,
	p.fees_paid, p.interest_paid, p.principal_paid, p.payment_date, p.notes,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM payments p
`

func (r *PgxPaymentRepository) getPayments(ctx context.Context, filterQuery string, args ...any) ([]domain.Payment, error) {
	query := FULL_PAYMENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()
	modelPayments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Payment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect payment rows", err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}

// SavePaymentInTx persists the payment row within the transaction that also
// updated the loan's balance buckets, so both commit or neither does.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			payment_id, organization_id, loan_id, amount, policy,
			fees_paid, interest_paid, principal_paid, payment_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.OrganizationID,
		m.LoanID,
		m.Amount,
		m.Policy,
		m.FeesPaid,
		m.InterestPaid,
		m.PrincipalPaid,
		m.PaymentDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "payment ID "+payment.PaymentID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "loan does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `WHERE p.payment_id = $1`
	payments, err := r.getPayments(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payments[0], nil
}

func (r *PgxPaymentRepository) ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.Payment, error) {
	query := `WHERE p.loan_id = $1 ORDER BY p.payment_date DESC, p.created_at DESC;`
	return r.getPayments(ctx, query, loanID)
}
