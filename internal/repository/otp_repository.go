package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"insightfeed/internal/models"
)

type otpRepository struct {
	db *sqlx.DB
}

func NewOTPRepository(db *sqlx.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, pending *models.PendingRegistration) error {
	if pending.ID == "" {
		pending.ID = uuid.New().String()
	}

	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now()
	}

	// заодно выметаем просроченные заявки, отдельного фонового процесса нет
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE expires_at < CURRENT_TIMESTAMP`); err != nil {
		log.Printf("Предупреждение: не удалось удалить просроченные заявки: %v", err)
	}

	query := `
		INSERT INTO pending_registrations (id, email, otp, expires_at, first_name, last_name, phone, dob, password_hash, preferences, created_at)
		VALUES (:id, :email, :otp, :expires_at, :first_name, :last_name, :phone, :dob, :password_hash, :preferences, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, pending)
	if err != nil {
		return fmt.Errorf("ошибка при создании заявки на регистрацию: %w", err)
	}

	return nil
}

// Claim - единственный DELETE ... RETURNING: заявка либо достаётся
// вызывающему целиком, либо никому. Просроченная заявка неотличима
// от несуществующей.
func (r *otpRepository) Claim(ctx context.Context, email, otp string) (*models.PendingRegistration, error) {
	var pending models.PendingRegistration

	query := `
		DELETE FROM pending_registrations
		WHERE email = $1 AND otp = $2 AND expires_at > CURRENT_TIMESTAMP
		RETURNING *
	`

	err := r.db.GetContext(ctx, &pending, query, email, otp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidOrExpiredOTP
		}
		return nil, fmt.Errorf("ошибка при поиске заявки: %w", err)
	}

	return &pending, nil
}
