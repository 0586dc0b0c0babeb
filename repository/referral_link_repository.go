package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// referralLinkRepository implements the ReferralLinkRepository interface
type referralLinkRepository struct {
	q Queryable
}

// NewReferralLinkRepository creates a new referral link repository bound to a queryable.
func NewReferralLinkRepository(q Queryable) interfaces.ReferralLinkRepository {
	return &referralLinkRepository{q: q}
}

func scanReferralLink(row pgx.Row) (*entities.ReferralLink, error) {
	var link entities.ReferralLink
	err := row.Scan(
		&link.ID,
		&link.ReferrerID,
		&link.ReferredID,
		&link.BonusCredited,
		&link.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create inserts a link. The referred_id unique constraint guarantees each
// user is referred at most once.
func (r *referralLinkRepository) Create(ctx context.Context, link *entities.ReferralLink) error {
	query := `
		INSERT INTO referral_links (referrer_id, referred_id, bonus_credited)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, link.ReferrerID, link.ReferredID, link.BonusCredited).
		Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create referral link for user %d: %w", link.ReferredID, err)
	}
	return nil
}

// GetByReferredID retrieves the link for a referred user
func (r *referralLinkRepository) GetByReferredID(ctx context.Context, referredID int64) (*entities.ReferralLink, error) {
	query := `
		SELECT id, referrer_id, referred_id, bonus_credited, created_at
		FROM referral_links
		WHERE referred_id = $1
	`

	link, err := scanReferralLink(r.q.QueryRow(ctx, query, referredID))
	if err != nil {
		return nil, fmt.Errorf("failed to get referral link for user %d: %w", referredID, err)
	}
	return link, nil
}

// GetByReferredIDForUpdate retrieves the link with a row lock
func (r *referralLinkRepository) GetByReferredIDForUpdate(ctx context.Context, referredID int64) (*entities.ReferralLink, error) {
	query := `
		SELECT id, referrer_id, referred_id, bonus_credited, created_at
		FROM referral_links
		WHERE referred_id = $1
		FOR UPDATE
	`

	link, err := scanReferralLink(r.q.QueryRow(ctx, query, referredID))
	if err != nil {
		return nil, fmt.Errorf("failed to get referral link for user %d for update: %w", referredID, err)
	}
	return link, nil
}

// MarkBonusCredited flips the bonus_credited flag
func (r *referralLinkRepository) MarkBonusCredited(ctx context.Context, linkID int64) error {
	query := `UPDATE referral_links SET bonus_credited = TRUE WHERE id = $1`

	result, err := r.q.Exec(ctx, query, linkID)
	if err != nil {
		return fmt.Errorf("failed to mark bonus credited for link %d: %w", linkID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("referral link %d not found", linkID)
	}
	return nil
}
