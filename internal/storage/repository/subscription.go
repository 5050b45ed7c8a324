package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subtrack/internal/models"
	"github.com/magabrotheeeer/subtrack/internal/storage"
)

const subscriptionColumns = `id, user_uid, name, description, url, logo, color,
			      cost, billing_cycle, category, start_date, next_billing_date,
			      status, service_id, created_at, updated_at`

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var item models.Subscription
	err := row.Scan(&item.ID, &item.UserUID, &item.Name, &item.Description, &item.URL,
		&item.Logo, &item.Color, &item.Cost, &item.BillingCycle, &item.Category,
		&item.StartDate, &item.NextBillingDate, &item.Status, &item.ServiceID,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateSubscription вставляет новую запись подписки и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, user_uid, name, description, url, logo, color,
			      cost, billing_cycle, category, start_date, next_billing_date,
			      status, service_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.ID, sub.UserUID, sub.Name, sub.Description, sub.URL, sub.Logo, sub.Color,
		sub.Cost, sub.BillingCycle, sub.Category, sub.StartDate, sub.NextBillingDate,
		sub.Status, sub.ServiceID, sub.CreatedAt, sub.UpdatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubscription возвращает подписку пользователя по её ID.
func (s *Storage) ReadSubscription(ctx context.Context, id, userUID string) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	result, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription перезаписывает данные подписки и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, description = $2, url = $3, logo = $4, color = $5,
			      cost = $6, billing_cycle = $7, category = $8, start_date = $9,
			      next_billing_date = $10, status = $11, service_id = $12, updated_at = $13
			  WHERE id = $14 AND user_uid = $15`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Name, sub.Description, sub.URL, sub.Logo, sub.Color,
		sub.Cost, sub.BillingCycle, sub.Category, sub.StartDate,
		sub.NextBillingDate, sub.Status, sub.ServiceID, sub.UpdatedAt,
		sub.ID, sub.UserUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscription удаляет подписку пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions возвращает список подписок пользователя с пагинацией.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY next_billing_date, id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllByUser возвращает все подписки пользователя без пагинации,
// для расчёта сводной статистики.
func (s *Storage) ListAllByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListAllByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY next_billing_date, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRenewalsWithin находит активные подписки, продление которых наступает
// в ближайшие days дней (включая сегодня), вместе с данными владельца.
func (s *Storage) ListRenewalsWithin(ctx context.Context, days int) ([]*models.RenewalInfo, error) {
	const op = "storage.ListRenewalsWithin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.email,
			      u.username,
			      s.name,
			      s.cost,
			      s.next_billing_date
			  FROM subscriptions s
			  JOIN users u ON s.user_uid = u.uid
			  WHERE s.status = 'active'
			    AND s.next_billing_date >= CURRENT_DATE
			    AND s.next_billing_date <= CURRENT_DATE + ($1 || ' days')::INTERVAL
			  ORDER BY s.next_billing_date, s.id`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RenewalInfo
	for rows.Next() {
		var ri models.RenewalInfo
		if err = rows.Scan(&ri.Email, &ri.Username, &ri.Name,
			&ri.Cost, &ri.NextBillingDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
