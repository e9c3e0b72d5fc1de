package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// Customers returns the keyword-filterable view over the customers table,
// matching name, email, and phone.
func (s *Store) Customers() contractx.EntityRepository {
	return customerRepo{db: s.db}
}

func (s *Store) Products() contractx.EntityRepository {
	return productRepo{db: s.db}
}

func (s *Store) ContentItems() contractx.EntityRepository {
	return contentRepo{db: s.db}
}

func (s *Store) Orders() contractx.EntityRepository {
	return orderRepo{db: s.db}
}

// keywordFilter appends an OR group matching any keyword against any of the
// given columns, case-insensitively.
func keywordFilter(q *bun.SelectQuery, columns []string, keywords []string) *bun.SelectQuery {
	return q.WhereGroup(" AND ", func(group *bun.SelectQuery) *bun.SelectQuery {
		for _, kw := range keywords {
			pattern := "%" + kw + "%"
			for _, column := range columns {
				group = group.WhereOr(column+" ILIKE ?", pattern)
			}
		}
		return group
	})
}

type customerRepo struct {
	db *bun.DB
}

func (r customerRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]contractx.Entity, error) {
	var rows []customerRow
	q := r.db.NewSelect().Model(&rows)
	q = keywordFilter(q, []string{"name", "email", "phone"}, keywords)
	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, contractx.Entity{
			ID:    row.ID,
			Title: row.Name,
			Body:  row.Email,
			Fields: map[string]string{
				"email": row.Email,
				"phone": row.Phone,
			},
		})
	}
	return entities, nil
}

type productRepo struct {
	db *bun.DB
}

func (r productRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]contractx.Entity, error) {
	var rows []productRow
	q := r.db.NewSelect().Model(&rows)
	q = keywordFilter(q, []string{"title", "content", "description"}, keywords)
	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, contractx.Entity{
			ID:    row.ID,
			Title: row.Title,
			Body:  firstNonEmpty(row.Description, row.Content),
		})
	}
	return entities, nil
}

type contentRepo struct {
	db *bun.DB
}

func (r contentRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]contractx.Entity, error) {
	var rows []contentItemRow
	q := r.db.NewSelect().Model(&rows)
	q = keywordFilter(q, []string{"title", "content", "description"}, keywords)
	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search content items: %w", err)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, contractx.Entity{
			ID:    row.ID,
			Title: row.Title,
			Body:  firstNonEmpty(row.Description, row.Content),
		})
	}
	return entities, nil
}

type orderRepo struct {
	db *bun.DB
}

func (r orderRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]contractx.Entity, error) {
	var rows []orderRow
	q := r.db.NewSelect().Model(&rows)
	q = keywordFilter(q, []string{"order_number", "customer_name", "status"}, keywords)
	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, contractx.Entity{
			ID:    row.ID,
			Title: row.OrderNumber,
			Body:  fmt.Sprintf("%s (%s)", row.CustomerName, row.Status),
			Fields: map[string]string{
				"customer_name": row.CustomerName,
				"status":        row.Status,
			},
		})
	}
	return entities, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
