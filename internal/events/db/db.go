package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventmatch/internal/events"
	"eventmatch/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// Migrate creates the events table if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.Bun.NewCreateTable().
		Model((*EventRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored dataset for list in one transaction.
func (d *DB) ReplaceAll(ctx context.Context, list []models.Event) error {
	rows := make([]EventRow, 0, len(list))
	for i, e := range list {
		row, err := toRow(i, e)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
		rows = append(rows, row)
	}

	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*EventRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
		return nil
	})
}

func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	var rows []EventRow
	err := d.Bun.NewSelect().
		Model(&rows).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Event, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEvent()
		if err != nil {
			return nil, fmt.Errorf("decode event %s: %w", r.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var row EventRow
	err := d.Bun.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, events.ErrEventNotFound)
	}
	if err != nil {
		return nil, err
	}
	e, err := row.toEvent()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *DB) CountEvents(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*EventRow)(nil)).
		Count(ctx)
}

// EnsureSeeded writes seed when the table is empty and reports whether it did.
func (d *DB) EnsureSeeded(ctx context.Context, seed []models.Event) (bool, error) {
	count, err := d.CountEvents(ctx)
	if err != nil {
		return false, fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := d.ReplaceAll(ctx, seed); err != nil {
		return false, err
	}
	return true, nil
}
