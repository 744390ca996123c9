package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
)

// ErrDatasetNotFound is returned when a named dataset does not exist.
var ErrDatasetNotFound = errors.New("dataset not found")

// Stream returns a lazy iterator over a dataset's elements in
// position order, plus a deferred error check.
//
// The row cursor opens on first pull, not at call time, and an early
// break from the consuming loop closes it without pulling further
// rows. Call the returned error function after the loop; it reports
// a missing dataset, scan failures, and cursor errors.
func (s *Store) Stream(ctx context.Context, name string) (iter.Seq[int64], func() error) {
	name = CanonicalName(name)
	var streamErr error

	values := func(yield func(int64) bool) {
		id, err := s.datasetID(ctx, name)
		if err != nil {
			streamErr = err
			return
		}

		rows, err := s.db.QueryContext(ctx, `
			SELECT value FROM elements
			WHERE dataset_id = ?
			ORDER BY pos ASC
		`, id)
		if err != nil {
			streamErr = fmt.Errorf("stream dataset %q: %w", name, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var v int64
			if err := rows.Scan(&v); err != nil {
				streamErr = fmt.Errorf("stream dataset %q: %w", name, err)
				return
			}
			if !yield(v) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			streamErr = fmt.Errorf("stream dataset %q: %w", name, err)
		}
	}

	return values, func() error { return streamErr }
}

// Count returns the number of elements in a dataset.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	name = CanonicalName(name)
	id, err := s.datasetID(ctx, name)
	if err != nil {
		return 0, err
	}

	var n int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elements WHERE dataset_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dataset %q: %w", name, err)
	}
	return n, nil
}

// Names returns all dataset names in lexical order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM datasets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list datasets: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return names, nil
}

func (s *Store) datasetID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM datasets WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup dataset %q: %w", name, err)
	}
	return id, nil
}
