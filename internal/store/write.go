package store

import (
	"context"
	"fmt"
)

// SaveDataset stores a named dataset, replacing any existing dataset
// with the same canonical name. The write is transactional: readers
// never observe a half-replaced dataset.
func (s *Store) SaveDataset(ctx context.Context, name string, values []int64) error {
	name = CanonicalName(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO datasets (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	datasetID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO elements (dataset_id, pos, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	defer insert.Close()

	for pos, value := range values {
		if _, err := insert.ExecContext(ctx, datasetID, pos, value); err != nil {
			return fmt.Errorf("save dataset %q element %d: %w", name, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	return nil
}

// DeleteDataset removes a dataset and its elements.
// Deleting a missing dataset is not an error.
func (s *Store) DeleteDataset(ctx context.Context, name string) error {
	name = CanonicalName(name)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete dataset %q: %w", name, err)
	}
	return nil
}
