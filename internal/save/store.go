package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a slot has no saved record.
var ErrNotFound = errors.New("save: slot not found")

//go:generate mockgen -destination=mock/mock_store.go -package=savemock -source=store.go

// Store reads and writes records by slot name.
type Store interface {
	Save(ctx context.Context, slot string, rec *Record) error
	Load(ctx context.Context, slot string) (*Record, error)
	Delete(ctx context.Context, slot string) error
}

func validateSlot(slot string) error {
	if slot == "" {
		return errors.New("save: slot is required")
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return fmt.Errorf("save: invalid slot name %q", slot)
	}
	return nil
}

func encode(rec *Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize save record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Record, error) {
	rec := &Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to parse save record: %w", err)
	}
	return rec, nil
}
