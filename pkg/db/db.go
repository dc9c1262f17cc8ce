package db

import (
	"context"
	"fmt"

	"github.com/provida/volunteer-portal/pkg/sheetssql"
)

// DB keeps the sign-up log in a SheetsSQL spreadsheet
type DB struct {
	ssql *sheetssql.DB
}

// Schema returns the SheetsSQL schema of the log spreadsheet
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(SignupRecord{})
}

// NewDB opens the log spreadsheet, creating its tables on first use
func NewDB(client sheetssql.SheetsClient, spreadsheetID string) (*DB, error) {
	schema, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(client, spreadsheetID, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheetssql database: %w", err)
	}

	return &DB{ssql: ssql}, nil
}

// InsertSignup appends a sign-up record
func (db *DB) InsertSignup(ctx context.Context, record *SignupRecord) error {
	if err := sheetssql.InsertModel(db.ssql, *record); err != nil {
		return fmt.Errorf("failed to insert sign-up: %w", err)
	}
	return nil
}

// GetSignups returns every sign-up record in insertion order
func (db *DB) GetSignups(ctx context.Context) ([]SignupRecord, error) {
	records, err := sheetssql.GetTableAs[SignupRecord](db.ssql)
	if err != nil {
		return nil, fmt.Errorf("failed to get sign-ups: %w", err)
	}
	return records, nil
}
