package postgres

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haccp/internal/domain"
)

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestDeleteResult(t *testing.T) {
	fkErr := fmt.Errorf("exec: %w", &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "form_instances_market_id_fkey"})
	boom := errors.New("connection reset")

	tests := []struct {
		name    string
		result  fakeResult
		err     error
		wantErr error
	}{
		{"deleted", 1, nil, nil},
		{"missing", 0, nil, domain.ErrNotFound},
		{"referenced", 0, fkErr, domain.ErrMarketReferenced},
		{"other failure", 0, boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := deleteResult(tt.result, tt.err, domain.ErrMarketReferenced, "marketRepo.Delete")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteResult_UniqueViolationIsNotReferenced(t *testing.T) {
	err := deleteResult(fakeResult(0), &pgconn.PgError{Code: uniqueViolation}, domain.ErrFormReferenced, "formDefinitionRepo.Delete")

	assert.NotErrorIs(t, err, domain.ErrFormReferenced)
	assert.Contains(t, err.Error(), "formDefinitionRepo.Delete")
}

// Deleting a market or form must never remove or orphan documentation.
func TestSchema_HistoryForeignKeysDoNotCascade(t *testing.T) {
	raw, err := os.ReadFile("../../../db/migrations/000001_init.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	tests := []struct {
		name  string
		table string
		fk    string
	}{
		{"staff home market", "staff_profiles", `market_id\s+UUID REFERENCES markets\(id\)`},
		{"instance form", "form_instances", `form_definition_id\s+UUID NOT NULL REFERENCES form_definitions\(id\)`},
		{"instance market", "form_instances", `market_id\s+UUID NOT NULL REFERENCES markets\(id\)`},
		{"entry instance", "form_entries", `form_instance_id\s+UUID NOT NULL REFERENCES form_instances\(id\)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tableBody(t, schema, tt.table)
			line := regexp.MustCompile(tt.fk + `[^\n]*`).FindString(body)
			require.NotEmpty(t, line)
			assert.NotContains(t, line, "ON DELETE")
		})
	}
}

func tableBody(t *testing.T, schema, table string) string {
	t.Helper()
	m := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\n\);`).FindStringSubmatch(schema)
	require.Len(t, m, 2, "table %s", table)
	return m[1]
}
