package store

import (
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

func newMockDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return newDB(conn, driver, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// prefixArg matches a string argument starting with prefix.
type prefixArg string

func (p prefixArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, string(p))
}
