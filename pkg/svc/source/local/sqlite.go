package local

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const configTable = "core_config_data"

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// SQLiteSource reads core_config_data from an SQLite database.
type SQLiteSource struct {
	path        string
	tablePrefix string
}

// NewSQLiteSource creates a source reading <tablePrefix>core_config_data from
// the database at path.
func NewSQLiteSource(path, tablePrefix string) *SQLiteSource {
	return &SQLiteSource{path: path, tablePrefix: tablePrefix}
}

// Fetch queries every configuration row ordered by path.
func (s *SQLiteSource) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	if !tablePrefixPattern.MatchString(s.tablePrefix) {
		return nil, fmt.Errorf("%w: table prefix %q may only contain letters, digits and underscores",
			ErrInvalidOptions, s.tablePrefix)
	}

	_, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: database %q: %w", ErrInvalidOptions, s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", source.ErrTransport, err)
	}

	defer func() { _ = db.Close() }()

	query := "SELECT scope, scope_id, path, value FROM " + s.tablePrefix + configTable +
		" ORDER BY path ASC, scope ASC, scope_id ASC"

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s%s: %w", source.ErrTransport, s.tablePrefix, configTable, err)
	}

	defer func() { _ = rows.Close() }()

	builder := dataset.NewBuilder()

	for rows.Next() {
		var (
			scope   string
			scopeID int64
			path    string
			value   sql.NullString
		)

		err = rows.Scan(&scope, &scopeID, &path, &value)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", source.ErrDeserialization, err)
		}

		builder.Set(scope+"_"+strconv.FormatInt(scopeID, 10), path, value.String)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %w", source.ErrTransport, err)
	}

	return builder.Build(), nil
}
