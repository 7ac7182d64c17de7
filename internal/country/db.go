package country

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// DefaultAliasTable is the Postgres table holding extra aliases.
const DefaultAliasTable = "country_aliases"

// Querier is the read side of *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// aliasRow is one row of the alias table.
type aliasRow struct {
	Code  string
	Alias string
}

// LoadAliasesFromDB reads (code, alias) pairs from table and adds them to t.
// It returns the number of aliases added; rows with a malformed code are
// logged and skipped.
func LoadAliasesFromDB(ctx context.Context, db Querier, table string, t *Table) (int, error) {
	if table == "" {
		table = DefaultAliasTable
	}

	query, args, err := sq.Select("code", "alias").
		From(table).
		OrderBy("code", "alias").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build alias query: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", table, err)
	}

	aliases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (aliasRow, error) {
		var a aliasRow
		err := row.Scan(&a.Code, &a.Alias)
		return a, err
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", table, err)
	}

	added := 0
	for _, a := range aliases {
		if !t.AddAlias(a.Code, a.Alias) {
			slog.Warn("country alias skipped", "table", table, "code", a.Code, "alias", a.Alias)
			continue
		}
		added++
	}
	return added, nil
}
