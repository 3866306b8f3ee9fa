package gateway

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQL(t *testing.T, dialect Dialect) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gw := NewSQL(db, dialect, WithJSONColumns(map[string][]string{"meetings": {"attendance"}}))
	return gw, mock
}

func TestSQLSelectPostgres(t *testing.T) {
	gw, mock := newMockSQL(t, Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "expenses" WHERE "category" = $1 ORDER BY "year" DESC, "month" DESC`)).
		WithArgs("General").
		WillReturnRows(sqlmock.NewRows([]string{"id", "year", "month"}).
			AddRow(int64(1), int64(2024), int64(3)))

	rows, err := gw.Select(context.Background(), From("expenses").
		Where(Eq("category", "General")).
		OrderBy(Desc("year"), Desc("month")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2024), rows[0]["year"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSelectColumns(t *testing.T) {
	gw, mock := newMockSQL(t, SQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "shift_schedules" WHERE "start_date" = ?`)).
		WithArgs("2024-06-03").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := gw.Select(context.Background(), From("shift_schedules").
		Select("id").
		Where(Eq("start_date", "2024-06-03")))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLEqFold(t *testing.T) {
	t.Run("postgres uses ILIKE", func(t *testing.T) {
		gw, mock := newMockSQL(t, Postgres)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "email" ILIKE $1`)).
			WithArgs(`a\_b@example.com`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := gw.Select(context.Background(), From("users").Where(EqFold("email", "a_b@example.com")))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlite lowers both sides", func(t *testing.T) {
		gw, mock := newMockSQL(t, SQLite)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE LOWER("email") LIKE LOWER(?) ESCAPE '\'`)).
			WithArgs(`100\%@example.com`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := gw.Select(context.Background(), From("users").Where(EqFold("email", "100%@example.com")))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLInsertEncodesJSON(t *testing.T) {
	gw, mock := newMockSQL(t, Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO "meetings" ("attendance", "name") VALUES ($1, $2) RETURNING *`)).
		WithArgs(`{"12":true}`, "Asamblea").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "attendance"}).
			AddRow(int64(3), "Asamblea", []byte(`{"12":true}`)))

	rows, err := gw.Insert(context.Background(), "meetings", Row{
		"name":       "Asamblea",
		"attendance": map[string]any{"12": true},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{"12": true}, rows[0]["attendance"])
	assert.Equal(t, "Asamblea", rows[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLInsertEmptyRow(t *testing.T) {
	gw, mock := newMockSQL(t, SQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "expenses" DEFAULT VALUES RETURNING *`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rows, err := gw.Insert(context.Background(), "expenses", Row{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpdate(t *testing.T) {
	gw, mock := newMockSQL(t, Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE "houses" SET "owner_name" = $1, "phone" = $2 WHERE "id" = $3 RETURNING *`)).
		WithArgs("Ana", "222", "7").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := gw.Update(context.Background(), "houses",
		Row{"phone": "222", "owner_name": "Ana"}, Eq("id", "7"))
	require.NoError(t, err)
	assert.Empty(t, rows, "zero matches is not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpdateNothingToSet(t *testing.T) {
	gw, mock := newMockSQL(t, Postgres)

	rows, err := gw.Update(context.Background(), "houses", Row{}, Eq("id", "7"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDelete(t *testing.T) {
	gw, mock := newMockSQL(t, Postgres)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "payments" WHERE "id" = $1`)).
		WithArgs("9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := gw.Delete(context.Background(), "payments", Eq("id", "9"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRejectsBadIdentifiers(t *testing.T) {
	gw, mock := newMockSQL(t, SQLite)
	ctx := context.Background()

	_, err := gw.Insert(ctx, "houses", Row{"owner_name) VALUES ('x'); --": "y"})
	assert.Error(t, err)
	_, err = gw.Update(ctx, "houses", Row{"phone": "1"}, Eq("id = 1 OR 1", 1))
	assert.Error(t, err)
	assert.Error(t, gw.Delete(ctx, "houses;", Eq("id", 1)))
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement may reach the database")
}

func TestDecodeValue(t *testing.T) {
	assert.Equal(t, "abc", decodeValue([]byte("abc"), false))
	assert.Equal(t, []any{float64(1), float64(2)}, decodeValue("[1,2]", true))
	assert.Nil(t, decodeValue("", true))
	assert.Equal(t, "not json", decodeValue("not json", true))
	assert.Equal(t, int64(5), decodeValue(int64(5), true))
}
