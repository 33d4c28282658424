package leads

import (
	"context"
	"errors"
	"testing"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leadColumns = []string{"id", "name", "email", "phone", "leadsource", "createdat"}

func TestPostgresStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := newPostgresStoreWithDB(mock, "leads")
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, name, email, phone, leadsource, createdat\s+FROM "leads"\s+ORDER BY createdat DESC`).
		WillReturnRows(pgxmock.NewRows(leadColumns).
			AddRow("2", "alice", "alice@corp.io", "555", "Referral", base).
			AddRow("1", "Bob", "bob@example.com", "555", "Website", base.Add(-1)))
	leads, err := store.ListOrdered(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "Bob"}, names(leads))

	mock.ExpectQuery(`SELECT id FROM "leads" WHERE email = \$1 LIMIT 1`).
		WithArgs("bob@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("1"))
	id, found, err := store.FindIDByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", id)

	mock.ExpectQuery(`SELECT id FROM "leads" WHERE email`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, found, err = store.FindIDByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	form := validForm("Carol", "carol@example.com")
	mock.ExpectQuery(`INSERT INTO "leads" \(name, email, phone, leadsource\)`).
		WithArgs(form.Name, form.Email, form.Phone, form.LeadSource).
		WillReturnRows(pgxmock.NewRows(leadColumns).AddRow("3", form.Name, form.Email, form.Phone, form.LeadSource, base))
	lead, err := store.Insert(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "3", lead.ID)
	assert.Equal(t, base, lead.CreatedAt)

	mock.ExpectExec(`DELETE FROM "leads" WHERE id = \$1`).
		WithArgs("3").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, store.DeleteByID(ctx, "3"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := newPostgresStoreWithDB(mock, "")
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT id, name`).WillReturnError(boom)
	_, err = store.ListOrdered(ctx)
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(`SELECT id FROM`).WithArgs("a@b.co").WillReturnError(boom)
	_, _, err = store.FindIDByEmail(ctx, "a@b.co")
	assert.ErrorIs(t, err, boom)

	form := validForm("Ada", "a@b.co")
	mock.ExpectQuery(`INSERT INTO`).WithArgs(form.Name, form.Email, form.Phone, form.LeadSource).WillReturnError(boom)
	_, err = store.Insert(ctx, form)
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(`DELETE FROM`).WithArgs("x").WillReturnError(boom)
	err = store.DeleteByID(ctx, "x")
	assert.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
