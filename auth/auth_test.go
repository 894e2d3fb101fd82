package auth

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdv/database"
	"pdv/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := sqlx.MustOpen("sqlite3", ":memory:")
	db.SetMaxOpenConns(1)
	require.NoError(t, database.ApplySchema(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, usuario, senha, role, nome string) {
	t.Helper()
	hash, err := HashPassword(senha)
	require.NoError(t, err)
	require.NoError(t, database.InsertUser(db, model.User{
		Usuario: usuario, SenhaHash: hash, Role: role, NomeExibicao: nome,
	}))
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "admin", "1234", model.RoleAdmin, "Administrador")

	u, err := Authenticate(db, "admin", "1234")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, "Administrador", u.NomeExibicao)

	_, err = Authenticate(db, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "nobody", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and bad password are indistinguishable")
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := NewSessionStore(time.Hour)

	sess := store.Create("xuxu", model.RoleCollaborator, "Xuxu")
	require.NotEmpty(t, sess.Token)

	got, ok := store.Get(sess.Token)
	require.True(t, ok)
	assert.Equal(t, "xuxu", got.Usuario)
	assert.Equal(t, model.RoleCollaborator, got.Role)

	store.Destroy(sess.Token)
	_, ok = store.Get(sess.Token)
	assert.False(t, ok)
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	sess := store.Create("admin", model.RoleAdmin, "Administrador")

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, ok := store.Get(sess.Token)
	assert.False(t, ok, "expired sessions are rejected and removed")
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	store := NewSessionStore(time.Hour)
	a := store.Create("admin", model.RoleAdmin, "Administrador")
	b := store.Create("admin", model.RoleAdmin, "Administrador")
	assert.NotEqual(t, a.Token, b.Token)
}
