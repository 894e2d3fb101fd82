package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pdv/model"
)

// ErrUserNotFound is returned for unknown usernames; callers should report
// it the same way as a bad password.
var ErrUserNotFound = errors.New("user not found")

func GetUserByUsername(db *sqlx.DB, usuario string) (model.User, error) {
	var u model.User
	err := db.Get(&u,
		"SELECT usuario, senha_hash, role, nome_exibicao FROM usuarios WHERE usuario = ?", usuario)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to look up user %q: %w", usuario, err)
	}
	return u, nil
}

func CountUsers(db *sqlx.DB) (int, error) {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM usuarios"); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func InsertUser(db *sqlx.DB, u model.User) error {
	_, err := db.Exec(
		"INSERT INTO usuarios (usuario, senha_hash, role, nome_exibicao) VALUES (?, ?, ?, ?)",
		u.Usuario, u.SenhaHash, u.Role, u.NomeExibicao)
	if err != nil {
		return fmt.Errorf("failed to insert user %q: %w", u.Usuario, err)
	}
	return nil
}
