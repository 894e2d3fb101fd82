package auth

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"pdv/database"
	"pdv/model"
)

// ErrInvalidCredentials covers both unknown usernames and bad passwords so
// the response does not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash keeps the bcrypt comparison on the unknown-username path so both
// failure paths take comparable time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("pdv-no-such-user"), bcrypt.DefaultCost)

// HashPassword derives the stored credential form.
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate checks the credentials against the user table and returns the
// matching user. bcrypt's comparison is constant-time.
func Authenticate(db *sqlx.DB, usuario, senha string) (model.User, error) {
	u, err := database.GetUserByUsername(db, usuario)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(senha))
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(senha)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}
