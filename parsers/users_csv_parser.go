package parsers

import (
	"encoding/csv"
	"errors"
	"io"
)

// ParsedUser is a row of the legacy usuarios table. The senha column is the
// plaintext password the old tool stored; the migration hashes it before it
// ever reaches the database.
type ParsedUser struct {
	Usuario      string
	Senha        string
	Role         string
	NomeExibicao string
}

func ParseUsersCSV(r io.Reader) ([]ParsedUser, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []ParsedUser{}, nil
	}
	if err != nil {
		return nil, &CorruptError{Err: err}
	}
	idx := columnIndex(header)

	users := []ParsedUser{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CorruptError{Err: err}
		}
		u := ParsedUser{
			Usuario:      field(rec, idx, "usuario"),
			Senha:        field(rec, idx, "senha"),
			Role:         field(rec, idx, "role"),
			NomeExibicao: field(rec, idx, "nome_exibicao"),
		}
		if u.Usuario == "" {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}
