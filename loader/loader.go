package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"pdv/auth"
	"pdv/config"
	"pdv/database"
	"pdv/model"
	"pdv/parsers"
)

// InitDatabase applies the schema and, on a fresh database, migrates the
// legacy CSV tables and notes file from the data directory. Corrupt legacy
// files are logged as corrupt and skipped; the table starts empty but the
// server still comes up.
func InitDatabase(db *sqlx.DB, cfg *config.Config, log *zap.SugaredLogger) error {
	if err := database.ApplySchema(db); err != nil {
		return err
	}

	if err := seedUsers(db, cfg, log); err != nil {
		return err
	}
	if err := migrateStock(db, cfg, log); err != nil {
		return err
	}
	if err := migrateSales(db, cfg, log); err != nil {
		return err
	}
	if err := migrateNotes(db, cfg, log); err != nil {
		return err
	}
	return nil
}

// seedUsers fills an empty user table from the legacy usuarios.csv, hashing
// the plaintext passwords it carried, or seeds the two default accounts.
func seedUsers(db *sqlx.DB, cfg *config.Config, log *zap.SugaredLogger) error {
	n, err := database.CountUsers(db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	path := filepath.Join(cfg.DataDir, "usuarios.csv")
	legacy, ok := parseLegacyUsers(path, cfg.LegacyEncoding, log)
	if ok && len(legacy) > 0 {
		for _, lu := range legacy {
			hash, err := auth.HashPassword(lu.Senha)
			if err != nil {
				return fmt.Errorf("failed to hash password for %q: %w", lu.Usuario, err)
			}
			u := model.User{Usuario: lu.Usuario, SenhaHash: hash, Role: lu.Role, NomeExibicao: lu.NomeExibicao}
			if err := database.InsertUser(db, u); err != nil {
				return err
			}
		}
		log.Infow("migrated legacy users", "count", len(legacy))
		return nil
	}

	defaults := []struct {
		usuario, senha, role, nome string
	}{
		{"admin", "1234", model.RoleAdmin, "Administrador"},
		{"xuxu", "1111", model.RoleCollaborator, "Xuxu"},
	}
	for _, d := range defaults {
		hash, err := auth.HashPassword(d.senha)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		u := model.User{Usuario: d.usuario, SenhaHash: hash, Role: d.role, NomeExibicao: d.nome}
		if err := database.InsertUser(db, u); err != nil {
			return err
		}
	}
	log.Infow("seeded default users", "count", len(defaults))
	return nil
}

func parseLegacyUsers(path, encoding string, log *zap.SugaredLogger) ([]parsers.ParsedUser, bool) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("cannot open legacy user table", "path", path, "error", err)
		}
		return nil, false
	}
	defer f.Close()

	users, err := parsers.ParseUsersCSV(parsers.DecodeReader(f, encoding))
	if err != nil {
		logLegacyParseError(log, path, err)
		return nil, false
	}
	return users, true
}

func migrateStock(db *sqlx.DB, cfg *config.Config, log *zap.SugaredLogger) error {
	existing, err := database.ListStock(db)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	path := filepath.Join(cfg.DataDir, "estoque.csv")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("cannot open legacy stock table", "path", path, "error", err)
		}
		return nil
	}
	defer f.Close()

	items, err := parsers.ParseStockCSV(parsers.DecodeReader(f, cfg.LegacyEncoding))
	if err != nil {
		logLegacyParseError(log, path, err)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	if err := database.ReplaceAllStock(db, items); err != nil {
		return err
	}
	log.Infow("migrated legacy stock table", "rows", len(items))
	return nil
}

func migrateSales(db *sqlx.DB, cfg *config.Config, log *zap.SugaredLogger) error {
	n, err := database.CountSales(db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	path := filepath.Join(cfg.DataDir, "vendas.csv")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("cannot open legacy sales table", "path", path, "error", err)
		}
		return nil
	}
	defer f.Close()

	sales, err := parsers.ParseSalesCSV(parsers.DecodeReader(f, cfg.LegacyEncoding))
	if err != nil {
		logLegacyParseError(log, path, err)
		return nil
	}
	for _, rec := range sales {
		if err := database.InsertSaleRecord(db, rec); err != nil {
			return err
		}
	}
	if len(sales) > 0 {
		log.Infow("migrated legacy sales table", "rows", len(sales))
	}
	return nil
}

func migrateNotes(db *sqlx.DB, cfg *config.Config, log *zap.SugaredLogger) error {
	texto, err := database.GetFinanceNotes(db)
	if err != nil {
		return err
	}
	if texto != "" {
		return nil
	}

	path := filepath.Join(cfg.DataDir, "financeiro.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("cannot read legacy notes file", "path", path, "error", err)
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := database.SaveFinanceNotes(db, string(data)); err != nil {
		return err
	}
	log.Infow("migrated legacy finance notes", "bytes", len(data))
	return nil
}

// logLegacyParseError separates "failed to parse" from "legitimately empty";
// the old tool silently pretended corrupt tables were empty.
func logLegacyParseError(log *zap.SugaredLogger, path string, err error) {
	var corrupt *parsers.CorruptError
	if errors.As(err, &corrupt) {
		log.Errorw("legacy table is corrupt, starting with an empty ledger", "path", path, "error", err)
		return
	}
	log.Warnw("legacy table could not be read", "path", path, "error", err)
}
