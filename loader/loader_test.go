package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pdv/auth"
	"pdv/config"
	"pdv/database"
	"pdv/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := sqlx.MustOpen("sqlite3", ":memory:")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Port:       "8080",
		DBPath:     ":memory:",
		DataDir:    dataDir,
		SessionTTL: time.Hour,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestInitDatabase_SeedsDefaultUsers(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, InitDatabase(db, testConfig(t.TempDir()), zap.NewNop().Sugar()))

	admin, err := database.GetUserByUsername(db, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrador", admin.NomeExibicao)
	assert.NotEqual(t, "1234", admin.SenhaHash, "passwords are never stored in plaintext")

	_, err = auth.Authenticate(db, "xuxu", "1111")
	require.NoError(t, err)
}

func TestInitDatabase_MigratesLegacyTables(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	writeFile(t, dir, "usuarios.csv",
		"usuario,senha,role,nome_exibicao\nchefe,segredo,admin,Chefe\n")
	writeFile(t, dir, "estoque.csv",
		"id,item,quantidade,local,preco_unit,notas\n1,Widget,10,estoque,5.00,\n2,Gadget,3,,0.99,\n")
	writeFile(t, dir, "vendas.csv",
		"id,timestamp,item,quantidade,preco_unit,total,comprador,notas\n1,2024-01-01 10:00:00,Widget,2,5.00,10.00,Ana,\n")
	writeFile(t, dir, "financeiro.txt", "caixa fechado em janeiro")

	require.NoError(t, InitDatabase(db, testConfig(dir), zap.NewNop().Sugar()))

	u, err := auth.Authenticate(db, "chefe", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Chefe", u.NomeExibicao)

	items, err := database.ListStock(db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Item)
	assert.Equal(t, 10, items[0].Quantidade)

	sales, err := database.ListSales(db)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Ana", sales[0].Comprador)

	texto, err := database.GetFinanceNotes(db)
	require.NoError(t, err)
	assert.Equal(t, "caixa fechado em janeiro", texto)
}

func TestInitDatabase_CorruptLegacyTableYieldsEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	writeFile(t, dir, "estoque.csv", "id,item\n1,Wid\"get\n")

	require.NoError(t, InitDatabase(db, testConfig(dir), zap.NewNop().Sugar()),
		"a corrupt legacy table must not prevent startup")

	items, err := database.ListStock(db)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInitDatabase_Idempotent(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	writeFile(t, dir, "estoque.csv",
		"id,item,quantidade,local,preco_unit,notas\n1,Widget,10,,5.00,\n")

	cfg := testConfig(dir)
	log := zap.NewNop().Sugar()
	require.NoError(t, InitDatabase(db, cfg, log))
	require.NoError(t, InitDatabase(db, cfg, log))

	items, err := database.ListStock(db)
	require.NoError(t, err)
	assert.Len(t, items, 1, "migration must not run twice")

	n, err := database.CountUsers(db)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
