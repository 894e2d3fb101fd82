package model

import "github.com/shopspring/decimal"

const (
	RoleAdmin        = "admin"
	RoleCollaborator = "colaborador"
)

// TimestampLayout is the wall-clock format persisted with each sale.
const TimestampLayout = "2006-01-02 15:04:05"

type StockItem struct {
	ID         int             `db:"id" json:"id"`
	Item       string          `db:"item" json:"item"`
	Quantidade int             `db:"quantidade" json:"quantidade"`
	Local      string          `db:"local" json:"local"`
	PrecoUnit  decimal.Decimal `db:"preco_unit" json:"precoUnit"`
	Notas      string          `db:"notas" json:"notas"`
}

// SaleRecord is immutable once written: item name, unit price and total are
// snapshots taken at sale time and are never synced with later stock edits.
type SaleRecord struct {
	ID         int             `db:"id" json:"id"`
	Timestamp  string          `db:"timestamp" json:"timestamp"`
	Item       string          `db:"item" json:"item"`
	Quantidade int             `db:"quantidade" json:"quantidade"`
	PrecoUnit  decimal.Decimal `db:"preco_unit" json:"precoUnit"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Comprador  string          `db:"comprador" json:"comprador"`
	Notas      string          `db:"notas" json:"notas"`
}

type User struct {
	Usuario      string `db:"usuario" json:"usuario"`
	SenhaHash    string `db:"senha_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	NomeExibicao string `db:"nome_exibicao" json:"nomeExibicao"`
}

// StockMetrics backs the summary cards of the inventory view.
type StockMetrics struct {
	TotalQuantity int    `json:"totalQuantity"`
	TotalValue    string `json:"totalValue"`
	RefreshedAt   string `json:"refreshedAt"`
}
