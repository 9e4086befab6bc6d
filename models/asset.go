package models

import "time"

// Asset representa um bem divisível registrado no ledger.
// Os atributos descritivos são imutáveis após a criação; apenas
// AvailableFractions muda conforme frações entram e saem do pool.
type Asset struct {
	ID                 uint64    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Location           string    `db:"location" json:"location"`
	Value              int64     `db:"value" json:"value"`               // Valor declarado, na menor denominação de pagamento
	TotalFractions     int64     `db:"total_fractions" json:"total_fractions"`
	AvailableFractions int64     `db:"available_fractions" json:"available_fractions"` // Frações ainda no pool, não detidas por ninguém
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// PricePerFraction deriva o preço de uma fração por divisão inteira (piso).
// Todos os pontos de liquidação usam ESTA fórmula, nunca recalculam por conta
// própria, para evitar divergência de arredondamento.
func (a Asset) PricePerFraction() int64 {
	return a.Value / a.TotalFractions
}

// HolderBalance representa o saldo de frações de um participante em um ativo.
// Registros com saldo zero não são materializados: ausência significa zero.
type HolderBalance struct {
	AssetID uint64 `db:"asset_id" json:"asset_id"`
	Holder  string `db:"holder" json:"holder"`
	Balance int64  `db:"balance" json:"balance"`
}
