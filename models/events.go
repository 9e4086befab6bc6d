package models

import "time"

// Tópicos publicados no barramento de eventos. Entrega é melhor esforço:
// o ledger nunca depende de confirmação do sink de observabilidade.
const (
	TopicAssetCreated        = "asset:created"
	TopicFractionPurchased   = "fraction:purchased"
	TopicFractionSold        = "fraction:sold"
	TopicFractionTransferred = "fraction:transferred"
)

// AssetCreatedEvent é emitido quando o criador registra um novo ativo.
type AssetCreatedEvent struct {
	EventID        string    `json:"event_id"`
	AssetID        uint64    `json:"asset_id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Value          int64     `json:"value"`
	TotalFractions int64     `json:"total_fractions"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FractionEvent é emitido em compras, vendas e transferências de frações.
// Em compras, Counterparty é o comprador; em vendas, o vendedor; em
// transferências, From/Counterparty são remetente e destinatário.
type FractionEvent struct {
	EventID      string    `json:"event_id"`
	AssetID      uint64    `json:"asset_id"`
	From         string    `json:"from,omitempty"`
	Counterparty string    `json:"counterparty"`
	Count        int64     `json:"count"`
	Amount       int64     `json:"amount"` // Valor liquidado, na menor denominação
	OccurredAt   time.Time `json:"occurred_at"`
}
