package services

import "github.com/ferreirogomes/cotinha/models"

// Store persiste o estado durável do ledger. A implementação de produção é
// storage.DB (PostgreSQL); testes usam NopStore ou um mock.
type Store interface {
	SaveAsset(asset models.Asset) error
	UpdateAvailableFractions(assetID uint64, available int64) error
	// UpsertBalance grava o saldo de um detentor. Saldo zero remove a linha:
	// ausência significa zero, registros zerados não são materializados.
	UpsertBalance(assetID uint64, holder string, balance int64) error
	LoadAssets() ([]models.Asset, error)
	LoadBalances() ([]models.HolderBalance, error)
}

// Notifier publica eventos do ledger para o sink de observabilidade.
// Entrega é melhor esforço: o ledger nunca bloqueia nem falha por causa dela.
type Notifier interface {
	Publish(topic string, payload interface{})
}

// NopStore descarta todas as escritas. Útil quando a persistência fica a cargo
// de outro processo ou em testes de unidade.
type NopStore struct{}

func (NopStore) SaveAsset(models.Asset) error                  { return nil }
func (NopStore) UpdateAvailableFractions(uint64, int64) error  { return nil }
func (NopStore) UpsertBalance(uint64, string, int64) error     { return nil }
func (NopStore) LoadAssets() ([]models.Asset, error)           { return nil, nil }
func (NopStore) LoadBalances() ([]models.HolderBalance, error) { return nil, nil }

// NopNotifier descarta todos os eventos.
type NopNotifier struct{}

func (NopNotifier) Publish(string, interface{}) {}
