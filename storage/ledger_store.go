package storage

import (
	"fmt"

	"github.com/ferreirogomes/cotinha/models"
)

// Os métodos abaixo implementam services.Store: o layout durável mínimo é
// uma linha por ativo (com o pool corrente) e uma linha por saldo não-zero
// de (ativo, detentor). Tudo inteiro, round-trip exato.

// SaveAsset grava um ativo recém-criado. Ativos são imutáveis exceto o pool,
// então conflitos de id são ignorados.
func (d *DB) SaveAsset(asset models.Asset) error {
	query := `INSERT INTO assets (id, name, location, value, total_fractions, available_fractions, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO NOTHING`
	_, err := d.Exec(query, asset.ID, asset.Name, asset.Location, asset.Value,
		asset.TotalFractions, asset.AvailableFractions, asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("falha ao salvar ativo %d: %w", asset.ID, err)
	}
	return nil
}

// UpdateAvailableFractions grava o pool corrente do ativo.
func (d *DB) UpdateAvailableFractions(assetID uint64, available int64) error {
	query := `UPDATE assets SET available_fractions = $1 WHERE id = $2`
	_, err := d.Exec(query, available, assetID)
	if err != nil {
		return fmt.Errorf("falha ao atualizar pool do ativo %d: %w", assetID, err)
	}
	return nil
}

// UpsertBalance grava o saldo de um detentor. Saldo zero remove a linha:
// ausência significa zero.
func (d *DB) UpsertBalance(assetID uint64, holder string, balance int64) error {
	if balance == 0 {
		query := `DELETE FROM holder_balances WHERE asset_id = $1 AND holder = $2`
		if _, err := d.Exec(query, assetID, holder); err != nil {
			return fmt.Errorf("falha ao remover saldo zerado de %s no ativo %d: %w", holder, assetID, err)
		}
		return nil
	}
	query := `INSERT INTO holder_balances (asset_id, holder, balance)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (asset_id, holder) DO UPDATE SET balance = EXCLUDED.balance`
	if _, err := d.Exec(query, assetID, holder, balance); err != nil {
		return fmt.Errorf("falha ao gravar saldo de %s no ativo %d: %w", holder, assetID, err)
	}
	return nil
}

// LoadAssets carrega todos os ativos em ordem de criação.
func (d *DB) LoadAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := d.Select(&assets, `SELECT * FROM assets ORDER BY id`); err != nil {
		return nil, fmt.Errorf("falha ao carregar ativos: %w", err)
	}
	return assets, nil
}

// LoadBalances carrega todos os saldos não-zero.
func (d *DB) LoadBalances() ([]models.HolderBalance, error) {
	var balances []models.HolderBalance
	if err := d.Select(&balances, `SELECT asset_id, holder, balance FROM holder_balances`); err != nil {
		return nil, fmt.Errorf("falha ao carregar saldos: %w", err)
	}
	return balances, nil
}
