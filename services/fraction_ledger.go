package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ferreirogomes/cotinha/models"

	"github.com/google/uuid"
)

// TransferPayoutPolicy define quem recebe a liquidação de uma transferência
// de frações. O comportamento observado no contrato original credita o
// criador do ativo — muito provavelmente um artefato de reuso do código de
// compra/venda, não uma regra de negócio intencional. Por isso o beneficiário
// é uma escolha explícita de configuração, não um default assumido.
type TransferPayoutPolicy string

const (
	// PayoutCreator paga o criador do ativo (comportamento observado, ver README).
	PayoutCreator TransferPayoutPolicy = "creator"
	// PayoutSender paga o remetente da transferência.
	PayoutSender TransferPayoutPolicy = "sender"
	// PayoutNone não movimenta valor em transferências.
	PayoutNone TransferPayoutPolicy = "none"
)

// Valid informa se a política é uma das três suportadas.
func (p TransferPayoutPolicy) Valid() bool {
	switch p {
	case PayoutCreator, PayoutSender, PayoutNone:
		return true
	}
	return false
}

// FractionLedger é o dono do estado de frações: o pool disponível de cada
// ativo e os saldos por (ativo, detentor). Toda mutação segura um único
// mutex durante validar→liquidar→confirmar, de modo que as operações são
// estritamente serializadas e nenhum estado intermediário fica observável.
type FractionLedger struct {
	mu         sync.Mutex
	registry   *AssetRegistry
	settlement *SettlementEngine
	store      Store
	notifier   Notifier
	payout     TransferPayoutPolicy

	// pools guarda as frações disponíveis por ativo. Ausência de entrada
	// significa que o pool nunca foi tocado: disponível == TotalFractions.
	pools map[uint64]int64
	// balances é esparso: saldo zero não é materializado.
	balances map[uint64]map[string]int64
}

// NewFractionLedger monta o ledger sobre o registro de ativos e o motor de
// liquidação dados. store e notifier podem ser nil (viram no-ops).
func NewFractionLedger(registry *AssetRegistry, settlement *SettlementEngine, store Store, notifier Notifier, payout TransferPayoutPolicy) *FractionLedger {
	if store == nil {
		store = NopStore{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if !payout.Valid() {
		payout = PayoutCreator
	}
	return &FractionLedger{
		registry:   registry,
		settlement: settlement,
		store:      store,
		notifier:   notifier,
		payout:     payout,
		pools:      make(map[uint64]int64),
		balances:   make(map[uint64]map[string]int64),
	}
}

// Restore recarrega pools e saldos a partir do estado durável. Deve ser
// chamado antes de o ledger ficar visível para chamadores concorrentes.
func (l *FractionLedger) Restore(assets []models.Asset, balances []models.HolderBalance) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range assets {
		l.pools[a.ID] = a.AvailableFractions
	}
	for _, b := range balances {
		if b.Balance <= 0 {
			continue
		}
		l.creditLocked(b.AssetID, b.Holder, b.Balance)
	}
}

// BuyFraction adquire count frações do pool do ativo para buyer, contra o
// pagamento anexado. Política de valor exato: payment deve ser exatamente
// count * preço por fração — sem troco, sem preenchimento parcial. O valor
// é roteado para a conta do criador do ativo.
func (l *FractionLedger) BuyFraction(ctx context.Context, assetID uint64, count, payment int64, buyer string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	asset, found := l.registry.Get(assetID)
	if !found {
		return fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	if count <= 0 {
		return fmt.Errorf("%w: contagem de frações deve ser positiva, recebido %d", ErrInvalidArgument, count)
	}
	if buyer == "" {
		return fmt.Errorf("%w: identidade do comprador é obrigatória", ErrInvalidArgument)
	}
	available := l.availableLocked(asset)
	if count > available {
		return fmt.Errorf("%w: pedido %d, disponível %d", ErrInsufficientPool, count, available)
	}
	required := count * asset.PricePerFraction()
	if payment != required {
		return fmt.Errorf("%w: anexado %d, exigido %d", ErrPaymentMismatch, payment, required)
	}

	// Liquida antes de confirmar: se a custódia rejeitar, nada muda no ledger.
	if err := l.settlement.Move(ctx, buyer, l.registry.Creator(), required); err != nil {
		return err
	}

	l.pools[assetID] = available - count
	l.creditLocked(assetID, buyer, count)
	l.persistLocked(assetID, buyer)

	l.notifier.Publish(models.TopicFractionPurchased, models.FractionEvent{
		EventID:      uuid.New().String(),
		AssetID:      assetID,
		Counterparty: buyer,
		Count:        count,
		Amount:       required,
		OccurredAt:   time.Now(),
	})
	return nil
}

// SellFraction devolve count frações de seller ao pool do ativo. O vendedor
// recebe count * preço por fração, sacado da conta do criador.
func (l *FractionLedger) SellFraction(ctx context.Context, assetID uint64, count int64, seller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	asset, found := l.registry.Get(assetID)
	if !found {
		return fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	if count <= 0 {
		return fmt.Errorf("%w: contagem de frações deve ser positiva, recebido %d", ErrInvalidArgument, count)
	}
	balance := l.balanceLocked(assetID, seller)
	if balance < count {
		return fmt.Errorf("%w: saldo %d, pedido %d", ErrInsufficientBalance, balance, count)
	}
	amount := count * asset.PricePerFraction()

	if err := l.settlement.Move(ctx, l.registry.Creator(), seller, amount); err != nil {
		return err
	}

	l.debitLocked(assetID, seller, count)
	l.pools[assetID] = l.availableLocked(asset) + count
	l.persistLocked(assetID, seller)

	l.notifier.Publish(models.TopicFractionSold, models.FractionEvent{
		EventID:      uuid.New().String(),
		AssetID:      assetID,
		Counterparty: seller,
		Count:        count,
		Amount:       amount,
		OccurredAt:   time.Now(),
	})
	return nil
}

// TransferFraction move count frações de from para newHolder, sem passar pelo
// pool. A liquidação segue a TransferPayoutPolicy configurada; com PayoutNone
// nenhum valor é movimentado.
func (l *FractionLedger) TransferFraction(ctx context.Context, assetID uint64, count int64, newHolder, from string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	asset, found := l.registry.Get(assetID)
	if !found {
		return fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	if count <= 0 {
		return fmt.Errorf("%w: contagem de frações deve ser positiva, recebido %d", ErrInvalidArgument, count)
	}
	if newHolder == "" {
		return fmt.Errorf("%w: identidade do destinatário é obrigatória", ErrInvalidArgument)
	}
	if newHolder == from {
		return fmt.Errorf("%w: autotransferência não permitida", ErrInvalidArgument)
	}
	balance := l.balanceLocked(assetID, from)
	if balance < count {
		return fmt.Errorf("%w: saldo %d, pedido %d", ErrInsufficientBalance, balance, count)
	}
	amount := count * asset.PricePerFraction()

	switch l.payout {
	case PayoutCreator:
		if err := l.settlement.Pay(ctx, l.registry.Creator(), amount); err != nil {
			return err
		}
	case PayoutSender:
		if err := l.settlement.Pay(ctx, from, amount); err != nil {
			return err
		}
	case PayoutNone:
		amount = 0
	}

	l.debitLocked(assetID, from, count)
	l.creditLocked(assetID, newHolder, count)
	l.persistLocked(assetID, from, newHolder)

	l.notifier.Publish(models.TopicFractionTransferred, models.FractionEvent{
		EventID:      uuid.New().String(),
		AssetID:      assetID,
		From:         from,
		Counterparty: newHolder,
		Count:        count,
		Amount:       amount,
		OccurredAt:   time.Now(),
	})
	return nil
}

// GetHolderBalance devolve o saldo de frações de holder no ativo. Saldo de
// detentor desconhecido é zero.
func (l *FractionLedger) GetHolderBalance(assetID uint64, holder string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.registry.AssetExists(assetID) {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	return l.balanceLocked(assetID, holder), nil
}

// AvailableFractions devolve as frações ainda no pool do ativo.
func (l *FractionLedger) AvailableFractions(assetID uint64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	asset, found := l.registry.Get(assetID)
	if !found {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	return l.availableLocked(asset), nil
}

// Holders devolve os saldos não-zero do ativo. Usado pela persistência e
// pelos testes de conservação.
func (l *FractionLedger) Holders(assetID uint64) map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int64, len(l.balances[assetID]))
	for holder, balance := range l.balances[assetID] {
		out[holder] = balance
	}
	return out
}

func (l *FractionLedger) availableLocked(asset models.Asset) int64 {
	if available, touched := l.pools[asset.ID]; touched {
		return available
	}
	return asset.TotalFractions
}

func (l *FractionLedger) balanceLocked(assetID uint64, holder string) int64 {
	return l.balances[assetID][holder]
}

func (l *FractionLedger) creditLocked(assetID uint64, holder string, count int64) {
	holders := l.balances[assetID]
	if holders == nil {
		holders = make(map[string]int64)
		l.balances[assetID] = holders
	}
	holders[holder] += count
}

func (l *FractionLedger) debitLocked(assetID uint64, holder string, count int64) {
	holders := l.balances[assetID]
	holders[holder] -= count
	if holders[holder] <= 0 {
		delete(holders, holder) // ausência significa zero
	}
}

// persistLocked grava pool e saldos alterados no estado durável. Falha de
// escrita não desfaz a mutação já confirmada: a durabilidade é garantida
// pelo host, aqui apenas registramos para reconciliação.
func (l *FractionLedger) persistLocked(assetID uint64, holders ...string) {
	asset, found := l.registry.Get(assetID)
	if !found {
		return
	}
	if err := l.store.UpdateAvailableFractions(assetID, l.availableLocked(asset)); err != nil {
		log.Printf("ERRO: falha ao persistir pool do ativo %d: %v", assetID, err)
	}
	for _, holder := range holders {
		if err := l.store.UpsertBalance(assetID, holder, l.balanceLocked(assetID, holder)); err != nil {
			log.Printf("ERRO: falha ao persistir saldo de %s no ativo %d: %v", holder, assetID, err)
		}
	}
}
