package services

import (
	"context"
	"fmt"
	"log"
)

// CustodyProvider é o colaborador externo que guarda o valor dos participantes.
// Collect debita a conta de origem para o cofre; Pay credita a conta de destino
// a partir do cofre. Um Pay rejeitado não pode deixar débito parcial.
type CustodyProvider interface {
	Collect(ctx context.Context, account string, amount int64) error
	Pay(ctx context.Context, account string, amount int64) error
}

// SettlementEngine movimenta valor junto com as mutações do ledger. Toda
// rejeição do provedor de custódia vira ErrTransferFailed, e a mutação do
// ledger que a acompanha não é aplicada (acoplamento transacional, ver Move).
type SettlementEngine struct {
	custody CustodyProvider
}

// NewSettlementEngine cria o motor de liquidação sobre o provedor dado.
func NewSettlementEngine(custody CustodyProvider) *SettlementEngine {
	return &SettlementEngine{custody: custody}
}

// Collect debita amount da conta from. Valores negativos são rejeitados;
// valor zero é um no-op (preço por fração pode arredondar para zero).
func (e *SettlementEngine) Collect(ctx context.Context, from string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: valor de cobrança negativo: %d", ErrInvalidArgument, amount)
	}
	if amount == 0 {
		return nil
	}
	if err := e.custody.Collect(ctx, from, amount); err != nil {
		return fmt.Errorf("%w: cobrança de %s: %v", ErrTransferFailed, from, err)
	}
	return nil
}

// Pay credita amount na conta to.
func (e *SettlementEngine) Pay(ctx context.Context, to string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: valor de pagamento negativo: %d", ErrInvalidArgument, amount)
	}
	if amount == 0 {
		return nil
	}
	if err := e.custody.Pay(ctx, to, amount); err != nil {
		return fmt.Errorf("%w: pagamento a %s: %v", ErrTransferFailed, to, err)
	}
	return nil
}

// Move liquida de from para to como uma unidade: cobra e então paga. Se o
// pagamento falhar depois da cobrança, devolve o valor cobrado (ação
// compensatória), de modo que nenhuma liquidação parcial fique observável.
func (e *SettlementEngine) Move(ctx context.Context, from, to string, amount int64) error {
	if err := e.Collect(ctx, from, amount); err != nil {
		return err
	}
	if err := e.Pay(ctx, to, amount); err != nil {
		if refundErr := e.custody.Pay(ctx, from, amount); refundErr != nil {
			// O cofre reteve valor que já não corresponde a nenhuma mutação
			// do ledger; exige reconciliação manual.
			log.Printf("ERRO: falha ao devolver %d para %s após pagamento rejeitado: %v", amount, from, refundErr)
		}
		return err
	}
	return nil
}
