package custody

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Movement é uma linha do histórico de movimentações do cofre.
type Movement struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"` // "collect" ou "pay"
	Account string    `json:"account"`
	Amount  int64     `json:"amount"`
	At      time.Time `json:"at"`
}

// MemoryCustody é um provedor de custódia em memória com um cofre
// conservativo: Collect move valor da conta do participante para o cofre,
// Pay move do cofre para a conta. A soma (contas + cofre) nunca muda, o que
// torna as falhas de liquidação determinísticas em teste — basta drenar o
// cofre ou a conta.
type MemoryCustody struct {
	mu       sync.Mutex
	accounts map[string]int64
	vault    int64
	history  []Movement
}

// NewMemoryCustody cria o provedor com todas as contas zeradas.
func NewMemoryCustody() *MemoryCustody {
	return &MemoryCustody{accounts: make(map[string]int64)}
}

// Deposit credita fundos na conta de um participante (aporte externo).
func (c *MemoryCustody) Deposit(account string, amount int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[account] += amount
}

// FundVault credita fundos diretamente no cofre (aporte externo).
func (c *MemoryCustody) FundVault(amount int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vault += amount
}

// Collect debita amount da conta para o cofre. Rejeita se a conta não cobre
// o valor; uma rejeição não altera saldo algum.
func (c *MemoryCustody) Collect(_ context.Context, account string, amount int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accounts[account] < amount {
		return fmt.Errorf("fundos insuficientes na conta %s: saldo %d, exigido %d", account, c.accounts[account], amount)
	}
	c.accounts[account] -= amount
	c.vault += amount
	c.record("collect", account, amount)
	return nil
}

// Pay credita amount na conta a partir do cofre. Rejeita se o cofre não
// cobre o valor.
func (c *MemoryCustody) Pay(_ context.Context, account string, amount int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vault < amount {
		return fmt.Errorf("fundos insuficientes no cofre: saldo %d, exigido %d", c.vault, amount)
	}
	c.vault -= amount
	c.accounts[account] += amount
	c.record("pay", account, amount)
	return nil
}

// Balance devolve o saldo da conta.
func (c *MemoryCustody) Balance(account string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accounts[account]
}

// VaultBalance devolve o saldo do cofre.
func (c *MemoryCustody) VaultBalance() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vault
}

// Movements devolve o histórico de movimentações, na ordem em que ocorreram.
func (c *MemoryCustody) Movements() []Movement {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Movement, len(c.history))
	copy(out, c.history)
	return out
}

func (c *MemoryCustody) record(kind, account string, amount int64) {
	c.history = append(c.history, Movement{
		ID:      uuid.New().String(),
		Kind:    kind,
		Account: account,
		Amount:  amount,
		At:      time.Now(),
	})
}
