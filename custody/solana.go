package custody

import (
	"context"
	"fmt"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaCustody liquida valor on-chain: as contas dos participantes são
// endereços Solana (Base58) e o cofre é uma carteira cujos lamports lastreiam
// os pagamentos. Pay envia uma transferência do System Program assinada pelo
// cofre. Depósitos (Collect) são feitos pelo próprio participante direto ao
// endereço do cofre; aqui apenas verificamos que a conta declarada cobre o
// valor — a reconciliação fina de depósitos fica com um processo externo.
type SolanaCustody struct {
	RPCClient *rpc.Client
	Vault     solana.PrivateKey
}

// NewSolanaCustody conecta ao endpoint RPC e carrega a chave do cofre.
func NewSolanaCustody(rpcEndpoint, vaultKeyBase58 string) (*SolanaCustody, error) {
	vault, err := solana.PrivateKeyFromBase58(vaultKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar chave privada do cofre: %w", err)
	}
	return &SolanaCustody{
		RPCClient: rpc.New(rpcEndpoint),
		Vault:     vault,
	}, nil
}

// VaultAddress devolve o endereço público do cofre, para onde os
// participantes depositam.
func (c *SolanaCustody) VaultAddress() string {
	return c.Vault.PublicKey().String()
}

// Collect verifica que a conta de origem cobre o valor cobrado. O débito em
// si acontece no depósito do participante ao cofre, fora deste processo.
func (c *SolanaCustody) Collect(ctx context.Context, account string, amount int64) error {
	payer, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return fmt.Errorf("conta de origem inválida %q: %w", account, err)
	}
	resp, err := c.RPCClient.GetBalance(ctx, payer, rpc.CommitmentFinalized)
	if err != nil {
		return fmt.Errorf("falha ao consultar saldo de %s: %w", account, err)
	}
	if resp.Value < uint64(amount) {
		return fmt.Errorf("fundos insuficientes na conta %s: saldo %d, exigido %d", account, resp.Value, amount)
	}
	return nil
}

// Pay envia amount lamports do cofre para a conta de destino.
func (c *SolanaCustody) Pay(ctx context.Context, account string, amount int64) error {
	recipient, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return fmt.Errorf("conta de destino inválida %q: %w", account, err)
	}

	resp, err := c.RPCClient.GetRecentBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return fmt.Errorf("falha ao obter blockhash: %w", err)
	}

	transferInstruction := system.NewTransferInstruction(
		uint64(amount),
		c.Vault.PublicKey(),
		recipient,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		resp.Value.Blockhash,
		solana.TransactionPayer(c.Vault.PublicKey()),
	)
	if err != nil {
		return fmt.Errorf("falha ao criar transação de pagamento: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.Vault.PublicKey()) {
			return &c.Vault
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("falha ao assinar transação pelo cofre: %w", err)
	}

	txID, err := c.RPCClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return fmt.Errorf("falha ao enviar transação de pagamento: %w", err)
	}
	log.Printf("Pagamento de %d lamports enviado para %s: %s", amount, account, txID)

	// Confirmação é opcional aqui; falha na consulta não desfaz o envio.
	if _, err := c.RPCClient.GetSignatureStatuses(ctx, true, txID); err != nil {
		log.Printf("Erro ao verificar status da transação %s: %v", txID, err)
	}
	return nil
}
