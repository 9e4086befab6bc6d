package config

import (
	"log"
	"os"

	"github.com/ferreirogomes/cotinha/services"

	"github.com/joho/godotenv"
)

// Config reúne a configuração do processo, carregada de variáveis de
// ambiente (com .env opcional via godotenv).
type Config struct {
	HTTPPort    string
	DatabaseURL string
	// CreatorID é a única identidade autorizada a registrar ativos.
	CreatorID string
	// TransferPayout define o beneficiário da liquidação em transferências:
	// "creator" (comportamento observado no contrato original), "sender" ou "none".
	TransferPayout services.TransferPayoutPolicy
	// CustodyBackend: "memory" ou "solana".
	CustodyBackend string
	SolanaRPCURL   string
	SolanaVaultKey string
}

// Load carrega a configuração. Um arquivo .env ausente não é erro.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente.")
	}

	cfg := Config{
		HTTPPort:       getenv("HTTP_PORT", "8080"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		CreatorID:      getenv("CREATOR_ID", ""),
		TransferPayout: services.TransferPayoutPolicy(getenv("TRANSFER_PAYOUT", string(services.PayoutCreator))),
		CustodyBackend: getenv("CUSTODY_BACKEND", "memory"),
		SolanaRPCURL:   getenv("SOLANA_RPC_URL", "https://api.devnet.solana.com"),
		SolanaVaultKey: getenv("SOLANA_VAULT_PRIVATE_KEY", ""),
	}

	if cfg.CreatorID == "" {
		log.Fatal("CREATOR_ID é obrigatório: identidade privilegiada de criação de ativos")
	}
	if !cfg.TransferPayout.Valid() {
		log.Fatalf("TRANSFER_PAYOUT inválido: %q (esperado creator, sender ou none)", cfg.TransferPayout)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
