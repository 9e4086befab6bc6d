package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/ferreirogomes/cotinha/config"
	"github.com/ferreirogomes/cotinha/custody"
	"github.com/ferreirogomes/cotinha/events"
	"github.com/ferreirogomes/cotinha/handlers"
	"github.com/ferreirogomes/cotinha/services"
	"github.com/ferreirogomes/cotinha/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.Load()

	// Persistência: PostgreSQL quando configurado, senão somente memória.
	var store services.Store = services.NopStore{}
	if cfg.DatabaseURL != "" {
		db, err := storage.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Falha fatal ao conectar ao banco de dados e aplicar migrações: %v", err)
		}
		defer db.Close()
		store = db
	} else {
		log.Println("DATABASE_URL não configurado; estado do ledger apenas em memória.")
	}

	// Provedor de custódia de valor.
	var custodyProvider services.CustodyProvider
	switch cfg.CustodyBackend {
	case "solana":
		solanaCustody, err := custody.NewSolanaCustody(cfg.SolanaRPCURL, cfg.SolanaVaultKey)
		if err != nil {
			log.Fatalf("Falha ao inicializar custódia Solana: %v", err)
		}
		log.Printf("Custódia Solana ativa; cofre: %s", solanaCustody.VaultAddress())
		custodyProvider = solanaCustody
	case "memory":
		custodyProvider = custody.NewMemoryCustody()
		log.Println("Custódia em memória ativa (desenvolvimento).")
	default:
		log.Fatalf("CUSTODY_BACKEND inválido: %q (esperado memory ou solana)", cfg.CustodyBackend)
	}

	notifier := events.NewNotifier()
	notifier.AttachLogger()

	registry := services.NewAssetRegistry(cfg.CreatorID, store, notifier)
	settlement := services.NewSettlementEngine(custodyProvider)
	ledger := services.NewFractionLedger(registry, settlement, store, notifier, cfg.TransferPayout)
	query := services.NewQueryService(registry, ledger)

	// Restaura o estado durável antes de aceitar chamadas.
	assets, err := store.LoadAssets()
	if err != nil {
		log.Fatalf("Falha ao carregar ativos persistidos: %v", err)
	}
	balances, err := store.LoadBalances()
	if err != nil {
		log.Fatalf("Falha ao carregar saldos persistidos: %v", err)
	}
	registry.Restore(assets)
	ledger.Restore(assets, balances)
	log.Printf("Estado restaurado: %d ativos, %d saldos.", len(assets), len(balances))

	assetHandler := handlers.NewAssetHandler(registry, query)
	fractionHandler := handlers.NewFractionHandler(ledger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", assetHandler.CreateAsset)
		r.Get("/", assetHandler.GetAssets)
		r.Get("/{id}", assetHandler.GetAssetByID)
		r.Post("/{id}/buy", fractionHandler.BuyFraction)
		r.Post("/{id}/sell", fractionHandler.SellFraction)
		r.Post("/{id}/transfer", fractionHandler.TransferFraction)
		r.Get("/{id}/holders/{holder}", fractionHandler.GetHolderBalance)
	})

	addr := ":" + cfg.HTTPPort
	fmt.Printf("Servidor do ledger rodando na porta %s...\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
