package services_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/ferreirogomes/cotinha/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkConservation verifica o invariante central: para todo ativo,
// pool + Σ saldos == total de frações, e nada fica negativo.
func checkConservation(t *testing.T, registry *services.AssetRegistry, ledger *services.FractionLedger) {
	t.Helper()
	for _, id := range registry.IDs() {
		asset, found := registry.Get(id)
		require.True(t, found)

		available, err := ledger.AvailableFractions(id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, available, int64(0), "pool negativo no ativo %d", id)

		var held int64
		for holder, balance := range ledger.Holders(id) {
			require.Greater(t, balance, int64(0), "saldo não-positivo materializado para %s no ativo %d", holder, id)
			held += balance
		}
		require.Equal(t, asset.TotalFractions, available+held,
			"conservação violada no ativo %d: pool %d + detido %d != total %d", id, available, held, asset.TotalFractions)
	}
}

// TestConservationUnderRandomOperations aplica sequências aleatórias de
// compra/venda/transferência (válidas e inválidas, misturadas) e verifica a
// conservação após cada operação.
func TestConservationUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	holders := []string{"ana", "bruno", "carla", "davi"}

	registry, ledger, memCustody, _ := newTestLedger(t, services.PayoutNone)
	for i := 0; i < 4; i++ {
		_, err := registry.CreateAsset(creatorID, "Ativo", "Lugar", int64(rng.Intn(500)), int64(1+rng.Intn(20)))
		require.NoError(t, err)
	}
	for _, h := range holders {
		memCustody.Deposit(h, 1_000_000)
	}
	memCustody.FundVault(1_000_000)

	ctx := context.Background()
	ids := registry.IDs()

	for i := 0; i < 2000; i++ {
		assetID := ids[rng.Intn(len(ids))]
		asset, _ := registry.Get(assetID)
		holder := holders[rng.Intn(len(holders))]
		other := holders[rng.Intn(len(holders))]
		// Contagens às vezes inválidas de propósito: rejeição também não
		// pode quebrar o invariante.
		count := int64(rng.Intn(int(asset.TotalFractions)+3)) - 1

		switch rng.Intn(3) {
		case 0:
			payment := count * asset.PricePerFraction()
			if rng.Intn(10) == 0 {
				payment++ // pagamento errado de vez em quando
			}
			_ = ledger.BuyFraction(ctx, assetID, count, payment, holder)
		case 1:
			_ = ledger.SellFraction(ctx, assetID, count, holder)
		case 2:
			_ = ledger.TransferFraction(ctx, assetID, count, other, holder)
		}

		checkConservation(t, registry, ledger)
	}
}

// TestConservationUnderConcurrentCallers martela o ledger com chamadores
// concorrentes adversariais. As mutações são estritamente serializadas pelo
// lock: nenhum estado intermediário pode ficar observável.
func TestConservationUnderConcurrentCallers(t *testing.T) {
	registry, ledger, memCustody, _ := newTestLedger(t, services.PayoutNone)
	asset := createSampleAsset(t, registry) // 10 frações, preço 10

	holders := []string{"ana", "bruno", "carla", "davi"}
	for _, h := range holders {
		memCustody.Deposit(h, 1_000_000)
	}
	memCustody.FundVault(1_000_000)

	ctx := context.Background()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 300; i++ {
				holder := holders[rng.Intn(len(holders))]
				other := holders[rng.Intn(len(holders))]
				count := int64(1 + rng.Intn(4))
				switch rng.Intn(3) {
				case 0:
					_ = ledger.BuyFraction(ctx, asset.ID, count, count*10, holder)
				case 1:
					_ = ledger.SellFraction(ctx, asset.ID, count, holder)
				case 2:
					if other != holder {
						_ = ledger.TransferFraction(ctx, asset.ID, count, other, holder)
					}
				}
			}
		}(int64(w))
	}

	// Leitores concorrentes: o snapshot nunca pode violar a conservação nem
	// expor contagens negativas.
	stop := make(chan struct{})
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				available, err := ledger.AvailableFractions(asset.ID)
				if err != nil {
					continue
				}
				if available < 0 || available > asset.TotalFractions {
					t.Errorf("leitura inconsistente do pool: %d", available)
					return
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readers.Wait()

	checkConservation(t, registry, ledger)

	// O dinheiro também se conserva na custódia em memória.
	total := memCustody.VaultBalance() + memCustody.Balance(creatorID)
	for _, h := range holders {
		total += memCustody.Balance(h)
	}
	assert.Equal(t, int64(4*1_000_000+1_000_000), total)
}
