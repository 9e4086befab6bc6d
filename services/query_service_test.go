package services_test

import (
	"context"
	"testing"

	"github.com/ferreirogomes/cotinha/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetAsset cobre o cenário de referência: criar o ativo de exemplo e ler
// a projeção {name, location, value, available_fractions}.
func TestGetAsset(t *testing.T) {
	registry, ledger, _, _ := newTestLedger(t, services.PayoutNone)
	query := services.NewQueryService(registry, ledger)

	asset := createSampleAsset(t, registry)
	require.Equal(t, uint64(0), asset.ID)

	details, err := query.GetAsset(0)
	require.NoError(t, err)
	assert.Equal(t, services.AssetDetails{
		Name:               "Sample Property",
		Location:           "Sample Location",
		Value:              100,
		AvailableFractions: 10,
	}, details)
}

// TestGetAssetUnknown devolve ErrUnknownAsset para id ausente.
func TestGetAssetUnknown(t *testing.T) {
	registry, ledger, _, _ := newTestLedger(t, services.PayoutNone)
	query := services.NewQueryService(registry, ledger)

	_, err := query.GetAsset(7)
	assert.ErrorIs(t, err, services.ErrUnknownAsset)
}

// TestGetAssets devolve os ids em ordem de inserção; a lista só cresce.
func TestGetAssets(t *testing.T) {
	registry, ledger, _, _ := newTestLedger(t, services.PayoutNone)
	query := services.NewQueryService(registry, ledger)

	assert.Empty(t, query.GetAssets())

	createSampleAsset(t, registry)
	_, err := registry.CreateAsset(creatorID, "Second", "Elsewhere", 50, 5)
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 1}, query.GetAssets())
}

// TestReadsAreIdempotent: duas leituras sem mutação intermediária devolvem
// exatamente o mesmo resultado.
func TestReadsAreIdempotent(t *testing.T) {
	registry, ledger, memCustody, _ := newTestLedger(t, services.PayoutNone)
	query := services.NewQueryService(registry, ledger)
	asset := createSampleAsset(t, registry)

	memCustody.Deposit("buyer-b", 50)
	require.NoError(t, ledger.BuyFraction(context.Background(), asset.ID, 5, 50, "buyer-b"))

	first, err := query.GetAsset(asset.ID)
	require.NoError(t, err)
	second, err := query.GetAsset(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, query.GetAssets(), query.GetAssets())
}
