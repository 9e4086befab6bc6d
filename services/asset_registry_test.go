package services_test

import (
	"testing"

	"github.com/ferreirogomes/cotinha/models"
	"github.com/ferreirogomes/cotinha/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore é uma implementação mock de services.Store para testes de unidade.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveAsset(asset models.Asset) error {
	args := m.Called(asset)
	return args.Error(0)
}
func (m *MockStore) UpdateAvailableFractions(assetID uint64, available int64) error {
	args := m.Called(assetID, available)
	return args.Error(0)
}
func (m *MockStore) UpsertBalance(assetID uint64, holder string, balance int64) error {
	args := m.Called(assetID, holder, balance)
	return args.Error(0)
}
func (m *MockStore) LoadAssets() ([]models.Asset, error) {
	args := m.Called()
	return args.Get(0).([]models.Asset), args.Error(1)
}
func (m *MockStore) LoadBalances() ([]models.HolderBalance, error) {
	args := m.Called()
	return args.Get(0).([]models.HolderBalance), args.Error(1)
}

// TestCreateAsset verifica a criação com atributos corretos, id sequencial a
// partir de zero e pool inicial cheio.
func TestCreateAsset(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := services.NewAssetRegistry(creatorID, nil, notifier)

	asset, err := registry.CreateAsset(creatorID, "Sample Property", "Sample Location", 100, 10)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), asset.ID)
	assert.Equal(t, "Sample Property", asset.Name)
	assert.Equal(t, "Sample Location", asset.Location)
	assert.Equal(t, int64(100), asset.Value)
	assert.Equal(t, int64(10), asset.TotalFractions)
	assert.Equal(t, int64(10), asset.AvailableFractions)
	assert.Equal(t, int64(10), asset.PricePerFraction())

	second, err := registry.CreateAsset(creatorID, "Second", "Elsewhere", 50, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.ID)

	assert.True(t, registry.AssetExists(0))
	assert.True(t, registry.AssetExists(1))
	assert.False(t, registry.AssetExists(2))
	assert.Equal(t, []uint64{0, 1}, registry.IDs())

	topic, payload := notifier.last()
	assert.Equal(t, models.TopicAssetCreated, topic)
	event := payload.(models.AssetCreatedEvent)
	assert.Equal(t, uint64(1), event.AssetID)
	assert.NotEmpty(t, event.EventID)
}

// TestCreateAssetUnauthorized: somente a identidade do criador registra ativos.
func TestCreateAssetUnauthorized(t *testing.T) {
	registry := services.NewAssetRegistry(creatorID, nil, nil)

	_, err := registry.CreateAsset("intruso", "Sample Property", "Sample Location", 100, 10)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Empty(t, registry.IDs())
}

// TestCreateAssetInvalidArguments rejeita frações não-positivas e valor negativo.
func TestCreateAssetInvalidArguments(t *testing.T) {
	registry := services.NewAssetRegistry(creatorID, nil, nil)

	_, err := registry.CreateAsset(creatorID, "X", "Y", 100, 0)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = registry.CreateAsset(creatorID, "X", "Y", 100, -1)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = registry.CreateAsset(creatorID, "X", "Y", -100, 10)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	assert.Empty(t, registry.IDs())
}

// TestCreateAssetPersists verifica que o ativo criado vai para o Store.
func TestCreateAssetPersists(t *testing.T) {
	mockStore := new(MockStore)
	registry := services.NewAssetRegistry(creatorID, mockStore, nil)

	mockStore.On("SaveAsset", mock.MatchedBy(func(a models.Asset) bool {
		return a.ID == 0 && a.Name == "Sample Property" && a.AvailableFractions == 10
	})).Return(nil).Once()

	_, err := registry.CreateAsset(creatorID, "Sample Property", "Sample Location", 100, 10)
	require.NoError(t, err)

	mockStore.AssertExpectations(t)
}
