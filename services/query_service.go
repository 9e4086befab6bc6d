package services

import "fmt"

// AssetDetails é a projeção de leitura de um ativo: atributos descritivos
// mais as frações ainda disponíveis no pool.
type AssetDetails struct {
	Name               string `json:"name"`
	Location           string `json:"location"`
	Value              int64  `json:"value"`
	AvailableFractions int64  `json:"available_fractions"`
}

// QueryService oferece leituras sobre o registro e o ledger. Nunca muta
// estado; leituras repetidas sem mutação intermediária devolvem o mesmo
// resultado.
type QueryService struct {
	registry *AssetRegistry
	ledger   *FractionLedger
}

// NewQueryService cria o serviço de consulta.
func NewQueryService(registry *AssetRegistry, ledger *FractionLedger) *QueryService {
	return &QueryService{registry: registry, ledger: ledger}
}

// GetAsset devolve a projeção do ativo. Os atributos descritivos são
// imutáveis e o pool é lido sob o lock do ledger, então a combinação é um
// snapshot consistente.
func (q *QueryService) GetAsset(assetID uint64) (AssetDetails, error) {
	asset, found := q.registry.Get(assetID)
	if !found {
		return AssetDetails{}, fmt.Errorf("%w: id %d", ErrUnknownAsset, assetID)
	}
	available, err := q.ledger.AvailableFractions(assetID)
	if err != nil {
		return AssetDetails{}, err
	}
	return AssetDetails{
		Name:               asset.Name,
		Location:           asset.Location,
		Value:              asset.Value,
		AvailableFractions: available,
	}, nil
}

// GetAssets devolve os ids de todos os ativos já criados, em ordem de
// inserção. Entradas nunca são removidas.
func (q *QueryService) GetAssets() []uint64 {
	return q.registry.IDs()
}
