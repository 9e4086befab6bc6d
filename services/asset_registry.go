package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ferreirogomes/cotinha/models"

	"github.com/google/uuid"
)

// AssetRegistry é o catálogo de ativos registrados. Ele é o único dono dos
// registros de Asset: ids sequenciais, atributos imutáveis, nunca removidos.
// A identidade do criador é um campo explícito, fixado na construção — somente
// ela pode registrar novos ativos.
type AssetRegistry struct {
	mu       sync.RWMutex
	creator  string
	nextID   uint64
	assets   map[uint64]models.Asset
	order    []uint64 // ids em ordem de inserção, nunca encolhe
	store    Store
	notifier Notifier
}

// NewAssetRegistry cria um registro vazio com a identidade privilegiada dada.
func NewAssetRegistry(creator string, store Store, notifier Notifier) *AssetRegistry {
	if store == nil {
		store = NopStore{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &AssetRegistry{
		creator:  creator,
		assets:   make(map[uint64]models.Asset),
		store:    store,
		notifier: notifier,
	}
}

// Restore recarrega o catálogo a partir do estado durável. Deve ser chamado
// antes de o registro ficar visível para chamadores concorrentes.
func (r *AssetRegistry) Restore(assets []models.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range assets {
		r.assets[a.ID] = a
		r.order = append(r.order, a.ID)
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
}

// CreateAsset registra um novo ativo e devolve o registro criado.
// Restrito à identidade do criador; os demais chamadores recebem ErrUnauthorized.
func (r *AssetRegistry) CreateAsset(caller, name, location string, value, totalFractions int64) (models.Asset, error) {
	if caller != r.creator {
		return models.Asset{}, fmt.Errorf("%w: somente o criador pode registrar ativos", ErrUnauthorized)
	}
	if totalFractions <= 0 {
		return models.Asset{}, fmt.Errorf("%w: total de frações deve ser positivo, recebido %d", ErrInvalidArgument, totalFractions)
	}
	if value < 0 {
		return models.Asset{}, fmt.Errorf("%w: valor não pode ser negativo, recebido %d", ErrInvalidArgument, value)
	}

	r.mu.Lock()
	asset := models.Asset{
		ID:                 r.nextID,
		Name:               name,
		Location:           location,
		Value:              value,
		TotalFractions:     totalFractions,
		AvailableFractions: totalFractions, // nenhuma fração pré-alocada
		CreatedAt:          time.Now(),
	}
	r.nextID++
	r.assets[asset.ID] = asset
	r.order = append(r.order, asset.ID)
	r.mu.Unlock()

	if err := r.store.SaveAsset(asset); err != nil {
		// A durabilidade é responsabilidade do host; registramos para reconciliação.
		log.Printf("ERRO: ativo %d registrado em memória, mas falha ao persistir: %v", asset.ID, err)
	}

	r.notifier.Publish(models.TopicAssetCreated, models.AssetCreatedEvent{
		EventID:        uuid.New().String(),
		AssetID:        asset.ID,
		Name:           asset.Name,
		Location:       asset.Location,
		Value:          asset.Value,
		TotalFractions: asset.TotalFractions,
		OccurredAt:     asset.CreatedAt,
	})

	return asset, nil
}

// Get devolve o ativo pelo id, se existir.
func (r *AssetRegistry) Get(assetID uint64) (models.Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, found := r.assets[assetID]
	return a, found
}

// AssetExists informa se o id está presente no catálogo. Nunca falha.
func (r *AssetRegistry) AssetExists(assetID uint64) bool {
	_, found := r.Get(assetID)
	return found
}

// Creator devolve a identidade privilegiada do registro.
func (r *AssetRegistry) Creator() string {
	return r.creator
}

// IDs devolve os ids de todos os ativos já criados, em ordem de inserção.
func (r *AssetRegistry) IDs() []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint64, len(r.order))
	copy(ids, r.order)
	return ids
}
