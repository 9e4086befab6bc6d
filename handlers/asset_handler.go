package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ferreirogomes/cotinha/services"

	"github.com/go-chi/chi/v5"
)

// AssetHandler lida com requisições HTTP relacionadas a ativos.
type AssetHandler struct {
	Registry *services.AssetRegistry
	Query    *services.QueryService
}

// NewAssetHandler cria uma nova instância do handler de ativos.
func NewAssetHandler(registry *services.AssetRegistry, query *services.QueryService) *AssetHandler {
	return &AssetHandler{Registry: registry, Query: query}
}

// CreateAsset registra um novo ativo. A identidade do chamador vem no corpo
// (o provedor de identidade do ambiente é confiado verbatim).
// POST /assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		CallerID       string `json:"caller_id"`
		Name           string `json:"name"`
		Location       string `json:"location"`
		Value          int64  `json:"value"`
		TotalFractions int64  `json:"total_fractions"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.Registry.CreateAsset(requestBody.CallerID, requestBody.Name,
		requestBody.Location, requestBody.Value, requestBody.TotalFractions)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(asset)
}

// GetAssetByID obtém a projeção de um ativo pelo ID.
// GET /assets/{id}
func (h *AssetHandler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseAssetID(r)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return
	}

	details, err := h.Query.GetAsset(assetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// GetAssets obtém os IDs de todos os ativos, em ordem de criação.
// GET /assets
func (h *AssetHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	ids := h.Query.GetAssets()
	if ids == nil {
		ids = []uint64{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ids)
}

// parseAssetID extrai o id numérico do path.
func parseAssetID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
