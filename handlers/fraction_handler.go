package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ferreirogomes/cotinha/services"

	"github.com/go-chi/chi/v5"
)

// FractionHandler lida com requisições HTTP de compra, venda e transferência
// de frações.
type FractionHandler struct {
	Ledger *services.FractionLedger
}

// NewFractionHandler cria uma nova instância do handler de frações.
func NewFractionHandler(ledger *services.FractionLedger) *FractionHandler {
	return &FractionHandler{Ledger: ledger}
}

// BuyFraction compra frações do pool do ativo. Payment é o valor anexado à
// chamada pelo provedor de custódia; deve ser exatamente count * preço.
// POST /assets/{id}/buy
func (h *FractionHandler) BuyFraction(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseAssetID(r)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		BuyerID string `json:"buyer_id"`
		Count   int64  `json:"count"`
		Payment int64  `json:"payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Ledger.BuyFraction(r.Context(), assetID, requestBody.Count, requestBody.Payment, requestBody.BuyerID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeBalance(w, assetID, requestBody.BuyerID)
}

// SellFraction devolve frações do vendedor ao pool.
// POST /assets/{id}/sell
func (h *FractionHandler) SellFraction(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseAssetID(r)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		SellerID string `json:"seller_id"`
		Count    int64  `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Ledger.SellFraction(r.Context(), assetID, requestBody.Count, requestBody.SellerID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeBalance(w, assetID, requestBody.SellerID)
}

// TransferFraction move frações de um detentor para outro, sem passar pelo
// pool.
// POST /assets/{id}/transfer
func (h *FractionHandler) TransferFraction(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseAssetID(r)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		FromID string `json:"from_id"`
		ToID   string `json:"to_id"`
		Count  int64  `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Ledger.TransferFraction(r.Context(), assetID, requestBody.Count, requestBody.ToID, requestBody.FromID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeBalance(w, assetID, requestBody.ToID)
}

// GetHolderBalance obtém o saldo de frações de um detentor no ativo.
// GET /assets/{id}/holders/{holder}
func (h *FractionHandler) GetHolderBalance(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseAssetID(r)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return
	}
	holder := chi.URLParam(r, "holder")
	if holder == "" {
		http.Error(w, "Identidade do detentor é obrigatória", http.StatusBadRequest)
		return
	}

	h.writeBalance(w, assetID, holder)
}

// writeBalance responde com o saldo corrente do detentor no ativo.
func (h *FractionHandler) writeBalance(w http.ResponseWriter, assetID uint64, holder string) {
	balance, err := h.Ledger.GetHolderBalance(assetID, holder)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := struct {
		AssetID uint64 `json:"asset_id"`
		Holder  string `json:"holder"`
		Balance int64  `json:"balance"`
	}{assetID, holder, balance}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
