package handlers

import (
	"context"
	"net/http"
	"strconv"

	"chainboard/internal/services/explorer"
	"chainboard/pkg/errors"
)

// ExplorerService is the slice of the explorer service the handlers need
type ExplorerService interface {
	RecentBlocks(ctx context.Context, limit int) ([]explorer.BlockView, error)
	Block(ctx context.Context, height uint64) (*explorer.BlockDetail, error)
	Transaction(ctx context.Context, hash string) (*explorer.TransactionView, error)
	Address(ctx context.Context, address string) (*explorer.AddressView, error)
}

// ExplorerHandler serves the block explorer endpoints
type ExplorerHandler struct {
	svc ExplorerService
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(svc ExplorerService) *ExplorerHandler {
	return &ExplorerHandler{svc: svc}
}

// HandleBlocks serves GET /api/v1/explorer/blocks
func (h *ExplorerHandler) HandleBlocks(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		respondError(w, err)
		return
	}

	blocks, err := h.svc.RecentBlocks(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blocks)
}

// HandleBlock serves GET /api/v1/explorer/blocks/{height}
func (h *ExplorerHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("height")
	height, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(w, errors.Wrapf(errors.ErrInvalidInput, "invalid block height %q", raw))
		return
	}

	detail, err := h.svc.Block(r.Context(), height)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// HandleTransaction serves GET /api/v1/explorer/txs/{hash}
func (h *ExplorerHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Transaction(r.Context(), r.PathValue("hash"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// HandleAddress serves GET /api/v1/explorer/addresses/{address}
func (h *ExplorerHandler) HandleAddress(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Address(r.Context(), r.PathValue("address"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
