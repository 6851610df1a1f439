package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/ledger"
	"medstock/internal/domain/reports"
	"medstock/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles transaction recording and listing.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Record handles POST /transactions - record a BOUGHT or SOLD transaction.
// The stock mutation and the ledger insert commit atomically.
func (h *LedgerHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid medicine id format"))
		return
	}

	txn, err := h.service.Record(ctx, ownerID, draft)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(txn))
}

// List handles GET /transactions - search the ledger, newest first.
// The q parameter matches partner name, medicine name or a date in
// YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY form.
func (h *LedgerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(ctx, ownerID, c.Query("q"), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromTransactions(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Recent handles GET /transactions/recent - the latest activity feed.
func (h *LedgerHandler) Recent(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", reports.RecentTransactionsLimit)

	txns, err := h.service.Recent(ctx, ownerID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromTransactions(txns)})
}
