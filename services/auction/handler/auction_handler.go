package handler

import (
	"net/http"
	"strconv"
	"time"

	auction "auction-backend/internal/auctionService"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
	"auction-backend/services/auction/helpers"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	List(params auction.ListParams) (*storage.AuctionPage, error)
	Get(id uint) (*models.Auction, error)
	Create(ownerID uint, in auction.CreateInput) (*models.Auction, error)
	Update(callerID, id uint, in auction.UpdateInput) (*models.Auction, error)
	Cancel(callerID, id uint) (*models.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// ListAuctionsHandler handles GET /api/v1/auction/
//
// Query parameters:
//   - status: exact status match (active, closed, cancelled)
//   - active: "true" keeps only auctions currently open for bidding
//   - search: case-insensitive substring match on title or description
//   - page, page_size: pagination
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	params := auction.ListParams{
		Status:     c.Query("status"),
		ActiveOnly: c.Query("active") == "true",
		Search:     c.Query("search"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", storage.DefaultPageSize),
	}

	page, err := h.service.List(params)
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err)
		return
	}

	now := time.Now().UTC()
	resp := make([]helpers.AuctionListResponse, 0, len(page.Auctions))
	for i := range page.Auctions {
		resp = append(resp, helpers.NewAuctionListResponse(&page.Auctions[i], now))
	}

	normalized := storage.PageRequest{Page: params.Page, PageSize: params.PageSize}.Normalize()
	meta := helpers.PageLinks(c, normalized.Page, normalized.PageSize, page.Total)

	utils.JSONSuccessPage(c, http.StatusOK, resp, "auctions fetched successfully", meta)
	helpers.LogSuccess("ListAuctionsHandler", "auctions fetched successfully", map[string]any{
		"count":  page.Total,
		"page":   normalized.Page,
		"status": params.Status,
		"active": params.ActiveOnly,
		"search": params.Search,
	})
}

// CreateAuctionHandler handles POST /api/v1/auction/
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	callerID, ok := helpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.service.Create(callerID, auction.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err)
		return
	}

	resp := helpers.NewAuctionDetailResponse(created, time.Now().UTC())
	utils.JSONSuccess(c, http.StatusCreated, resp, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.ID,
		"owner_id":   callerID,
	})
}

// GetAuctionHandler handles GET /api/v1/auction/:id/
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id, err := helpers.ParseIDParam(c)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err)
		return
	}

	found, err := h.service.Get(id)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err)
		return
	}

	resp := helpers.NewAuctionDetailResponse(found, time.Now().UTC())
	utils.JSONSuccess(c, http.StatusOK, resp, "auction fetched successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction fetched successfully", map[string]any{
		"auction_id": id,
	})
}

// UpdateAuctionHandler handles PUT /api/v1/auction/:id/ (owner only)
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	callerID, ok := helpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	id, err := helpers.ParseIDParam(c)
	if err != nil {
		helpers.RespondError(c, "UpdateAuctionHandler", err)
		return
	}

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	updated, err := h.service.Update(callerID, id, auction.UpdateInput{
		Title:        &req.Title,
		Description:  &req.Description,
		ReservePrice: req.ReservePrice,
		EndTime:      &req.EndTime,
	})
	if err != nil {
		helpers.RespondError(c, "UpdateAuctionHandler", err)
		return
	}

	resp := helpers.NewAuctionDetailResponse(updated, time.Now().UTC())
	utils.JSONSuccess(c, http.StatusOK, resp, "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": id,
		"caller_id":  callerID,
	})
}

// PatchAuctionHandler handles PATCH /api/v1/auction/:id/ (owner only)
func (h *AuctionHandler) PatchAuctionHandler(c *gin.Context) {
	callerID, ok := helpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	id, err := helpers.ParseIDParam(c)
	if err != nil {
		helpers.RespondError(c, "PatchAuctionHandler", err)
		return
	}

	var req helpers.PatchAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PatchAuctionHandler", err)
		return
	}

	updated, err := h.service.Update(callerID, id, auction.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		ReservePrice: req.ReservePrice,
		EndTime:      req.EndTime,
	})
	if err != nil {
		helpers.RespondError(c, "PatchAuctionHandler", err)
		return
	}

	resp := helpers.NewAuctionDetailResponse(updated, time.Now().UTC())
	utils.JSONSuccess(c, http.StatusOK, resp, "auction updated successfully")
	helpers.LogSuccess("PatchAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": id,
		"caller_id":  callerID,
	})
}

// CancelAuctionHandler handles DELETE /api/v1/auction/:id/ (owner only).
// Cancelling is a soft status change and only allowed while the auction
// has no bids.
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	callerID, ok := helpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	id, err := helpers.ParseIDParam(c)
	if err != nil {
		helpers.RespondError(c, "CancelAuctionHandler", err)
		return
	}

	cancelled, err := h.service.Cancel(callerID, id)
	if err != nil {
		helpers.RespondError(c, "CancelAuctionHandler", err)
		return
	}

	resp := helpers.NewAuctionDetailResponse(cancelled, time.Now().UTC())
	utils.JSONSuccess(c, http.StatusOK, resp, "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{
		"auction_id": id,
		"caller_id":  callerID,
	})
}

// queryInt reads an integer query parameter with a fallback default
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
