package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	auction "auction-backend/internal/auctionService"
	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handler the way the server router does. A non-zero
// userID simulates the auth middleware having validated a bearer token.
func newTestRouter(h *AuctionHandler, userID uint) *gin.Engine {
	r := gin.New()

	group := r.Group("/api/v1/auction")
	group.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	group.GET("/", h.ListAuctionsHandler)
	group.POST("/", h.CreateAuctionHandler)
	group.GET("/:id/", h.GetAuctionHandler)
	group.PUT("/:id/", h.UpdateAuctionHandler)
	group.PATCH("/:id/", h.PatchAuctionHandler)
	group.DELETE("/:id/", h.CancelAuctionHandler)
	return r
}

func newMockHandler(t *testing.T) (*AuctionHandler, *MockAuctionServiceInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionServiceInterface(ctrl)
	return NewAuctionHandler(mockService), mockService
}

// envelope mirrors the response shape for assertions
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    *utils.PageMeta `json:"meta"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Host = "api.test"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func sampleAuction(id, ownerID uint, title string) *models.Auction {
	now := time.Now().UTC()
	return &models.Auction{
		ID:            id,
		Title:         title,
		Description:   "d",
		StartingPrice: 100,
		CurrentPrice:  100,
		OwnerID:       ownerID,
		Owner:         models.User{ID: ownerID, Username: "seller"},
		Status:        models.StatusActive,
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(time.Hour),
	}
}

// Tests GET /api/v1/auction/: query params, envelope and pagination links
func TestListAuctionsHandler(t *testing.T) {
	t.Run("params_reach_the_service", func(t *testing.T) {
		h, mockService := newMockHandler(t)

		mockService.EXPECT().
			List(auction.ListParams{Status: "active", ActiveOnly: true, Search: "camera", Page: 2, PageSize: 10}).
			Return(&storage.AuctionPage{
				Auctions: []models.Auction{*sampleAuction(12, 1, "Camera Two"), *sampleAuction(11, 1, "Camera One")},
				Total:    25,
			}, nil)

		r := newTestRouter(h, 0)
		w, env := doRequest(t, r, http.MethodGet, "/api/v1/auction/?status=active&active=true&search=camera&page=2&page_size=10", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, env.Success)
		require.Equal(t, "auctions fetched successfully", env.Message)

		var data []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data, 2)
		require.Equal(t, "Camera Two", data[0]["title"])
		require.Equal(t, "seller", data[0]["owner_username"])
		require.NotContains(t, data[0], "description", "list view stays lightweight")

		require.NotNil(t, env.Meta)
		require.EqualValues(t, 25, env.Meta.Count)
		require.NotNil(t, env.Meta.Next)
		require.Contains(t, *env.Meta.Next, "page=3")
		require.Contains(t, *env.Meta.Next, "http://api.test/api/v1/auction/")
		require.NotNil(t, env.Meta.Previous)
		require.Contains(t, *env.Meta.Previous, "page=1")
	})

	t.Run("first_page_has_no_previous_link", func(t *testing.T) {
		h, mockService := newMockHandler(t)

		mockService.EXPECT().
			List(auction.ListParams{Page: 1, PageSize: storage.DefaultPageSize}).
			Return(&storage.AuctionPage{Auctions: []models.Auction{}, Total: 3}, nil)

		r := newTestRouter(h, 0)
		w, env := doRequest(t, r, http.MethodGet, "/api/v1/auction/", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Meta)
		require.Nil(t, env.Meta.Next)
		require.Nil(t, env.Meta.Previous)
	})

	t.Run("bad_page_values_fall_back_to_defaults", func(t *testing.T) {
		h, mockService := newMockHandler(t)

		mockService.EXPECT().
			List(auction.ListParams{Page: 1, PageSize: storage.DefaultPageSize}).
			Return(&storage.AuctionPage{Auctions: []models.Auction{}, Total: 0}, nil)

		r := newTestRouter(h, 0)
		w, _ := doRequest(t, r, http.MethodGet, "/api/v1/auction/?page=abc&page_size=", "")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

// Tests GET /api/v1/auction/:id/
func TestGetAuctionHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().Get(uint(7)).Return(sampleAuction(7, 1, "Vintage Camera"), nil)

		r := newTestRouter(h, 0)
		w, env := doRequest(t, r, http.MethodGet, "/api/v1/auction/7/", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, env.Success)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, "Vintage Camera", data["title"])
		require.Equal(t, "d", data["description"])
		require.Contains(t, data, "latest_bids")
	})

	t.Run("missing", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().Get(uint(9999)).Return(nil, auctionerrors.ErrNotFound)

		r := newTestRouter(h, 0)
		w, env := doRequest(t, r, http.MethodGet, "/api/v1/auction/9999/", "")

		require.Equal(t, http.StatusNotFound, w.Code)
		require.False(t, env.Success)
		require.Equal(t, "resource not found", env.Message)
	})

	t.Run("non_numeric_id_is_not_found", func(t *testing.T) {
		h, _ := newMockHandler(t)

		r := newTestRouter(h, 0)
		w, _ := doRequest(t, r, http.MethodGet, "/api/v1/auction/abc/", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Tests POST /api/v1/auction/
func TestCreateAuctionHandler(t *testing.T) {
	endTime := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	validBody := fmt.Sprintf(`{"title":"Camera","description":"d","starting_price":100,"end_time":%q}`, endTime)

	t.Run("requires_authentication", func(t *testing.T) {
		h, _ := newMockHandler(t)

		r := newTestRouter(h, 0)
		w, env := doRequest(t, r, http.MethodPost, "/api/v1/auction/", validBody)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.False(t, env.Success)
		require.Equal(t, "authentication required", env.Message)
	})

	t.Run("rejects_bad_payload", func(t *testing.T) {
		h, _ := newMockHandler(t)

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodPost, "/api/v1/auction/", `{"title":"Camera"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "invalid request payload", env.Message)
	})

	t.Run("validation_errors_carry_the_field_map", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().
			Create(uint(3), gomock.Any()).
			Return(nil, auctionerrors.NewValidationError("end_time", "End time must be in the future"))

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodPost, "/api/v1/auction/", validBody)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "validation failed", env.Message)

		var fields map[string]string
		require.NoError(t, json.Unmarshal(env.Errors, &fields))
		require.Contains(t, fields, "end_time")
	})

	t.Run("created", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().
			Create(uint(3), gomock.Any()).
			DoAndReturn(func(ownerID uint, in auction.CreateInput) (*models.Auction, error) {
				require.Equal(t, "Camera", in.Title)
				require.Equal(t, 100.0, in.StartingPrice)
				return sampleAuction(7, ownerID, in.Title), nil
			})

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodPost, "/api/v1/auction/", validBody)

		require.Equal(t, http.StatusCreated, w.Code)
		require.True(t, env.Success)
		require.Equal(t, "auction created successfully", env.Message)
	})
}

// Tests PUT and PATCH /api/v1/auction/:id/
func TestUpdateAuctionHandlers(t *testing.T) {
	endTime := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	putBody := fmt.Sprintf(`{"title":"Updated","description":"d2","end_time":%q}`, endTime)

	t.Run("put_forwards_every_field", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().
			Update(uint(3), uint(7), gomock.Any()).
			DoAndReturn(func(callerID, id uint, in auction.UpdateInput) (*models.Auction, error) {
				require.NotNil(t, in.Title)
				require.Equal(t, "Updated", *in.Title)
				require.NotNil(t, in.Description)
				require.NotNil(t, in.EndTime)
				return sampleAuction(7, 3, *in.Title), nil
			})

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodPut, "/api/v1/auction/7/", putBody)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "auction updated successfully", env.Message)
	})

	t.Run("patch_forwards_only_present_fields", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().
			Update(uint(3), uint(7), gomock.Any()).
			DoAndReturn(func(callerID, id uint, in auction.UpdateInput) (*models.Auction, error) {
				require.NotNil(t, in.Title)
				require.Equal(t, "Updated", *in.Title)
				require.Nil(t, in.Description)
				require.Nil(t, in.EndTime)
				return sampleAuction(7, 3, *in.Title), nil
			})

		r := newTestRouter(h, 3)
		w, _ := doRequest(t, r, http.MethodPatch, "/api/v1/auction/7/", `{"title":"Updated"}`)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_owner_gets_forbidden", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().
			Update(uint(99), uint(7), gomock.Any()).
			Return(nil, auctionerrors.ErrForbidden)

		r := newTestRouter(h, 99)
		w, env := doRequest(t, r, http.MethodPut, "/api/v1/auction/7/", putBody)

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "you do not have permission to perform this action", env.Message)
	})

	t.Run("put_requires_authentication", func(t *testing.T) {
		h, _ := newMockHandler(t)

		r := newTestRouter(h, 0)
		w, _ := doRequest(t, r, http.MethodPut, "/api/v1/auction/7/", putBody)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Tests DELETE /api/v1/auction/:id/
func TestCancelAuctionHandler(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		h, mockService := newMockHandler(t)

		cancelled := sampleAuction(7, 3, "Camera")
		cancelled.Status = models.StatusCancelled
		mockService.EXPECT().Cancel(uint(3), uint(7)).Return(cancelled, nil)

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodDelete, "/api/v1/auction/7/", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "auction cancelled successfully", env.Message)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, models.StatusCancelled, data["status"])
	})

	t.Run("auction_with_bids", func(t *testing.T) {
		h, mockService := newMockHandler(t)
		mockService.EXPECT().Cancel(uint(3), uint(7)).Return(nil, auctionerrors.ErrAuctionHasBids)

		r := newTestRouter(h, 3)
		w, env := doRequest(t, r, http.MethodDelete, "/api/v1/auction/7/", "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "auction with bids cannot be cancelled", env.Message)
	})

	t.Run("requires_authentication", func(t *testing.T) {
		h, _ := newMockHandler(t)

		r := newTestRouter(h, 0)
		w, _ := doRequest(t, r, http.MethodDelete, "/api/v1/auction/7/", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
