package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/biddingerrors"
	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var shopper = &model.Identity{UserID: 4, Email: "shopper@example.com"}

func setupRouter(t *testing.T, identity *model.Identity) (*gin.Engine, *MockAuctionServiceInterface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if identity != nil {
			utils.SetIdentity(c, *identity)
		}
		c.Next()
	})
	router.GET("/auctions", h.BrowseHandler)
	router.GET("/auctions/categories", h.CategoriesHandler)
	router.GET("/auctions/search", h.SearchHandler)
	router.GET("/auctions/:id", h.DetailHandler)
	router.POST("/auctions/:id/like", h.LikeHandler)
	router.POST("/auctions/:id/dislike", h.DislikeHandler)
	return router, mockService
}

func serve(t *testing.T, router *gin.Engine, method, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestBrowseHandler(t *testing.T) {
	t.Parallel()

	summary := model.AuctionSummary{
		Auction:       model.Auction{ID: 1, Title: "Vintage klocka", Category: "Antikviteter", StartingBid: 500},
		Status:        model.StatusActive,
		CurrentAmount: 750,
	}

	tests := []struct {
		name           string
		path           string
		identity       *model.Identity
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedCount  float64
	}{
		{
			name: "all_filters_forwarded",
			path: "/auctions?search=klocka&category=Antikviteter&status=active&sort=current_bid&min_price=100&max_price=1000",
			mockSetup: func(m *MockAuctionServiceInterface) {
				minPrice, maxPrice := 100.0, 1000.0
				m.EXPECT().Browse(gomock.Any(), auction.BrowseQuery{
					Search:   "klocka",
					Category: "Antikviteter",
					Status:   "active",
					Sort:     "current_bid",
					MinPrice: &minPrice,
					MaxPrice: &maxPrice,
				}, (*model.Identity)(nil)).Return([]model.AuctionSummary{summary}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:     "viewer_passed_through",
			path:     "/auctions",
			identity: shopper,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Browse(gomock.Any(), auction.BrowseQuery{}, shopper).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "negative_price_rejected",
			path:           "/auctions?min_price=-5",
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non_numeric_price_rejected",
			path:           "/auctions?max_price=cheap",
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad_status_from_service",
			path: "/auctions?status=sold",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Browse(gomock.Any(), auction.BrowseQuery{Status: "sold"}, gomock.Any()).
					Return(nil, biddingerrors.ErrInvalidAuction)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService := setupRouter(t, tc.identity)
			tc.mockSetup(mockService)

			status, resp := serve(t, router, http.MethodGet, tc.path)
			require.Equal(t, tc.expectedStatus, status)
			if status == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, tc.expectedCount, data["count"])
			}
		})
	}
}

func TestDetailHandler(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		router, mockService := setupRouter(t, nil)
		mockService.EXPECT().Detail(gomock.Any(), uint(2), (*model.Identity)(nil)).Return(model.AuctionDetail{
			AuctionSummary: model.AuctionSummary{
				Auction: model.Auction{ID: 2, Title: "Tavla", EndTime: time.Now().Add(time.Hour)},
				Status:  model.StatusActive,
			},
			BidCount:   3,
			MinimumBid: 1200,
		}, nil)

		status, resp := serve(t, router, http.MethodGet, "/auctions/2")
		require.Equal(t, http.StatusOK, status)
		data := resp["data"].(map[string]any)
		require.Equal(t, "Tavla", data["title"])
		require.Equal(t, 1200.0, data["minimum_bid"])
		require.Equal(t, "active", data["status"])
		require.Nil(t, data["user_reaction"])
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		router, mockService := setupRouter(t, nil)
		mockService.EXPECT().Detail(gomock.Any(), uint(9), gomock.Any()).Return(model.AuctionDetail{}, biddingerrors.ErrAuctionNotFound)

		status, resp := serve(t, router, http.MethodGet, "/auctions/9")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "auction not found", resp["message"])
	})

	t.Run("bad_id", func(t *testing.T) {
		t.Parallel()

		router, _ := setupRouter(t, nil)
		status, _ := serve(t, router, http.MethodGet, "/auctions/0")
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestReactionHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		identity       *model.Identity
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:     "like_created",
			path:     "/auctions/1/like",
			identity: shopper,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ToggleReaction(gomock.Any(), uint(1), uint(4), model.ReactionLike).Return(model.ReactionResult{
					Action:         auction.ActionCreated,
					ReactionCounts: model.ReactionCounts{Likes: 1},
					UserReaction:   model.ReactionLike,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, true, data["success"])
				require.Equal(t, "created", data["action"])
				require.Equal(t, 1.0, data["like_count"])
				require.Equal(t, 0.0, data["dislike_count"])
				require.Equal(t, "like", data["user_reaction"])
			},
		},
		{
			name:     "dislike_removed",
			path:     "/auctions/1/dislike",
			identity: shopper,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ToggleReaction(gomock.Any(), uint(1), uint(4), model.ReactionDislike).Return(model.ReactionResult{
					Action: auction.ActionDeleted,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "deleted", data["action"])
				require.Nil(t, data["user_reaction"])
			},
		},
		{
			name:           "anonymous",
			path:           "/auctions/1/like",
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "unknown_auction",
			path:     "/auctions/77/like",
			identity: shopper,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ToggleReaction(gomock.Any(), uint(77), uint(4), model.ReactionLike).
					Return(model.ReactionResult{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService := setupRouter(t, tc.identity)
			tc.mockSetup(mockService)

			status, resp := serve(t, router, http.MethodPost, tc.path)
			require.Equal(t, tc.expectedStatus, status)
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestCategoriesAndSearchHandlers(t *testing.T) {
	t.Parallel()

	t.Run("categories", func(t *testing.T) {
		t.Parallel()

		router, mockService := setupRouter(t, nil)
		mockService.EXPECT().Categories(gomock.Any()).Return([]string{"Elektronik", "Konst"}, nil)

		status, resp := serve(t, router, http.MethodGet, "/auctions/categories")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, []any{"Elektronik", "Konst"}, resp["data"])
	})

	t.Run("categories_failure_is_hidden", func(t *testing.T) {
		t.Parallel()

		router, mockService := setupRouter(t, nil)
		mockService.EXPECT().Categories(gomock.Any()).Return(nil, errors.New("connection refused"))

		status, resp := serve(t, router, http.MethodGet, "/auctions/categories")
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, utils.InternalErrorMessage, resp["message"])
		require.NotContains(t, resp["error"], "connection refused")
	})

	t.Run("search", func(t *testing.T) {
		t.Parallel()

		router, mockService := setupRouter(t, nil)
		mockService.EXPECT().Search(gomock.Any(), "lampa").Return([]model.SearchResult{
			{ID: 3, Title: "Lampa", CurrentBid: 300, Status: model.StatusActive},
		}, nil)

		status, resp := serve(t, router, http.MethodGet, "/auctions/search?q=lampa")
		require.Equal(t, http.StatusOK, status)
		results := resp["data"].([]any)
		require.Len(t, results, 1)
		require.Equal(t, "Lampa", results[0].(map[string]any)["title"])
	})
}
