package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"auction-marketplace/internal/biddingerrors"
	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var (
	bidder = &model.Identity{UserID: 7, Email: "bidder@example.com"}
	admin  = &model.Identity{UserID: 1, Email: "admin@auction.com", IsAdmin: true}
)

// newTestRouter mounts one route behind a fake authentication step
func newTestRouter(method, path string, identity *model.Identity, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if identity != nil {
			utils.SetIdentity(c, *identity)
		}
		c.Next()
	}, h)
	return router
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name           string
		identity       *model.Identity
		path           string
		requestBody    any
		contentType    string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_json",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": 150},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 150.0).Return(model.BidReceipt{
					Bid:           model.Bid{ID: 11, AuctionID: 1, UserID: 7, Amount: 150, CreatedAt: now},
					NewCurrentBid: 150,
					BidCount:      4,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid of 150 SEK placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, 150.0, data["new_current_bid"])
				require.Equal(t, 4.0, data["bid_count"])
				bid := data["bid"].(map[string]any)
				require.Equal(t, 11.0, bid["id"])
				require.Equal(t, 7.0, bid["user_id"])
			},
		},
		{
			name:        "success_form",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: url.Values{"amount": {"275.5"}},
			contentType: "application/x-www-form-urlencoded",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 275.5).Return(model.BidReceipt{
					Bid:           model.Bid{ID: 12, AuctionID: 1, UserID: 7, Amount: 275.5, CreatedAt: now},
					NewCurrentBid: 275.5,
					BidCount:      5,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "placed successfully",
		},
		{
			name:           "anonymous",
			path:           "/bidding/place/1",
			requestBody:    map[string]any{"amount": 150},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "authentication required",
		},
		{
			name:           "invalid_auction_id",
			identity:       bidder,
			path:           "/bidding/place/abc",
			requestBody:    map[string]any{"amount": 150},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid id",
		},
		{
			name:           "invalid_json",
			identity:       bidder,
			path:           "/bidding/place/1",
			requestBody:    `{invalid json}`,
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_amount",
			identity:       bidder,
			path:           "/bidding/place/1",
			requestBody:    map[string]any{},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "service_bid_too_low",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": 100},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 100.0).
					Return(model.BidReceipt{}, &biddingerrors.BidTooLowError{Minimum: 150})
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid must be higher than current bid of 150 SEK",
		},
		{
			name:        "service_invalid_bid",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": -10},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), -10.0).Return(model.BidReceipt{}, biddingerrors.ErrInvalidBid)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bid amount",
		},
		{
			name:        "service_already_highest",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": 500},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 500.0).Return(model.BidReceipt{}, biddingerrors.ErrAlreadyHighestBidder)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "already the highest bidder",
		},
		{
			name:        "service_not_active",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": 500},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 500.0).Return(model.BidReceipt{}, biddingerrors.ErrAuctionNotActive)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "not currently active",
		},
		{
			name:        "service_not_found",
			identity:    bidder,
			path:        "/bidding/place/99",
			requestBody: map[string]any{"amount": 500},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(99), uint(7), 500.0).Return(model.BidReceipt{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:        "service_generic_error",
			identity:    bidder,
			path:        "/bidding/place/1",
			requestBody: map[string]any{"amount": 500},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), uint(1), uint(7), 500.0).Return(model.BidReceipt{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    utils.InternalErrorMessage,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockBiddingServiceInterface(ctrl)
			tc.mockSetup(mockService)
			router := newTestRouter(http.MethodPost, "/bidding/place/:id", tc.identity, NewBiddingHandler(mockService).PlaceBidHandler)

			var reqBody []byte
			contentType := tc.contentType
			if contentType == "" {
				contentType = "application/json"
			}
			switch v := tc.requestBody.(type) {
			case string:
				reqBody = []byte(v)
			case url.Values:
				reqBody = []byte(v.Encode())
			default:
				var err error
				reqBody, err = json.Marshal(v)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, tc.path, bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			require.Equal(t, tc.expectedStatus < 400, resp["success"])

			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
			if tc.expectedStatus == http.StatusInternalServerError {
				require.NotContains(t, w.Body.String(), "database failure")
			}
		})
	}
}

// Test ValidateBidHandler
func TestValidateBidHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		mockSetup     func(m *MockBiddingServiceInterface)
		expectedValid bool
		expectedMsg   string
	}{
		{
			name: "valid",
			body: `{"auction_id": 1, "amount": 600}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().CheckBid(gomock.Any(), uint(1), uint(7), 600.0).Return(nil)
			},
			expectedValid: true,
			expectedMsg:   "bid of 600 SEK is valid",
		},
		{
			name:        "missing_fields",
			body:        `{"auction_id": 1}`,
			mockSetup:   func(m *MockBiddingServiceInterface) {},
			expectedMsg: "missing auction ID or bid amount",
		},
		{
			name:        "malformed_amount",
			body:        `{"auction_id": 1, "amount": "lots"}`,
			mockSetup:   func(m *MockBiddingServiceInterface) {},
			expectedMsg: "invalid bid amount format",
		},
		{
			name: "too_low",
			body: `{"auction_id": 1, "amount": 400}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().CheckBid(gomock.Any(), uint(1), uint(7), 400.0).
					Return(&biddingerrors.BidTooLowError{Minimum: 500})
			},
			expectedMsg: "bid must be higher than current bid of 500 SEK",
		},
		{
			name: "auction_missing",
			body: `{"auction_id": 5, "amount": 400}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().CheckBid(gomock.Any(), uint(5), uint(7), 400.0).Return(biddingerrors.ErrAuctionNotFound)
			},
			expectedMsg: "auction not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockBiddingServiceInterface(ctrl)
			tc.mockSetup(mockService)
			router := newTestRouter(http.MethodPost, "/bidding/validate", bidder, NewBiddingHandler(mockService).ValidateBidHandler)

			req := httptest.NewRequest(http.MethodPost, "/bidding/validate", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			data := decode(t, w)["data"].(map[string]any)
			require.Equal(t, tc.expectedValid, data["valid"])
			require.Equal(t, tc.expectedMsg, data["message"])
		})
	}
}

// Test BidHistoryHandler
func TestBidHistoryHandler(t *testing.T) {
	t.Parallel()

	entries := []model.BidHistoryEntry{{ID: 2, Amount: 250, Bidder: "j***@example.com"}}

	tests := []struct {
		name           string
		identity       *model.Identity
		path           string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
	}{
		{
			name: "anonymous_viewer",
			path: "/bidding/history/3",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidHistory(gomock.Any(), uint(3), (*model.Identity)(nil)).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "admin_viewer_passed_through",
			identity: admin,
			path:     "/bidding/history/3",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidHistory(gomock.Any(), uint(3), admin).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown_auction",
			path: "/bidding/history/404",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidHistory(gomock.Any(), uint(404), gomock.Any()).Return(nil, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockBiddingServiceInterface(ctrl)
			tc.mockSetup(mockService)
			router := newTestRouter(http.MethodGet, "/bidding/history/:id", tc.identity, NewBiddingHandler(mockService).BidHistoryHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				data := decode(t, w)["data"].(map[string]any)
				require.Equal(t, 3.0, data["auction_id"])
				require.Len(t, data["bids"], 1)
			}
		})
	}
}

// Test WinningBidHandler and TopBidsHandler
func TestWinningAndTopBidsHandlers(t *testing.T) {
	t.Parallel()

	t.Run("winning_found", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetWinningBid(gomock.Any(), uint(1)).
			Return(model.Bid{ID: 5, AuctionID: 1, UserID: 8, Amount: 900, CreatedAt: time.Now()}, nil)
		router := newTestRouter(http.MethodGet, "/bidding/winning/:id", nil, NewBiddingHandler(mockService).WinningBidHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/winning/1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		require.Equal(t, 900.0, data["amount"])
	})

	t.Run("winning_no_bids", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetWinningBid(gomock.Any(), uint(1)).Return(model.Bid{}, biddingerrors.ErrNoBids)
		router := newTestRouter(http.MethodGet, "/bidding/winning/:id", nil, NewBiddingHandler(mockService).WinningBidHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/winning/1", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, decode(t, w)["message"], "no bids found")
	})

	t.Run("top_with_limit", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetTopBids(gomock.Any(), uint(2), 3, gomock.Any()).
			Return([]model.BidHistoryEntry{{ID: 1, Amount: 10}, {ID: 2, Amount: 9}}, nil)
		router := newTestRouter(http.MethodGet, "/bidding/top/:id", nil, NewBiddingHandler(mockService).TopBidsHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/top/2?limit=3", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		require.Len(t, data["bids"], 2)
	})
}

// Test MyBidsHandler
func TestMyBidsHandler(t *testing.T) {
	t.Parallel()

	t.Run("lists_summaries", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetUserBidSummaries(gomock.Any(), uint(7)).Return([]model.UserBidSummary{
			{Auction: model.Auction{ID: 1, Title: "Klocka"}, UserHighestBid: 750, CurrentHighest: 750, IsWinning: true, BidCount: 2},
		}, nil)
		router := newTestRouter(http.MethodGet, "/bidding/my-bids", bidder, NewBiddingHandler(mockService).MyBidsHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/my-bids", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].([]any)
		require.Len(t, data, 1)
		entry := data[0].(map[string]any)
		require.Equal(t, true, entry["is_winning"])
		require.Equal(t, 2.0, entry["bid_count"])
	})

	t.Run("empty_is_list", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetUserBidSummaries(gomock.Any(), uint(7)).Return(nil, nil)
		router := newTestRouter(http.MethodGet, "/bidding/my-bids", bidder, NewBiddingHandler(mockService).MyBidsHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/my-bids", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []any{}, decode(t, w)["data"])
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		router := newTestRouter(http.MethodGet, "/bidding/my-bids", nil, NewBiddingHandler(NewMockBiddingServiceInterface(ctrl)).MyBidsHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bidding/my-bids", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
