package integrationtests

import (
	"fmt"
	"net/http"
	"testing"

	model "auction-marketplace/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAdminAccess(t *testing.T) {
	router, _ := SetupTestRouter(t)
	userToken := Login(t, router, userEmail, userPassword)

	_, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/admin/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/admin/dashboard", userToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDashboard(t *testing.T) {
	router, _ := SetupTestRouter(t)
	adminToken := Login(t, router, adminEmail, adminPassword)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	d := data(t, resp)
	require.Equal(t, 4.0, d["total_auctions"])
	require.Equal(t, 4.0, d["active_auctions"])
	require.Equal(t, 2.0, d["total_bids"])
	require.Equal(t, 2.0, d["total_users"])
	require.Len(t, d["recent_auctions"], 4)
	require.Len(t, d["recent_bids"], 2)
}

func TestAdminAuctionLifecycle(t *testing.T) {
	router, _ := SetupTestRouter(t)
	adminToken := Login(t, router, adminEmail, adminPassword)
	userToken := Login(t, router, userEmail, userPassword)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/admin/auctions", adminToken, map[string]any{
		"title":          "Teak Sideboard",
		"description":    "Dansk design från 60-talet",
		"category":       "Möbler",
		"starting_bid":   2000,
		"duration_hours": 48,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := data(t, resp)
	id := uint(created["id"].(float64))
	require.Nil(t, created["current_bid"])

	auctionURL := fmt.Sprintf("/admin/auctions/%d", id)

	// no bids yet: the starting bid can still move
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPut, auctionURL, adminToken, map[string]any{"starting_bid": 1500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 1500.0, data(t, resp)["starting_bid"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, fmt.Sprintf("/bidding/place/%d", id), userToken, map[string]float64{"amount": 1600})
	require.Equal(t, http.StatusCreated, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPut, auctionURL, adminToken, map[string]any{"starting_bid": 1000})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPut, auctionURL, adminToken, map[string]any{"title": "Teak Sideboard, Danmark"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := data(t, resp)
	require.Equal(t, "Teak Sideboard, Danmark", updated["title"])
	require.Equal(t, 1600.0, updated["current_bid"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, resp["data"], "Möbler")

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, auctionURL, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, fmt.Sprintf("/auctions/%d", id), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, resp["data"], "Möbler")
}

func TestAdminImageUploadDisabled(t *testing.T) {
	router, _ := SetupTestRouter(t)
	adminToken := Login(t, router, adminEmail, adminPassword)

	req := newMultipartRequest(t, fmt.Sprintf("/admin/auctions/%d/image", seededAuctionID), adminToken, "image", "klocka.jpg", []byte("jpeg bytes"))
	w := serve(router, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminDeleteBid_RecomputesCurrentBid(t *testing.T) {
	router, db := SetupTestRouter(t)
	adminToken := Login(t, router, adminEmail, adminPassword)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/admin/bids", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.Len(t, bids, 2)

	highest := bids[0].(map[string]any)
	require.Equal(t, 750.0, highest["amount"])
	require.Equal(t, userEmail, highest["bidder_email"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, fmt.Sprintf("/admin/bids/%.0f", highest["id"].(float64)), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 600.0, data(t, resp)["new_current_bid"])

	var auction model.Auction
	require.NoError(t, db.First(&auction, seededAuctionID).Error)
	require.NotNil(t, auction.CurrentBid)
	require.Equal(t, 600.0, *auction.CurrentBid)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, fmt.Sprintf("/admin/bids/%.0f", highest["id"].(float64)), adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDeleteUser(t *testing.T) {
	router, db := SetupTestRouter(t)
	adminToken := Login(t, router, adminEmail, adminPassword)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 2)

	var admin, user model.User
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)
	require.NoError(t, db.Where("email = ?", userEmail).First(&user).Error)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, fmt.Sprintf("/admin/users/%d", user.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bids, likes int64
	require.NoError(t, db.Model(&model.Bid{}).Count(&bids).Error)
	require.NoError(t, db.Model(&model.Like{}).Count(&likes).Error)
	require.Zero(t, bids)
	require.Zero(t, likes)

	var auction model.Auction
	require.NoError(t, db.First(&auction, seededAuctionID).Error)
	require.NotNil(t, auction.CurrentBid)
	require.Equal(t, auction.StartingBid, *auction.CurrentBid)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/login", "", map[string]string{"email": userEmail, "password": userPassword})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid email or password", resp["message"])
}
