package services

import (
	"context"
	"net/http"

	"arguehub-client/internal/models"
)

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	var board models.Leaderboard
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}
