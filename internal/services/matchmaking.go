package services

import (
	"context"
	"net/http"
	"net/url"

	"arguehub-client/internal/models"
)

func (c *Client) JoinMatchmaking(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodPost, "/matchmaking/"+url.PathEscape(teamID)+"/join", nil, nil)
}

func (c *Client) LeaveMatchmaking(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodPost, "/matchmaking/"+url.PathEscape(teamID)+"/leave", nil, nil)
}

func (c *Client) GetMatchmakingStatus(ctx context.Context, teamID string) (*models.MatchmakingStatus, error) {
	var status models.MatchmakingStatus
	if err := c.do(ctx, http.MethodGet, "/matchmaking/"+url.PathEscape(teamID)+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
