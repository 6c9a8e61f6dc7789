package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"arguehub-client/internal/models"
)

func (c *Client) CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("team name is required")
	}
	var team models.Team
	if err := c.do(ctx, http.MethodPost, "/teams/", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var team models.Team
	if err := c.do(ctx, http.MethodGet, "/teams/"+url.PathEscape(teamID), nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) ListMyTeams(ctx context.Context) ([]*models.Team, error) {
	var teams []*models.Team
	if err := c.do(ctx, http.MethodGet, "/teams/mine", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) JoinTeam(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(teamID)+"/join", nil, nil)
}

func (c *Client) LeaveTeam(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(teamID)+"/leave", nil, nil)
}
