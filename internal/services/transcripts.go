package services

import (
	"context"
	"net/http"
	"net/url"

	"arguehub-client/internal/models"
)

func (c *Client) SaveTranscript(ctx context.Context, req *models.SaveTranscriptRequest) error {
	return c.do(ctx, http.MethodPost, "/transcripts", req, nil)
}

func (c *Client) ListTranscripts(ctx context.Context) ([]*models.Transcript, error) {
	var transcripts []*models.Transcript
	if err := c.do(ctx, http.MethodGet, "/transcripts", nil, &transcripts); err != nil {
		return nil, err
	}
	return transcripts, nil
}

func (c *Client) GetTranscript(ctx context.Context, id string) (*models.Transcript, error) {
	var transcript models.Transcript
	if err := c.do(ctx, http.MethodGet, "/transcripts/"+url.PathEscape(id), nil, &transcript); err != nil {
		return nil, err
	}
	return &transcript, nil
}

func (c *Client) GetDebateStats(ctx context.Context) (*models.DebateStats, error) {
	var stats models.DebateStats
	if err := c.do(ctx, http.MethodGet, "/transcripts/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
