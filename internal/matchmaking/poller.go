package matchmaking

import (
	"context"
	"sync"
	"time"

	"arguehub-client/internal/models"
	"arguehub-client/pkg/logger"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseMatched   Phase = "matched"
)

// API is the slice of the REST client the poller needs.
type API interface {
	JoinMatchmaking(ctx context.Context, teamID string) error
	LeaveMatchmaking(ctx context.Context, teamID string) error
	GetMatchmakingStatus(ctx context.Context, teamID string) (*models.MatchmakingStatus, error)
}

// Poller runs the team matchmaking search loop: join the pool, poll status on
// a ticker, report the match. The pool itself is server-side; the client only
// reflects idle/searching/matched.
type Poller struct {
	api      API
	teamID   string
	interval time.Duration
	onMatch  func(debateID string)

	mu       sync.Mutex
	phase    Phase
	debateID string
	cancel   context.CancelFunc
}

func NewPoller(api API, teamID string, interval time.Duration, onMatch func(debateID string)) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		api:      api,
		teamID:   teamID,
		interval: interval,
		onMatch:  onMatch,
		phase:    PhaseIdle,
	}
}

func (p *Poller) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// DebateID is set once a match is found.
func (p *Poller) DebateID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.debateID
}

// Start joins the pool and begins polling. A poller already searching or
// matched is left alone.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.phase != PhaseIdle {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	if err := p.api.JoinMatchmaking(ctx, p.teamID); err != nil {
		return err
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.phase = PhaseSearching
	p.cancel = cancel
	p.mu.Unlock()

	go p.poll(pollCtx)
	return nil
}

func (p *Poller) poll(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := p.api.GetMatchmakingStatus(ctx, p.teamID)
			if err != nil {
				logger.Error("matchmaking poll failed for team %s: %v", p.teamID, err)
				continue
			}
			if status.DebateID != "" {
				p.mu.Lock()
				p.phase = PhaseMatched
				p.debateID = status.DebateID
				p.mu.Unlock()
				if p.onMatch != nil {
					p.onMatch(status.DebateID)
				}
				return
			}
		}
	}
}

// Stop leaves the pool and returns to idle. Leaving is best effort; a failed
// leave still stops local polling.
func (p *Poller) Stop(ctx context.Context) {
	p.mu.Lock()
	cancel := p.cancel
	searching := p.phase == PhaseSearching
	p.phase = PhaseIdle
	p.debateID = ""
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if searching {
		if err := p.api.LeaveMatchmaking(ctx, p.teamID); err != nil {
			logger.Error("leaving matchmaking pool for team %s: %v", p.teamID, err)
		}
	}
}
