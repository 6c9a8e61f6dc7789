package models

import "time"

type Team struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	CaptainID    string       `json:"captainId"`
	CaptainEmail string       `json:"captainEmail"`
	Members      []TeamMember `json:"members"`
	MaxSize      int          `json:"maxSize"`
	AverageElo   float64      `json:"averageElo"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type TeamMember struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Elo         float64   `json:"elo"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type CreateTeamRequest struct {
	Name    string `json:"name"`
	MaxSize int    `json:"maxSize,omitempty"`
}

type TranscriptMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Phase  string `json:"phase,omitempty"`
}

type Transcript struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	Email      string              `json:"email"`
	DebateType string              `json:"debateType"`
	Topic      string              `json:"topic"`
	Opponent   string              `json:"opponent"`
	Result     string              `json:"result"`
	Messages   []TranscriptMessage `json:"messages"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type SaveTranscriptRequest struct {
	DebateType string              `json:"debateType"`
	Topic      string              `json:"topic"`
	Opponent   string              `json:"opponent"`
	Result     string              `json:"result,omitempty"`
	Messages   []TranscriptMessage `json:"messages"`
}

type DebateStats struct {
	TotalDebates int     `json:"totalDebates"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
	WinRate      float64 `json:"winRate"`
}

type LeaderboardEntry struct {
	ID          string  `json:"id"`
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Rating      float64 `json:"rating"`
	AvatarURL   string  `json:"avatarUrl"`
	CurrentUser bool    `json:"currentUser"`
}

type Leaderboard struct {
	Debaters []LeaderboardEntry `json:"debaters"`
	Total    int                `json:"total"`
}

type Profile struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
	Bio         string  `json:"bio,omitempty"`
	Elo         float64 `json:"elo"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// MatchmakingStatus mirrors the team matchmaking poll response: the pool is
// server-side, the client only reflects searching/matched.
type MatchmakingStatus struct {
	InPool        bool   `json:"inPool"`
	MatchedTeamID string `json:"matchedTeamId,omitempty"`
	DebateID      string `json:"debateId,omitempty"`
}
