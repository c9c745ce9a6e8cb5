package model

// AggregateSnapshot is the derived Help/Stop scoreboard for one project
// at one instant. It is a pure function of the set of paid donations:
// recomputable at any time, never persisted as source of truth.
type AggregateSnapshot struct {
	HelpAmount  Money `json:"help_amount"`
	StopAmount  Money `json:"stop_amount"`
	TotalAmount Money `json:"total_amount"`

	HelpCount int `json:"help_count"`
	StopCount int `json:"stop_count"`

	// Percentages sum to exactly 100 when TotalAmount > 0; both are 0
	// on an empty board. StopPercentage is derived as the complement of
	// HelpPercentage so independent rounding can never drift.
	HelpPercentage Percent `json:"help_percentage"`
	StopPercentage Percent `json:"stop_percentage"`

	// StopWins is a strict comparison: an exact tie reads as Help ahead.
	StopWins bool `json:"stop_wins"`

	// TrollMessage is set by the projector when StopWins is true.
	TrollMessage string `json:"troll_message,omitempty"`
}

// DailyRanking is the ordered list of one project's paid donations for
// one calendar day, descending by amount with created_at then id as
// tie-breaks. An empty day has nil TopDonor and LowestDonor. A
// single-entry day has both pointing at the same donation.
type DailyRanking struct {
	Day         string      `json:"day"`
	Donations   []*Donation `json:"donations"`
	TopDonor    *Donation   `json:"top_donor,omitempty"`
	LowestDonor *Donation   `json:"lowest_donor,omitempty"`
}

// ProjectInfo is the single composed view the frontend consumes per
// project: metadata, funding progress, today's ranking and the
// Help/Stop scoreboard.
type ProjectInfo struct {
	Project            *Project           `json:"project"`
	ProgressPercentage Percent            `json:"progress_percentage"`
	IsGoalReached      bool               `json:"is_goal_reached"`
	TimeRemaining      string             `json:"time_remaining"`
	DailyRanking       *DailyRanking      `json:"daily_ranking"`
	TopDonorToday      *Donation          `json:"top_donor_today,omitempty"`
	LowestDonorToday   *Donation          `json:"lowest_donor_today,omitempty"`
	FundraisingStats   *AggregateSnapshot `json:"fundraising_stats"`
}
