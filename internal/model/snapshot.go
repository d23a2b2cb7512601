package model

// Snapshot is a point-in-time summary of a session for reports and history.
type Snapshot struct {
	At          float64 `json:"at"` // simulated seconds
	Frame       uint64  `json:"frame"`
	Artist      string  `json:"artist"`
	Tier        string  `json:"tier"` // career stage by fan count
	Fans        int     `json:"fans"`
	Cash        float64 `json:"cash"`
	Reputation  float64 `json:"reputation"`
	Energy      float64 `json:"energy"`
	BaseQuality float64 `json:"base_quality"` // expected recording quality before noise

	VaultSongs int `json:"vault_songs"`
	Singles    int `json:"singles"`
	Albums     int `json:"albums"`
	Retired    int `json:"retired"`

	DailyStreams int     `json:"daily_streams"`
	TotalStreams int     `json:"total_streams"`
	TotalSales   int     `json:"total_sales"`
	Earnings     float64 `json:"earnings"` // lifetime, including retired releases

	Ticks      int `json:"ticks"`
	FansGained int `json:"fans_gained"` // session totals from the market tick
	ViralFans  int `json:"viral_fans"`
	FansLost   int `json:"fans_lost"`

	TrendGenre string  `json:"trend_genre"`
	TrendBonus float64 `json:"trend_bonus"`

	Releases []Release `json:"releases,omitempty"`
}
