package model

// Player holds the artist's economic and fan state for one session.
type Player struct {
	Name       string             `json:"name"`
	Fans       int                `json:"fans"`
	Cash       float64            `json:"cash"`
	Reputation float64            `json:"reputation"` // 0 ~ reputation cap
	Skills     map[string]float64 `json:"skills"`     // 0 ~ 100 per skill
	Tools      map[string]float64 `json:"tools"`      // studio gear levels
	Energy     float64            `json:"energy"`     // spent busking, restored by rest

	// ReputationElapsed is the time accumulated toward the next reputation recomputation.
	ReputationElapsed float64 `json:"reputation_elapsed"`
}

// NewPlayer creates a player with private copies of the given skill and tool maps.
func NewPlayer(name string, fans int, cash float64, skills, tools map[string]float64) *Player {
	p := &Player{
		Name:   name,
		Fans:   fans,
		Cash:   cash,
		Skills: make(map[string]float64, len(skills)),
		Tools:  make(map[string]float64, len(tools)),
	}
	if p.Fans < 0 {
		p.Fans = 0
	}
	for k, v := range skills {
		p.Skills[k] = v
	}
	for k, v := range tools {
		p.Tools[k] = v
	}
	return p
}

// AddFans applies a signed fan delta, never letting the count drop below zero.
func (p *Player) AddFans(delta int) {
	p.Fans += delta
	if p.Fans < 0 {
		p.Fans = 0
	}
}
