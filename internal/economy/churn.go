package economy

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"MusicTycoon/internal/model"
)

// globalChurn runs once per tick after every release has been processed.
// It returns the number of fans removed.
func (e *Engine) globalChurn(p *model.Player, dailyStreams int, now float64) int {
	c := e.cfg.Churn
	if p.Fans <= 0 {
		return 0
	}

	rate := c.BaseRate
	if p.Fans > c.LargeFanbaseThreshold {
		rate = c.LargeFanbaseRate
	}
	if dailyStreams < c.InactivityStreams {
		rate *= 2
	}
	lost := int(float64(p.Fans) * rate)

	if e.rng.Chance(c.ScandalChance) {
		scandal := int(float64(p.Fans) * c.ScandalLoss)
		lost += scandal
		e.sink.Publish(model.Event{
			Kind: model.EventScandal,
			Text: fmt.Sprintf("Scandal! %s lost %s fans", p.Name, humanize.Comma(int64(scandal))),
			At:   now,
		})
	}

	before := p.Fans
	p.AddFans(-lost)
	return before - p.Fans
}
