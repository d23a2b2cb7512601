package studio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"MusicTycoon/internal/config"
	"MusicTycoon/internal/model"
)

var (
	ErrInsufficientFunds = errors.New("not enough cash")
	ErrNotEnoughEnergy   = errors.New("not enough energy")
	ErrUnknownItem       = errors.New("unknown skill or tool")
	ErrUnknownTier       = errors.New("unknown upgrade tier")
	ErrBuskTooShort      = errors.New("busking shift too short")
)

// UpgradeKind selects what an upgrade improves.
type UpgradeKind string

const (
	UpgradeSkill UpgradeKind = "skill"
	UpgradeTool  UpgradeKind = "tool"
)

// Upgrades lists the purchasable tiers for kind, cheapest first as configured.
func (s *Studio) Upgrades(kind UpgradeKind) []config.Upgrade {
	var tiers []config.Upgrade
	if kind == UpgradeTool {
		tiers = s.cfg.Career.ToolTiers
	} else {
		tiers = s.cfg.Career.SkillTiers
	}
	return append([]config.Upgrade(nil), tiers...)
}

// BuskShifts lists the busking slots, shortest first.
func (s *Studio) BuskShifts() []config.BuskShift {
	return append([]config.BuskShift(nil), s.cfg.Career.BuskShifts...)
}

// Study practises a skill for free. It returns the new level.
func (s *Studio) Study(skill string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.player.Skills[skill]; !ok {
		return 0, fmt.Errorf("study %q: %w", skill, ErrUnknownItem)
	}
	level := raise(s.player.Skills, skill, s.cfg.Career.StudyGain, s.cfg.Career.MaxSkill)
	s.sink.Publish(model.Event{
		Kind: model.EventInfo,
		Text: fmt.Sprintf("Studied %s (level %.1f)", skill, level),
		At:   s.clock.Elapsed(),
	})
	return level, nil
}

// Upgrade buys one tier for a skill or tool and returns its new level. The
// tier is matched by name, ignoring case.
func (s *Studio) Upgrade(kind UpgradeKind, name, tier string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	levels, tiers, limit := s.player.Skills, s.cfg.Career.SkillTiers, s.cfg.Career.MaxSkill
	verb := "Learned"
	if kind == UpgradeTool {
		levels, tiers, limit = s.player.Tools, s.cfg.Career.ToolTiers, 0
		verb = "Upgraded"
	}
	if _, ok := levels[name]; !ok {
		return 0, fmt.Errorf("upgrade %s %q: %w", kind, name, ErrUnknownItem)
	}
	var step *config.Upgrade
	for i := range tiers {
		if strings.EqualFold(tiers[i].Name, tier) {
			step = &tiers[i]
			break
		}
	}
	if step == nil {
		return 0, fmt.Errorf("upgrade %s %q: tier %q: %w", kind, name, tier, ErrUnknownTier)
	}
	if s.player.Cash < step.Cost {
		return 0, fmt.Errorf("upgrade %s %q (%s, $%.2f): %w", kind, name, step.Name, step.Cost, ErrInsufficientFunds)
	}

	s.player.Cash -= step.Cost
	level := raise(levels, name, step.Gain, limit)
	s.sink.Publish(model.Event{
		Kind: model.EventInfo,
		Text: fmt.Sprintf("%s %s: %s for $%s (level %.1f)", verb, name, step.Name, humanize.CommafWithDigits(step.Cost, 2), level),
		At:   s.clock.Elapsed(),
	})
	return level, nil
}

// Busk plays for tips. The request is rounded down to the longest configured
// shift it covers; the shift's energy is spent and the payout is
// minutes * luck * pay factor. It returns the cash earned.
func (s *Studio) Busk(minutes float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg.Career
	var shift *config.BuskShift
	for i := range c.BuskShifts {
		if minutes >= c.BuskShifts[i].Minutes {
			shift = &c.BuskShifts[i]
		}
	}
	if shift == nil {
		return 0, fmt.Errorf("busk %.0f minutes: %w", minutes, ErrBuskTooShort)
	}
	if s.player.Energy < shift.Energy {
		return 0, fmt.Errorf("busk %.0f minutes (needs %.0f energy, have %.0f): %w",
			shift.Minutes, shift.Energy, s.player.Energy, ErrNotEnoughEnergy)
	}

	s.player.Energy -= shift.Energy
	earned := shift.Minutes * s.rng.Float(c.BuskLuckMin, c.BuskLuckMax) * c.BuskPayFactor
	s.player.Cash += earned
	s.sink.Publish(model.Event{
		Kind: model.EventInfo,
		Text: fmt.Sprintf("Busked for %.0f minutes and made $%.2f", shift.Minutes, earned),
		At:   s.clock.Elapsed(),
	})
	return earned, nil
}

// Rest restores energy up to the maximum and returns the new level.
func (s *Studio) Rest() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.Energy = min(s.player.Energy+s.cfg.Career.RestEnergy, s.cfg.Career.MaxEnergy)
	s.sink.Publish(model.Event{
		Kind: model.EventInfo,
		Text: fmt.Sprintf("Rested (energy %.0f)", s.player.Energy),
		At:   s.clock.Elapsed(),
	})
	return s.player.Energy
}

// raise adds gain to levels[name], capped at limit when limit is positive.
func raise(levels map[string]float64, name string, gain, limit float64) float64 {
	level := levels[name] + gain
	if limit > 0 && level > limit {
		level = limit
	}
	levels[name] = level
	return level
}
