package studio

import (
	"errors"
	"fmt"
	"sort"

	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/random"
)

// Autopilot plays the artist in headless runs: it records and releases a
// single on one cadence and bundles recent recordings into an album on a
// slower one. It chases the trending genre when there is one. Between
// releases it trains, alternating skills and gear, and busks or rests when
// it cannot afford an upgrade.
type Autopilot struct {
	cfg    config.Autopilot
	genres []string
	studio *Studio
	rng    random.Source

	single    clock.Accumulator
	album     clock.Accumulator
	train     clock.Accumulator
	songs     int
	lps       int
	trainings int
}

// NewAutopilot creates an Autopilot driving s.
func NewAutopilot(cfg config.Autopilot, genres []string, s *Studio, rng random.Source) *Autopilot {
	return &Autopilot{
		cfg:    cfg,
		genres: genres,
		studio: s,
		rng:    rng,
		single: clock.NewAccumulator(cfg.SingleEverySeconds),
		album:  clock.NewAccumulator(cfg.AlbumEverySeconds),
		train:  clock.NewAccumulator(cfg.TrainEverySeconds),
	}
}

// Step advances the autopilot's own timers by dt and acts when they fire.
func (a *Autopilot) Step(dt float64) error {
	if !a.cfg.Enabled {
		return nil
	}
	if a.single.Add(dt) {
		if err := a.releaseSingle(); err != nil {
			return err
		}
	}
	if a.album.Add(dt) {
		if err := a.releaseAlbum(); err != nil {
			return err
		}
	}
	if a.train.Add(dt) {
		if err := a.practise(); err != nil {
			return err
		}
	}
	return nil
}

// practise buys the dearest affordable tier for the weakest skill or tool,
// keeping the cash reserve. With nothing affordable it studies for free on
// skill turns and earns money on gear turns.
func (a *Autopilot) practise() error {
	p := a.studio.Player()
	kind, levels := UpgradeSkill, p.Skills
	if a.trainings%2 == 1 {
		kind, levels = UpgradeTool, p.Tools
	}
	a.trainings++

	name, ok := weakest(levels)
	if !ok {
		return nil
	}
	budget := p.Cash - a.cfg.CashReserve
	var best *config.Upgrade
	for _, tier := range a.studio.Upgrades(kind) {
		if tier.Cost <= budget && (best == nil || tier.Cost > best.Cost) {
			best = &tier
		}
	}
	if best != nil {
		_, err := a.studio.Upgrade(kind, name, best.Name)
		if errors.Is(err, ErrInsufficientFunds) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("autopilot upgrade: %w", err)
		}
		return nil
	}
	if kind == UpgradeSkill {
		if _, err := a.studio.Study(name); err != nil {
			return fmt.Errorf("autopilot study: %w", err)
		}
		return nil
	}
	return a.hustle(p.Energy)
}

// hustle busks the longest shift the energy allows, or rests when tired.
func (a *Autopilot) hustle(energy float64) error {
	shifts := a.studio.BuskShifts()
	for i := len(shifts) - 1; i >= 0; i-- {
		if shifts[i].Energy <= energy {
			if _, err := a.studio.Busk(shifts[i].Minutes); err != nil && !errors.Is(err, ErrNotEnoughEnergy) {
				return fmt.Errorf("autopilot busk: %w", err)
			}
			return nil
		}
	}
	a.studio.Rest()
	return nil
}

// weakest returns the lowest-levelled entry, breaking ties by name.
func weakest(levels map[string]float64) (string, bool) {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	best := names[0]
	for _, name := range names[1:] {
		if levels[name] < levels[best] {
			best = name
		}
	}
	return best, true
}

func (a *Autopilot) releaseSingle() error {
	a.songs++
	song := a.studio.Record(fmt.Sprintf("Track %d", a.songs), a.pickGenre())
	if _, err := a.studio.ReleaseSingle(song.ID, 0); err != nil {
		return fmt.Errorf("autopilot single: %w", err)
	}
	return nil
}

func (a *Autopilot) releaseAlbum() error {
	vault := a.studio.Vault()
	n := a.cfg.AlbumTracks
	if n <= 0 || len(vault) == 0 {
		return nil
	}
	if n > len(vault) {
		n = len(vault)
	}
	ids := make([]string, 0, n)
	for _, song := range vault[len(vault)-n:] {
		ids = append(ids, song.ID)
	}
	a.lps++
	if _, err := a.studio.ReleaseAlbum(fmt.Sprintf("Album %d", a.lps), "", ids, 0); err != nil {
		return fmt.Errorf("autopilot album: %w", err)
	}
	return nil
}

func (a *Autopilot) pickGenre() string {
	if g := a.studio.Trending(); g != "" {
		return g
	}
	if len(a.genres) == 0 {
		return ""
	}
	return a.genres[a.rng.Int(0, len(a.genres)-1)]
}
