package studio

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/economy"
	"MusicTycoon/internal/fanbase"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/quality"
	"MusicTycoon/internal/random"
	"MusicTycoon/internal/recorder"
	"MusicTycoon/internal/reputation"
	"MusicTycoon/internal/trend"
)

var (
	ErrSongNotFound    = errors.New("song not found in vault")
	ErrNoTracks        = errors.New("album needs at least one track")
	ErrAlreadyReleased = errors.New("song already released as a single")
)

// lpTracks is the track count from which an album is billed as an LP.
const lpTracks = 7

// FrameReport describes what happened during one Frame. Tick holds the
// market totals when Ticked is set.
type FrameReport struct {
	Ticked            bool
	Tick              economy.TickReport
	ReputationChanged bool
	Retired           []model.Release
}

// Studio owns one session: the player, the vault of recorded songs, the
// released catalog and the simulation clock. All methods are safe for
// concurrent use; the frame loop and scheduled reports share it.
type Studio struct {
	mu sync.Mutex

	cfg  *config.Config
	rng  random.Source
	sink model.EventSink
	rec  recorder.Recorder

	clock      clock.SimulationClock
	economy    *economy.Engine
	reputation *reputation.Accumulator

	player   *model.Player
	vault    []*model.Release
	released map[string]bool // vault IDs already put out as singles
	singles  []*model.Release
	albums   []*model.Release

	retired         int
	retiredEarnings float64
	totals          economy.TickReport
}

// New creates a session from cfg. A nil sink discards events and a nil
// recorder keeps no history.
func New(cfg *config.Config, rng random.Source, sink model.EventSink, rec recorder.Recorder) *Studio {
	if sink == nil {
		sink = model.DiscardSink{}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	cycle := trend.NewCycle(cfg.Trend, rng, sink)
	fans := fanbase.NewModel(cfg.Fanbase, cfg.Reputation.Cap, rng, sink)
	player := model.NewPlayer(cfg.Player.Name, cfg.Player.Fans, cfg.Player.Cash, cfg.Player.Skills, cfg.Player.Tools)
	player.Energy = cfg.Career.StartEnergy
	return &Studio{
		cfg:        cfg,
		rng:        rng,
		sink:       sink,
		rec:        rec,
		economy:    economy.NewEngine(cfg.Economy, rng, sink, cycle, fans),
		reputation: reputation.NewAccumulator(cfg.Reputation),
		player:     player,
		released:   make(map[string]bool),
	}
}

// BaseQuality previews the quality the player would record at, before noise.
func (s *Studio) BaseQuality() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return quality.ComputeBaseQuality(s.player.Skills, s.player.Tools)
}

// Record rolls a new song into the vault. An empty genre falls back to the
// first configured genre.
func (s *Studio) Record(name, genre string) model.Release {
	s.mu.Lock()
	defer s.mu.Unlock()

	if genre == "" && len(s.cfg.Trend.Genres) > 0 {
		genre = s.cfg.Trend.Genres[0]
	}
	if name == "" {
		name = fmt.Sprintf("Untitled #%d", len(s.vault)+1)
	}

	base := quality.ComputeBaseQuality(s.player.Skills, s.player.Tools)
	song := &model.Release{
		ID:      uuid.NewString(),
		Name:    name,
		Artist:  s.player.Name,
		Genre:   genre,
		Kind:    model.KindSingle,
		Quality: quality.RollRecordedQuality(s.rng, base),
	}
	song.Price = s.economy.RecommendedPrice(model.KindSingle, song.Quality)
	s.vault = append(s.vault, song)
	return song.Snapshot()
}

// ReleaseSingle puts a vault song on the market. A price of zero or less
// means the recommended price.
func (s *Studio) ReleaseSingle(id string, price float64) (model.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song := s.findLocked(id)
	if song == nil {
		return model.Release{}, fmt.Errorf("release single %s: %w", id, ErrSongNotFound)
	}
	if s.released[id] {
		return model.Release{}, fmt.Errorf("release single %q: %w", song.Name, ErrAlreadyReleased)
	}

	single := song.Snapshot()
	single.Kind = model.KindSingle
	single.Price = s.priceLocked(model.KindSingle, single.Quality, price)
	single.Hype = s.economy.SeedHype(model.KindSingle, s.player.Fans)
	s.singles = append(s.singles, &single)
	s.released[id] = true

	s.sink.Publish(model.Event{
		Kind: model.EventRelease,
		Text: fmt.Sprintf("Released single %q (quality %.0f) at $%.2f", single.Name, single.Quality, single.Price),
		At:   s.clock.Elapsed(),
	})
	return single.Snapshot(), nil
}

// ReleaseAlbum bundles vault songs into an album. The tracks are copies, so
// the album never changes when vault songs do.
func (s *Studio) ReleaseAlbum(name, genre string, songIDs []string, price float64) (model.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(songIDs) == 0 {
		return model.Release{}, fmt.Errorf("release album %q: %w", name, ErrNoTracks)
	}
	tracks := make([]model.Release, 0, len(songIDs))
	for _, id := range songIDs {
		song := s.findLocked(id)
		if song == nil {
			return model.Release{}, fmt.Errorf("release album %q track %s: %w", name, id, ErrSongNotFound)
		}
		tracks = append(tracks, song.Snapshot())
	}

	format := "EP"
	if len(tracks) >= lpTracks {
		format = "LP"
	}
	if name == "" {
		name = fmt.Sprintf("Untitled %s", format)
	}
	if genre == "" {
		genre = tracks[0].Genre
	}

	album := &model.Release{
		ID:     uuid.NewString(),
		Name:   name,
		Artist: s.player.Name,
		Genre:  genre,
		Kind:   model.KindAlbum,
		Tracks: tracks,
	}
	album.Quality = quality.AggregateAlbumQuality(album.TrackQualities())
	album.Price = s.priceLocked(model.KindAlbum, album.Quality, price)
	album.Hype = s.economy.SeedHype(model.KindAlbum, s.player.Fans)
	s.albums = append(s.albums, album)

	s.sink.Publish(model.Event{
		Kind: model.EventRelease,
		Text: fmt.Sprintf("Released %s %q: %d tracks, quality %.0f, $%.2f", format, album.Name, len(tracks), album.Quality, album.Price),
		At:   s.clock.Elapsed(),
	})
	return album.Snapshot(), nil
}

// Frame advances the session by dt seconds: economy, then reputation, then
// retirement of releases that outlived their kind's lifetime.
func (s *Studio) Frame(dt float64) FrameReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Advance(dt)
	report := FrameReport{
		Ticked: s.economy.Advance(&s.clock, s.singles, s.albums, s.player),
	}
	if report.Ticked {
		report.Tick = s.economy.LastTick()
		s.totals.Add(report.Tick)
	}
	report.ReputationChanged = s.reputation.Advance(s.player, s.singles, s.albums, s.clock.Delta())
	report.Retired = append(s.pruneLocked(&s.singles), s.pruneLocked(&s.albums)...)
	return report
}

// pruneLocked drops expired releases from list and archives them.
func (s *Studio) pruneLocked(list *[]*model.Release) []model.Release {
	var retired []model.Release
	kept := (*list)[:0]
	for _, r := range *list {
		if !r.Expired(s.economy.Lifetime(r.Kind)) {
			kept = append(kept, r)
			continue
		}
		now := s.clock.Elapsed()
		if err := s.rec.RecordRetirement(r, now); err != nil {
			log.Printf("[ERROR] failed to record retirement of %s: %v", r.ID, err)
		}
		s.retired++
		s.retiredEarnings += r.Earnings
		s.sink.Publish(model.Event{
			Kind: model.EventRetired,
			Text: fmt.Sprintf("%q left the charts after %s streams ($%s)",
				r.Name, humanize.Comma(int64(r.TotalStreams)), humanize.CommafWithDigits(r.Earnings, 2)),
			At: now,
		})
		retired = append(retired, r.Snapshot())
	}
	for i := len(kept); i < len(*list); i++ {
		(*list)[i] = nil
	}
	*list = kept
	return retired
}

// Snapshot returns a copy of the session state.
func (s *Studio) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	multiplier, genre := s.economy.Trend().Current()
	snap := model.Snapshot{
		At:          s.clock.Elapsed(),
		Frame:       s.clock.Frame(),
		Artist:      s.player.Name,
		Tier:        TierFor(s.player.Fans),
		Fans:        s.player.Fans,
		Cash:        s.player.Cash,
		Reputation:  s.player.Reputation,
		Energy:      s.player.Energy,
		BaseQuality: quality.ComputeBaseQuality(s.player.Skills, s.player.Tools),
		VaultSongs:  len(s.vault),
		Singles:     len(s.singles),
		Albums:      len(s.albums),
		Retired:     s.retired,
		Earnings:    s.retiredEarnings,
		Ticks:       s.economy.Ticks(),
		FansGained:  s.totals.FansGained,
		ViralFans:   s.totals.Viral,
		FansLost:    s.totals.FansLost,
		TrendGenre:  genre,
	}
	if genre != "" {
		snap.TrendBonus = 1 + multiplier
	}
	for _, list := range [][]*model.Release{s.singles, s.albums} {
		for _, r := range list {
			snap.DailyStreams += r.DailyStreams
			snap.TotalStreams += r.TotalStreams
			snap.TotalSales += r.TotalSales
			snap.Earnings += r.Earnings
			snap.Releases = append(snap.Releases, r.Snapshot())
		}
	}
	return snap
}

// Player returns a copy of the player state.
func (s *Studio) Player() model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *model.NewPlayer(s.player.Name, s.player.Fans, s.player.Cash, s.player.Skills, s.player.Tools)
	cp.Reputation = s.player.Reputation
	cp.ReputationElapsed = s.player.ReputationElapsed
	cp.Energy = s.player.Energy
	return cp
}

// Vault returns copies of the recorded songs, oldest first.
func (s *Studio) Vault() []model.Release {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Release, len(s.vault))
	for i, song := range s.vault {
		out[i] = song.Snapshot()
	}
	return out
}

// Trending returns the genre currently favoured by the market, or "" before
// the first frame with a release.
func (s *Studio) Trending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, genre := s.economy.Trend().Current()
	return genre
}

// Ticks counts economy ticks run so far.
func (s *Studio) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.Ticks()
}

func (s *Studio) findLocked(id string) *model.Release {
	for _, song := range s.vault {
		if song.ID == id {
			return song
		}
	}
	return nil
}

func (s *Studio) priceLocked(kind model.Kind, q, price float64) float64 {
	if price <= 0 {
		return s.economy.RecommendedPrice(kind, q)
	}
	return price
}
