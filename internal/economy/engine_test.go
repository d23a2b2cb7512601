package economy

import (
	"math"
	"testing"

	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/config"
	"MusicTycoon/internal/fanbase"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/random"
	"MusicTycoon/internal/trend"
)

type recordingSink struct{ events []model.Event }

func (r *recordingSink) Publish(e model.Event) { r.events = append(r.events, e) }

func newTestEngine(cfg *config.Config, rng random.Source, sink model.EventSink) *Engine {
	cycle := trend.NewCycle(cfg.Trend, rng, sink)
	fans := fanbase.NewModel(cfg.Fanbase, cfg.Reputation.Cap, rng, sink)
	return NewEngine(cfg.Economy, rng, sink, cycle, fans)
}

func fairSingle(cfg *config.Config, q float64) *model.Release {
	return &model.Release{
		Name:    "Test Single",
		Genre:   "Rock", // the stub trends Pop
		Kind:    model.KindSingle,
		Quality: q,
		Price:   RecommendedPrice(cfg.Economy, model.KindSingle, q),
		Hype:    1.0,
	}
}

func TestAdvance_EmptyCatalogIsNoop(t *testing.T) {
	cfg := config.Default()
	stub := &random.Stub{}
	e := newTestEngine(cfg, stub, nil)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 10, Cash: 50}

	clk.Advance(1)
	if e.Advance(clk, nil, nil, p) {
		t.Fatal("empty catalog should not tick")
	}
	if len(stub.Calls) != 0 {
		t.Errorf("empty catalog drew randomness: %v", stub.Calls)
	}
	if p.Cash != 50 || p.Fans != 10 {
		t.Errorf("player changed: %+v", p)
	}
}

func TestAdvance_FairSingleEndToEnd(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(cfg, &random.Stub{}, nil)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 0, Cash: 50}
	song := fairSingle(cfg, 80)

	clk.Advance(cfg.Economy.TickSeconds)
	if !e.Advance(clk, []*model.Release{song}, nil, p) {
		t.Fatal("expected one tick")
	}

	if song.DailyStreams < 0 || song.TotalSales < 0 {
		t.Fatalf("negative stats: %+v", song)
	}
	// 50 listeners * 1.2 retention at fair price, no trend, no reputation.
	if song.TotalStreams != 60 {
		t.Errorf("streams = %d, want 60", song.TotalStreams)
	}
	want := float64(song.TotalStreams)*0.004 + float64(song.TotalSales)*song.Price
	if song.Earnings != want {
		t.Errorf("earnings = %f, want %f", song.Earnings, want)
	}
	if p.Cash != 50+song.Earnings {
		t.Errorf("cash = %f, want %f", p.Cash, 50+song.Earnings)
	}
	if math.Abs(song.Hype-0.99) > 1e-12 {
		t.Errorf("hype = %f, want 0.99", song.Hype)
	}
	if p.Fans < 0 {
		t.Errorf("fans = %d", p.Fans)
	}
	if math.Abs(song.Age-cfg.Economy.TickSeconds) > 1e-12 {
		t.Errorf("age = %f", song.Age)
	}
}

func TestAdvance_SmallStepsMatchOneTick(t *testing.T) {
	cfg := config.Default()

	run := func(steps int, dt float64) (*model.Release, *model.Player, *Engine) {
		e := newTestEngine(cfg, &random.Stub{}, nil)
		clk := &clock.SimulationClock{}
		p := &model.Player{Fans: 500, Cash: 50}
		song := fairSingle(cfg, 75)
		for i := 0; i < steps; i++ {
			clk.Advance(dt)
			e.Advance(clk, []*model.Release{song}, nil, p)
		}
		return song, p, e
	}

	smallSong, smallPlayer, smallEngine := run(10, 0.02)
	bigSong, bigPlayer, bigEngine := run(1, 0.2)

	if smallEngine.Ticks() != 1 || bigEngine.Ticks() != 1 {
		t.Fatalf("ticks = %d / %d, want 1 / 1", smallEngine.Ticks(), bigEngine.Ticks())
	}
	if smallSong.TotalStreams != bigSong.TotalStreams || smallSong.Earnings != bigSong.Earnings {
		t.Errorf("small steps %+v differ from one step %+v", smallSong, bigSong)
	}
	if smallPlayer.Cash != bigPlayer.Cash || smallPlayer.Fans != bigPlayer.Fans {
		t.Errorf("player mismatch: %+v vs %+v", smallPlayer, bigPlayer)
	}
}

func TestAdvance_DeadReleaseEarnsNothing(t *testing.T) {
	cfg := config.Default()
	stub := &random.Stub{}
	e := newTestEngine(cfg, stub, nil)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 1000, Cash: 50}
	dead := fairSingle(cfg, 90)
	dead.Hype = cfg.Economy.DeadHypeThreshold
	dead.DailyStreams = 12

	for i := 0; i < 5; i++ {
		clk.Advance(cfg.Economy.TickSeconds)
		e.Advance(clk, []*model.Release{dead}, nil, p)
	}

	if dead.DailyStreams != 0 || dead.TotalStreams != 0 || dead.TotalSales != 0 || dead.Earnings != 0 {
		t.Errorf("dead release still performing: %+v", dead)
	}
	if dead.Hype > cfg.Economy.DeadHypeThreshold {
		t.Errorf("dead hype rose to %f", dead.Hype)
	}
	if p.Cash != 50 {
		t.Errorf("cash changed to %f", p.Cash)
	}
}

func TestAdvance_TrendSampledOncePerFrame(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(cfg, random.NewEngine(3), nil)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 100, Cash: 50}

	var songs []*model.Release
	for i := 0; i < 8; i++ {
		songs = append(songs, fairSingle(cfg, 60))
	}
	albums := []*model.Release{{Kind: model.KindAlbum, Genre: "Jazz", Quality: 70, Price: 5.49, Hype: 1}}

	// 225 seconds in whole-second frames give exactly five rotations however
	// many releases share a frame. The frame that starts the cycle counts.
	for i := 0; i < 225; i++ {
		clk.Advance(1)
		e.Advance(clk, songs, albums, p)
		// A second reader in the same frame must not advance the cycle.
		e.Trend().Sample(clk)
	}
	if got := e.Trend().Rotations(); got != 5 {
		t.Fatalf("rotations = %d, want 5", got)
	}
}

func TestAdvance_TrendBonusAppliesToTrendingGenre(t *testing.T) {
	cfg := config.Default()
	clk := &clock.SimulationClock{}
	clk.Advance(cfg.Economy.TickSeconds)

	plain := fairSingle(cfg, 80)
	e := newTestEngine(cfg, &random.Stub{}, nil)
	e.Advance(clk, []*model.Release{plain}, nil, &model.Player{})

	hot := fairSingle(cfg, 80)
	hot.Genre = "Pop"
	e = newTestEngine(cfg, &random.Stub{}, nil)
	e.Advance(clk, []*model.Release{hot}, nil, &model.Player{})

	// Stub trend multiplier is the mean, 0.5.
	if hot.TotalStreams != 90 || plain.TotalStreams != 60 {
		t.Errorf("streams hot=%d plain=%d, want 90 and 60", hot.TotalStreams, plain.TotalStreams)
	}
}

func TestAdvance_OverpricingCutsDemand(t *testing.T) {
	cfg := config.Default()
	clk := &clock.SimulationClock{}
	clk.Advance(cfg.Economy.TickSeconds)

	fair := fairSingle(cfg, 80)
	pricey := fairSingle(cfg, 80)
	pricey.Price *= 2

	newTestEngine(cfg, &random.Stub{}, nil).Advance(clk, []*model.Release{fair}, nil, &model.Player{})
	newTestEngine(cfg, &random.Stub{}, nil).Advance(clk, []*model.Release{pricey}, nil, &model.Player{})

	if pricey.TotalStreams >= fair.TotalStreams {
		t.Errorf("overpriced streams %d should trail fair %d", pricey.TotalStreams, fair.TotalStreams)
	}
}

func TestAdvance_ScandalAndChurnNeverNegative(t *testing.T) {
	cfg := config.Default()
	cfg.Economy.Churn.ScandalLoss = 1
	sink := &recordingSink{}
	e := newTestEngine(cfg, &random.Stub{Always: true}, sink)
	clk := &clock.SimulationClock{}
	p := &model.Player{Name: "Test", Fans: 1234, Cash: 0}
	song := fairSingle(cfg, 10)

	for i := 0; i < 10; i++ {
		clk.Advance(cfg.Economy.TickSeconds)
		e.Advance(clk, []*model.Release{song}, nil, p)
		if p.Fans < 0 {
			t.Fatalf("fans went negative: %d", p.Fans)
		}
	}
	scandals := 0
	for _, evt := range sink.events {
		if evt.Kind == model.EventScandal {
			scandals++
		}
	}
	if scandals == 0 {
		t.Error("expected a scandal event")
	}
	if p.Fans != 0 {
		t.Errorf("total scandal should wipe the fanbase, have %d", p.Fans)
	}
}

func TestGlobalChurn(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name  string
		fans  int
		daily int
		want  int
	}{
		{"quiet small act", 10_000, 0, 10},      // 0.0005 doubled
		{"busy small act", 10_000, 500, 5},      // 0.0005
		{"busy large act", 200_000, 5000, 200},  // 0.001
		{"quiet large act", 200_000, 0, 400},    // 0.001 doubled
		{"no fans", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(cfg, &random.Stub{}, nil)
			p := &model.Player{Fans: tt.fans}
			got := e.globalChurn(p, tt.daily, 0)
			if got < tt.want-1 || got > tt.want {
				t.Errorf("lost %d, want %d", got, tt.want)
			}
			if p.Fans != tt.fans-got {
				t.Errorf("fans = %d, want %d", p.Fans, tt.fans-got)
			}
		})
	}
}

func TestAdvance_ViralMomentStillDecaysHype(t *testing.T) {
	cfg := config.Default()
	sink := &recordingSink{}
	// First Chance is the fan rounding draw, second is the viral roll.
	e := newTestEngine(cfg, &random.Stub{Chances: []bool{false, true}}, sink)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 0, Cash: 50}
	song := fairSingle(cfg, 80)

	clk.Advance(cfg.Economy.TickSeconds)
	if !e.Advance(clk, []*model.Release{song}, nil, p) {
		t.Fatal("expected one tick")
	}
	viral := 0
	for _, evt := range sink.events {
		if evt.Kind == model.EventViral {
			viral++
		}
	}
	if viral != 1 {
		t.Fatalf("viral events = %d, want 1", viral)
	}
	if math.Abs(song.Hype-0.99) > 1e-12 {
		t.Errorf("hype = %f, want 0.99 after a viral tick", song.Hype)
	}
	if got := e.LastTick().Viral; got != 96 {
		t.Errorf("viral fans = %d, want 96", got)
	}
}

func TestAdvance_LastTickSumsCatalog(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(cfg, &random.Stub{}, nil)
	clk := &clock.SimulationClock{}
	p := &model.Player{Fans: 0, Cash: 0}
	a, b := fairSingle(cfg, 80), fairSingle(cfg, 80)

	clk.Advance(cfg.Economy.TickSeconds)
	e.Advance(clk, []*model.Release{a, b}, nil, p)

	got := e.LastTick()
	if got.Streams != a.TotalStreams+b.TotalStreams || got.Streams != 120 {
		t.Errorf("tick streams = %d, want 120", got.Streams)
	}
	if math.Abs(got.Revenue-(a.Earnings+b.Earnings)) > 1e-9 {
		t.Errorf("tick revenue = %f, want %f", got.Revenue, a.Earnings+b.Earnings)
	}
	if math.Abs(got.Revenue-p.Cash) > 1e-9 {
		t.Errorf("tick revenue = %f, cash = %f", got.Revenue, p.Cash)
	}
}
