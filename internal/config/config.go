package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ReleaseProfile holds the tuning that differs between singles and albums.
type ReleaseProfile struct {
	DiscoveryMean   float64 `yaml:"discovery_mean"`
	DiscoveryStdDev float64 `yaml:"discovery_stddev"`
	FanReach        float64 `yaml:"fan_reach"`
	SaleRate        float64 `yaml:"sale_rate"`
	BasePrice       float64 `yaml:"base_price"`
	PricePerQuality float64 `yaml:"price_per_quality"`
	DecayHigh       float64 `yaml:"decay_high"` // hype decay when quality is above the decay threshold
	DecayLow        float64 `yaml:"decay_low"`
	SeedHypePerFan  float64 `yaml:"seed_hype_per_fan"`
	LifetimeSeconds float64 `yaml:"lifetime_seconds"`
}

// Churn configures the once-per-tick global fan loss and scandals.
type Churn struct {
	BaseRate              float64 `yaml:"base_rate"`
	LargeFanbaseRate      float64 `yaml:"large_fanbase_rate"`
	LargeFanbaseThreshold int     `yaml:"large_fanbase_threshold"`
	InactivityStreams     int     `yaml:"inactivity_streams"` // below this many daily streams churn doubles
	ScandalChance         float64 `yaml:"scandal_chance"`
	ScandalLoss           float64 `yaml:"scandal_loss"`
}

// Economy holds the tick-level market constants.
type Economy struct {
	StreamPayoutRate      float64        `yaml:"stream_payout_rate"`
	TickSeconds           float64        `yaml:"tick_seconds"`
	PriceElasticity       float64        `yaml:"price_elasticity"`
	MaxDemandMultiplier   float64        `yaml:"max_demand_multiplier"`
	DeadHypeThreshold     float64        `yaml:"dead_hype_threshold"`
	DecayQualityThreshold float64        `yaml:"decay_quality_threshold"`
	ReputationStreamBoost float64        `yaml:"reputation_stream_boost"` // extra streams per reputation point
	HypeSoftCap           float64        `yaml:"hype_soft_cap"`
	Single                ReleaseProfile `yaml:"single"`
	Album                 ReleaseProfile `yaml:"album"`
	Churn                 Churn          `yaml:"churn"`
}

// Fanbase holds the per-release fan conversion constants.
type Fanbase struct {
	BaseConversionRate    float64 `yaml:"base_conversion_rate"`
	QualityThreshold      float64 `yaml:"quality_threshold"`
	QualityScale          float64 `yaml:"quality_scale"`
	QualityExponent       float64 `yaml:"quality_exponent"`
	HypeFloor             float64 `yaml:"hype_floor"`
	SaturationPivot       float64 `yaml:"saturation_pivot"`
	SaturationFloor       float64 `yaml:"saturation_floor"`
	ViralChancePerHype    float64 `yaml:"viral_chance_per_hype"`
	ViralMinQuality       float64 `yaml:"viral_min_quality"`
	ViralMinHype          float64 `yaml:"viral_min_hype"`
	ViralStreamMultiplier float64 `yaml:"viral_stream_multiplier"`
	ChurnBase             float64 `yaml:"churn_base"`
	ChurnLowQuality       float64 `yaml:"churn_low_quality"`
	LowQualityThreshold   float64 `yaml:"low_quality_threshold"`
	ChurnLowHype          float64 `yaml:"churn_low_hype"`
	LowHypeThreshold      float64 `yaml:"low_hype_threshold"`
	MaxLoyaltyReduction   float64 `yaml:"max_loyalty_reduction"` // churn reduction at max reputation
}

// Trend configures the genre rotation.
type Trend struct {
	PeriodSeconds float64  `yaml:"period_seconds"`
	BonusMean     float64  `yaml:"bonus_mean"`
	BonusStdDev   float64  `yaml:"bonus_stddev"`
	MinBonus      float64  `yaml:"min_bonus"`
	Genres        []string `yaml:"genres"`
}

// Reputation configures the slow reputation recomputation.
type Reputation struct {
	PeriodSeconds  float64 `yaml:"period_seconds"`
	Cap            float64 `yaml:"cap"`
	QualityDivisor float64 `yaml:"quality_divisor"`
}

// Player is the starting state of a new session.
type Player struct {
	Name   string             `yaml:"name"`
	Fans   int                `yaml:"fans"`
	Cash   float64            `yaml:"cash"`
	Skills map[string]float64 `yaml:"skills"`
	Tools  map[string]float64 `yaml:"tools"`
}

// Upgrade is one purchasable step for a skill or a piece of studio gear.
type Upgrade struct {
	Name string  `yaml:"name"`
	Cost float64 `yaml:"cost"`
	Gain float64 `yaml:"gain"` // levels added per purchase
}

// BuskShift is one busking slot: the minutes played and the energy it costs.
type BuskShift struct {
	Minutes float64 `yaml:"minutes"`
	Energy  float64 `yaml:"energy"`
}

// Career holds the player's own actions between releases: training,
// gear upgrades, busking and rest.
type Career struct {
	StudyGain     float64     `yaml:"study_gain"` // free practice
	MaxSkill      float64     `yaml:"max_skill"`
	SkillTiers    []Upgrade   `yaml:"skill_tiers"`
	ToolTiers     []Upgrade   `yaml:"tool_tiers"`
	StartEnergy   float64     `yaml:"start_energy"`
	MaxEnergy     float64     `yaml:"max_energy"`
	RestEnergy    float64     `yaml:"rest_energy"`
	BuskShifts    []BuskShift `yaml:"busk_shifts"`
	BuskLuckMin   float64     `yaml:"busk_luck_min"`
	BuskLuckMax   float64     `yaml:"busk_luck_max"`
	BuskPayFactor float64     `yaml:"busk_pay_factor"` // dollars per minute per unit of luck
}

// Autopilot drives recording and releasing in headless runs.
type Autopilot struct {
	Enabled            bool    `yaml:"enabled"`
	SingleEverySeconds float64 `yaml:"single_every_seconds"`
	AlbumEverySeconds  float64 `yaml:"album_every_seconds"`
	AlbumTracks        int     `yaml:"album_tracks"`
	TrainEverySeconds  float64 `yaml:"train_every_seconds"`
	CashReserve        float64 `yaml:"cash_reserve"` // never spent on upgrades
}

// Config holds all application configuration.
type Config struct {
	Economy    Economy    `yaml:"economy"`
	Fanbase    Fanbase    `yaml:"fanbase"`
	Trend      Trend      `yaml:"trend"`
	Reputation Reputation `yaml:"reputation"`
	Player     Player     `yaml:"player"`
	Career     Career     `yaml:"career"`
	Autopilot  Autopilot  `yaml:"autopilot"`
	Simulation struct {
		Seed      int64   `yaml:"seed"`
		FrameRate int     `yaml:"frame_rate"`
		LogSize   int     `yaml:"log_size"`
		Speed     float64 `yaml:"speed"`
	} `yaml:"simulation"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
		ReportCron   string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		Dialect     string `yaml:"dialect"` // "sqlite", "postgres" or "none"
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"database"`
}

// Default returns the canonical tuning.
func Default() *Config {
	cfg := &Config{
		Economy: Economy{
			StreamPayoutRate:      0.004,
			TickSeconds:           0.2,
			PriceElasticity:       2.5,
			MaxDemandMultiplier:   3.0,
			DeadHypeThreshold:     0.01,
			DecayQualityThreshold: 70,
			ReputationStreamBoost: 0.05,
			HypeSoftCap:           3.0,
			Single: ReleaseProfile{
				DiscoveryMean:   50,
				DiscoveryStdDev: 15,
				FanReach:        0.05,
				SaleRate:        1.0 / 800.0,
				BasePrice:       0.69,
				PricePerQuality: 0.10,
				DecayHigh:       0.99,
				DecayLow:        0.96,
				SeedHypePerFan:  0.0005,
				LifetimeSeconds: 300,
			},
			Album: ReleaseProfile{
				DiscoveryMean:   100,
				DiscoveryStdDev: 30,
				FanReach:        0.12,
				SaleRate:        1.0 / 1200.0,
				BasePrice:       1.99,
				PricePerQuality: 0.05,
				DecayHigh:       0.995,
				DecayLow:        0.98,
				SeedHypePerFan:  0.001,
				LifetimeSeconds: 500,
			},
			Churn: Churn{
				BaseRate:              0.0005,
				LargeFanbaseRate:      0.001,
				LargeFanbaseThreshold: 100_000,
				InactivityStreams:     10,
				ScandalChance:         0.002,
				ScandalLoss:           0.03,
			},
		},
		Fanbase: Fanbase{
			BaseConversionRate:    0.01,
			QualityThreshold:      40,
			QualityScale:          1.5,
			QualityExponent:       2,
			HypeFloor:             0.1,
			SaturationPivot:       10_000,
			SaturationFloor:       0.1,
			ViralChancePerHype:    0.0005,
			ViralMinQuality:       70,
			ViralMinHype:          0.5,
			ViralStreamMultiplier: 2.0,
			ChurnBase:             0.0005,
			ChurnLowQuality:       0.002,
			LowQualityThreshold:   35,
			ChurnLowHype:          0.001,
			LowHypeThreshold:      0.2,
			MaxLoyaltyReduction:   0.5,
		},
		Trend: Trend{
			PeriodSeconds: 45,
			BonusMean:     0.5,
			BonusStdDev:   0.1,
			MinBonus:      0.1,
			Genres:        []string{"Pop", "Rock", "Hip-Hop", "R&B", "Jazz", "Classical", "Electronic"},
		},
		Reputation: Reputation{
			PeriodSeconds:  5,
			Cap:            5,
			QualityDivisor: 100,
		},
		Player: Player{
			Name: "The Architect",
			Fans: 100,
			Cash: 50,
			Skills: map[string]float64{
				"Voice": 30, "Producing": 10, "Writing": 25,
				"Recording": 15, "Mixing": 10, "Mastering": 10,
			},
			Tools: map[string]float64{
				"Mic": 1.0, "Live Mixer": 0.3, "Soundboard": 0.9,
				"Acoustics": 0.5, "Audio Editor": 0.3, "Computer": 0.3,
			},
		},
		Career: Career{
			StudyGain: 0.1,
			MaxSkill:  100,
			SkillTiers: []Upgrade{
				{Name: "course", Cost: 50, Gain: 1},
				{Name: "mentor", Cost: 250, Gain: 2.5},
			},
			ToolTiers: []Upgrade{
				{Name: "minor", Cost: 10, Gain: 1},
				{Name: "average", Cost: 100, Gain: 2},
				{Name: "major", Cost: 500, Gain: 3.5},
			},
			StartEnergy: 100,
			MaxEnergy:   100,
			RestEnergy:  100,
			BuskShifts: []BuskShift{
				{Minutes: 30, Energy: 5},
				{Minutes: 60, Energy: 10},
				{Minutes: 90, Energy: 15},
				{Minutes: 120, Energy: 25},
			},
			BuskLuckMin:   0.1,
			BuskLuckMax:   0.3,
			BuskPayFactor: 2,
		},
		Autopilot: Autopilot{
			Enabled:            true,
			SingleEverySeconds: 20,
			AlbumEverySeconds:  120,
			AlbumTracks:        8,
			TrainEverySeconds:  15,
			CashReserve:        25,
		},
	}
	cfg.Simulation.FrameRate = 60
	cfg.Simulation.LogSize = 100
	cfg.Simulation.Speed = 1
	cfg.Schedule.SnapshotCron = "*/10 * * * * *"
	cfg.Schedule.ReportCron = "0 * * * * *"
	cfg.Database.Dialect = "sqlite"
	cfg.Database.SQLitePath = "data/tycoon.db"
	return cfg
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		// yaml.v3 merges into existing maps, so a file's skill and tool lists
		// replace the defaults instead of extending them.
		skills, tools := cfg.Player.Skills, cfg.Player.Tools
		cfg.Player.Skills, cfg.Player.Tools = nil, nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if cfg.Player.Skills == nil {
			cfg.Player.Skills = skills
		}
		if cfg.Player.Tools == nil {
			cfg.Player.Tools = tools
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TYCOON_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TYCOON_SEED: %w", err)
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv("TYCOON_FRAME_RATE"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.FrameRate = fps
		}
	}
	if v := os.Getenv("TYCOON_DB_DIALECT"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("TYCOON_SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}

	return cfg, nil
}

// Validate checks that every tunable lies in a usable range.
func (c *Config) Validate() error {
	e := c.Economy
	if e.TickSeconds <= 0 {
		return fmt.Errorf("economy.tick_seconds must be positive")
	}
	if e.StreamPayoutRate < 0 {
		return fmt.Errorf("economy.stream_payout_rate must not be negative")
	}
	if e.PriceElasticity <= 1 {
		return fmt.Errorf("economy.price_elasticity must be greater than 1")
	}
	if e.MaxDemandMultiplier <= 0 {
		return fmt.Errorf("economy.max_demand_multiplier must be positive")
	}
	if e.DeadHypeThreshold < 0 {
		return fmt.Errorf("economy.dead_hype_threshold must not be negative")
	}
	if err := e.Single.validate("economy.single"); err != nil {
		return err
	}
	if err := e.Album.validate("economy.album"); err != nil {
		return err
	}
	if e.Churn.ScandalLoss < 0 || e.Churn.ScandalLoss > 1 {
		return fmt.Errorf("economy.churn.scandal_loss must be within [0,1]")
	}
	if c.Fanbase.SaturationFloor <= 0 || c.Fanbase.SaturationFloor > 1 {
		return fmt.Errorf("fanbase.saturation_floor must be within (0,1]")
	}
	if c.Fanbase.QualityThreshold >= 100 {
		return fmt.Errorf("fanbase.quality_threshold must be below 100")
	}
	if c.Fanbase.MaxLoyaltyReduction < 0 || c.Fanbase.MaxLoyaltyReduction >= 1 {
		return fmt.Errorf("fanbase.max_loyalty_reduction must be within [0,1)")
	}
	if c.Trend.PeriodSeconds <= 0 {
		return fmt.Errorf("trend.period_seconds must be positive")
	}
	if len(c.Trend.Genres) == 0 {
		return fmt.Errorf("trend.genres must not be empty")
	}
	if c.Reputation.PeriodSeconds <= 0 {
		return fmt.Errorf("reputation.period_seconds must be positive")
	}
	if c.Reputation.Cap <= 0 {
		return fmt.Errorf("reputation.cap must be positive")
	}
	if c.Reputation.QualityDivisor <= 0 {
		return fmt.Errorf("reputation.quality_divisor must be positive")
	}
	if err := c.Career.validate(); err != nil {
		return err
	}
	if c.Simulation.FrameRate <= 0 {
		return fmt.Errorf("simulation.frame_rate must be positive")
	}
	switch c.Database.Dialect {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for sqlite")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("database.postgres_dsn (or DATABASE_URL) is required for postgres")
		}
	case "none", "":
	default:
		return fmt.Errorf("unsupported database.dialect %q", c.Database.Dialect)
	}
	return nil
}

func (p ReleaseProfile) validate(prefix string) error {
	if p.BasePrice <= 0 {
		return fmt.Errorf("%s.base_price must be positive", prefix)
	}
	if p.LifetimeSeconds <= 0 {
		return fmt.Errorf("%s.lifetime_seconds must be positive", prefix)
	}
	if p.DecayHigh <= 0 || p.DecayHigh > 1 || p.DecayLow <= 0 || p.DecayLow > 1 {
		return fmt.Errorf("%s decay factors must be within (0,1]", prefix)
	}
	if p.SaleRate < 0 || p.FanReach < 0 {
		return fmt.Errorf("%s rates must not be negative", prefix)
	}
	return nil
}

func (c Career) validate() error {
	if c.StudyGain < 0 {
		return fmt.Errorf("career.study_gain must not be negative")
	}
	if c.MaxSkill <= 0 {
		return fmt.Errorf("career.max_skill must be positive")
	}
	for _, tiers := range [][]Upgrade{c.SkillTiers, c.ToolTiers} {
		for _, u := range tiers {
			if u.Name == "" || u.Cost < 0 || u.Gain <= 0 {
				return fmt.Errorf("career upgrade %q needs a name, a non-negative cost and a positive gain", u.Name)
			}
		}
	}
	if c.MaxEnergy <= 0 || c.StartEnergy < 0 || c.StartEnergy > c.MaxEnergy {
		return fmt.Errorf("career energy must satisfy 0 <= start_energy <= max_energy")
	}
	for i, shift := range c.BuskShifts {
		if shift.Minutes <= 0 || shift.Energy < 0 {
			return fmt.Errorf("career.busk_shifts[%d] needs positive minutes and non-negative energy", i)
		}
		if i > 0 && shift.Minutes <= c.BuskShifts[i-1].Minutes {
			return fmt.Errorf("career.busk_shifts must be sorted by minutes")
		}
	}
	if c.BuskLuckMax < c.BuskLuckMin {
		return fmt.Errorf("career.busk_luck_max must not be below busk_luck_min")
	}
	return nil
}
