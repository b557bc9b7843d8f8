package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/skybastion/parameter"
)

// EnvPrefix prefixes environment overrides, e.g. SKYBASTION_COMBAT_REVIVEDELAY=30s
const EnvPrefix = "SKYBASTION"

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// MetricsConfig toggles the OpenTelemetry export of the status registry
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CombatConfig holds emplacement aim and group scheduling timers
type CombatConfig struct {
	SearchInterval    time.Duration `mapstructure:"searchInterval"`
	MaxFailedSearches int           `mapstructure:"maxFailedSearches"`
	MinLockDwell      time.Duration `mapstructure:"minLockDwell"`
	AimHysteresis     time.Duration `mapstructure:"aimHysteresis"`
	AimHold           time.Duration `mapstructure:"aimHold"`
	LockTimeout       time.Duration `mapstructure:"lockTimeout"`
	ReviveDelay       time.Duration `mapstructure:"reviveDelay"`
	ForceReviveDelay  time.Duration `mapstructure:"forceReviveDelay"`
	PerPlayerCap      int           `mapstructure:"perPlayerCap"`
	AssignRange       float64       `mapstructure:"assignRange"`
	ReassignInterval  time.Duration `mapstructure:"reassignInterval"`
}

// BossConfig holds boss hull thresholds
type BossConfig struct {
	HitPoints         int     `mapstructure:"hitPoints"`
	Band              int     `mapstructure:"band"`
	EscortCheckpoints []int   `mapstructure:"escortCheckpoints"`
	EscortCount       int     `mapstructure:"escortCount"`
	EscortRadius      float64 `mapstructure:"escortRadius"`
	Turrets           int     `mapstructure:"turrets"`
	SmallCannons      int     `mapstructure:"smallCannons"`
	BigCannons        int     `mapstructure:"bigCannons"`
}

// LockConfig holds player lock controller settings
type LockConfig struct {
	CircleRadius   float64 `mapstructure:"circleRadius"`
	MissileRange   float64 `mapstructure:"missileRange"`
	HalfFOVDegrees float64 `mapstructure:"halfFovDegrees"`
	Aspect         float64 `mapstructure:"aspect"`
	RequireLOS     bool    `mapstructure:"requireLos"`
}

// GaugeConfig holds resource gauge sizes
type GaugeConfig struct {
	ChargePeriod    time.Duration `mapstructure:"chargePeriod"`
	LaserCharges    int           `mapstructure:"laserCharges"`
	LaserLevelCap   int           `mapstructure:"laserLevelCap"`
	ThrusterCharges int           `mapstructure:"thrusterCharges"`
}

// SandboxConfig drives the combat sandbox host
type SandboxConfig struct {
	Tick     time.Duration `mapstructure:"tick"`
	Players  int           `mapstructure:"players"`
	Audio    bool          `mapstructure:"audio"`
	Headless bool          `mapstructure:"headless"`
	Duration time.Duration `mapstructure:"duration"`
}

// Config is the complete runtime configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Boss    BossConfig    `mapstructure:"boss"`
	Lock    LockConfig    `mapstructure:"lock"`
	Gauge   GaugeConfig   `mapstructure:"gauge"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
}

// flagKeys maps command line flag names onto config keys
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"metrics":   "metrics.enabled",
	"tick":      "sandbox.tick",
	"players":   "sandbox.players",
	"audio":     "sandbox.audio",
	"headless":  "sandbox.headless",
	"duration":  "sandbox.duration",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("combat.searchInterval", parameter.AimSearchInterval)
	v.SetDefault("combat.maxFailedSearches", parameter.AimMaxFailedSearches)
	v.SetDefault("combat.minLockDwell", parameter.AimMinLockDwell)
	v.SetDefault("combat.aimHysteresis", parameter.AimHysteresis)
	v.SetDefault("combat.aimHold", parameter.AimHoldDuration)
	v.SetDefault("combat.lockTimeout", parameter.AimLockTimeout)
	v.SetDefault("combat.reviveDelay", parameter.GroupReviveDelay)
	v.SetDefault("combat.forceReviveDelay", parameter.GroupForceReviveDelay)
	v.SetDefault("combat.perPlayerCap", parameter.GroupTurretPerPlayerCap)
	v.SetDefault("combat.assignRange", parameter.GroupTurretAssignRange)
	v.SetDefault("combat.reassignInterval", parameter.GroupReassignInterval)

	v.SetDefault("boss.hitPoints", parameter.CombatHPBoss)
	v.SetDefault("boss.band", parameter.BossBand)
	v.SetDefault("boss.escortCheckpoints", parameter.BossEscortCheckpoints)
	v.SetDefault("boss.escortCount", parameter.BossEscortCount)
	v.SetDefault("boss.escortRadius", parameter.BossEscortFormationRadius)
	v.SetDefault("boss.turrets", parameter.ScenarioTurrets)
	v.SetDefault("boss.smallCannons", parameter.ScenarioSmallCannons)
	v.SetDefault("boss.bigCannons", parameter.ScenarioBigCannons)

	v.SetDefault("lock.circleRadius", parameter.LockCircleRadius)
	v.SetDefault("lock.missileRange", parameter.LockMissileRange)
	v.SetDefault("lock.halfFovDegrees", parameter.LockHalfFOVDegrees)
	v.SetDefault("lock.aspect", parameter.LockAspect)
	v.SetDefault("lock.requireLos", parameter.LockRequireLineOfSight)

	v.SetDefault("gauge.chargePeriod", parameter.GaugeChargePeriod)
	v.SetDefault("gauge.laserCharges", parameter.GaugeLaserCharges)
	v.SetDefault("gauge.laserLevelCap", parameter.GaugeLaserLevelCap)
	v.SetDefault("gauge.thrusterCharges", parameter.GaugeThrusterCharges)

	v.SetDefault("sandbox.tick", parameter.GameUpdateInterval)
	v.SetDefault("sandbox.players", 1)
	v.SetDefault("sandbox.audio", false)
	v.SetDefault("sandbox.headless", false)
	v.SetDefault("sandbox.duration", time.Duration(0))
}

// Load builds the configuration from defaults, an optional config file, SKYBASTION_* environment
// variables and command line flags, in increasing precedence
// An empty path skips the file; the file type follows its extension and defaults to TOML
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		// Built-in defaults are constants; failure here is a programming error
		panic(err)
	}
	return cfg
}

// Validate rejects values the combat systems cannot run with
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	positive("combat.searchInterval", c.Combat.SearchInterval)
	positive("combat.reviveDelay", c.Combat.ReviveDelay)
	positive("combat.forceReviveDelay", c.Combat.ForceReviveDelay)
	positive("combat.reassignInterval", c.Combat.ReassignInterval)
	positive("gauge.chargePeriod", c.Gauge.ChargePeriod)
	positive("sandbox.tick", c.Sandbox.Tick)

	if c.Combat.MaxFailedSearches < 1 {
		errs = append(errs, fmt.Errorf("combat.maxFailedSearches must be at least 1, got %d", c.Combat.MaxFailedSearches))
	}
	if c.Combat.PerPlayerCap < 0 {
		errs = append(errs, fmt.Errorf("combat.perPlayerCap must not be negative, got %d", c.Combat.PerPlayerCap))
	}
	if c.Boss.Band <= 0 {
		errs = append(errs, fmt.Errorf("boss.band must be positive, got %d", c.Boss.Band))
	}
	if c.Boss.HitPoints <= 0 {
		errs = append(errs, fmt.Errorf("boss.hitPoints must be positive, got %d", c.Boss.HitPoints))
	}
	for i := 1; i < len(c.Boss.EscortCheckpoints); i++ {
		if c.Boss.EscortCheckpoints[i] >= c.Boss.EscortCheckpoints[i-1] {
			errs = append(errs, fmt.Errorf("boss.escortCheckpoints must be strictly descending at index %d", i))
			break
		}
	}
	if c.Lock.HalfFOVDegrees <= 0 || c.Lock.HalfFOVDegrees >= 90 {
		errs = append(errs, fmt.Errorf("lock.halfFovDegrees must be in (0, 90), got %g", c.Lock.HalfFOVDegrees))
	}
	if c.Gauge.LaserCharges < 1 || c.Gauge.ThrusterCharges < 1 {
		errs = append(errs, errors.New("gauge charges must be at least 1"))
	}
	if c.Sandbox.Players < 0 {
		errs = append(errs, fmt.Errorf("sandbox.players must not be negative, got %d", c.Sandbox.Players))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Tuning converts the combat sections into the parameter set read by systems
func (c *Config) Tuning() *parameter.Tuning {
	t := parameter.DefaultTuning()

	t.SearchInterval = c.Combat.SearchInterval
	t.MaxFailedSearches = c.Combat.MaxFailedSearches
	t.MinLockDwell = c.Combat.MinLockDwell
	t.AimHysteresis = c.Combat.AimHysteresis
	t.AimHoldDuration = c.Combat.AimHold
	t.LockTimeout = c.Combat.LockTimeout

	t.ReviveDelay = c.Combat.ReviveDelay
	t.ForceReviveDelay = c.Combat.ForceReviveDelay
	t.PerPlayerCap = c.Combat.PerPlayerCap
	t.AssignRange = c.Combat.AssignRange
	t.ReassignInterval = c.Combat.ReassignInterval

	t.BossBand = c.Boss.Band
	t.EscortCheckpoints = append([]int(nil), c.Boss.EscortCheckpoints...)
	t.EscortCount = c.Boss.EscortCount
	t.EscortRadius = c.Boss.EscortRadius

	t.LockCircleRadius = c.Lock.CircleRadius
	t.MissileRange = c.Lock.MissileRange
	t.HalfFOV = c.Lock.HalfFOVDegrees * parameter.DegToRad
	t.Aspect = c.Lock.Aspect
	t.RequireLOS = c.Lock.RequireLOS

	t.ChargePeriod = c.Gauge.ChargePeriod
	t.LaserCharges = c.Gauge.LaserCharges
	t.LaserLevelCap = c.Gauge.LaserLevelCap
	t.ThrusterCharges = c.Gauge.ThrusterCharges
	return t
}
