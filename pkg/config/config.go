package config

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/trajectory/pkg/game/constants"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. TRAJECTORY_SESSION_SCALEFACTOR.
const EnvPrefix = "TRAJECTORY"

// Config is the full configuration of a simulator process.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	Session  SessionConfig  `mapstructure:"session"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	API      APIConfig      `mapstructure:"api"`
}

// SessionConfig holds the measurement and recording constants.
type SessionConfig struct {
	// ScaleFactor is in pixels per meter
	ScaleFactor    float64 `mapstructure:"scaleFactor"`
	SampleInterval uint64  `mapstructure:"sampleInterval"`
	BarrelLength   float64 `mapstructure:"barrelLength"`
	// DragCoefficient is applied when drag is switched on
	DragCoefficient  float64 `mapstructure:"dragCoefficient"`
	LandedFriction   float64 `mapstructure:"landedFriction"`
	StrictInvariants bool    `mapstructure:"strictInvariants"`
}

// EngineConfig holds the reference engine constants.
type EngineConfig struct {
	Gravity          float64 `mapstructure:"gravity"`
	GravityScale     float64 `mapstructure:"gravityScale"`
	TickMillis       float64 `mapstructure:"tickMillis"`
	GroundHeight     float64 `mapstructure:"groundHeight"`
	GroundWidth      float64 `mapstructure:"groundWidth"`
	ProjectileRadius float64 `mapstructure:"projectileRadius"`
	Restitution      float64 `mapstructure:"restitution"`
	Friction         float64 `mapstructure:"friction"`
	CellSize         int     `mapstructure:"cellSize"`
}

// GravityPerTick returns the gravity acceleration in pixels per tick squared.
func (e EngineConfig) GravityPerTick() float64 {
	return e.Gravity * e.GravityScale * e.TickMillis * e.TickMillis
}

// ViewportConfig describes the visible play area and the cannon placement.
type ViewportConfig struct {
	Width        float64 `mapstructure:"width"`
	Height       float64 `mapstructure:"height"`
	CannonX      float64 `mapstructure:"cannonX"`
	CannonRadius float64 `mapstructure:"cannonRadius"`
}

// Origin returns the launch origin for a viewport of the given height,
// resting the cannon on top of the ground.
func (v ViewportConfig) Origin(height float64, groundHeight float64) kinematic.Vector {
	return kinematic.Vector{
		X: v.CannonX,
		Y: height - groundHeight - v.CannonRadius,
	}
}

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
	// FireRate is the number of fire commands accepted per second
	FireRate  float64 `mapstructure:"fireRate"`
	FireBurst int     `mapstructure:"fireBurst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("session.scaleFactor", constants.ScaleFactor)
	v.SetDefault("session.sampleInterval", constants.SampleInterval)
	v.SetDefault("session.barrelLength", constants.BarrelLength)
	v.SetDefault("session.dragCoefficient", constants.DragCoefficient)
	v.SetDefault("session.landedFriction", constants.LandedFriction)
	v.SetDefault("session.strictInvariants", false)

	v.SetDefault("engine.gravity", constants.Gravity)
	v.SetDefault("engine.gravityScale", constants.GravityScale)
	v.SetDefault("engine.tickMillis", constants.TickMillis)
	v.SetDefault("engine.groundHeight", constants.GroundHeight)
	v.SetDefault("engine.groundWidth", constants.GroundWidth)
	v.SetDefault("engine.projectileRadius", constants.ProjectileRadius)
	v.SetDefault("engine.restitution", constants.ProjectileRestitution)
	v.SetDefault("engine.friction", constants.ProjectileFriction)
	v.SetDefault("engine.cellSize", 32)

	v.SetDefault("viewport.width", constants.ViewportWidth)
	v.SetDefault("viewport.height", constants.ViewportHeight)
	v.SetDefault("viewport.cannonX", constants.CannonX)
	v.SetDefault("viewport.cannonRadius", constants.CannonRadius)

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.fireRate", 5.0)
	v.SetDefault("api.fireBurst", 10)
}

// Default returns the configuration with every value at its default.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults always validate
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// Load reads configuration from the file at path, if any, applies
// environment overrides and fills in defaults for everything else.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values the simulator divides by or steps with.
func (c *Config) Validate() error {
	if c.Session.ScaleFactor <= 0 {
		return fmt.Errorf("session.scaleFactor must be positive, got %v", c.Session.ScaleFactor)
	}
	if c.Session.SampleInterval == 0 {
		return fmt.Errorf("session.sampleInterval must be positive")
	}
	if c.Engine.TickMillis <= 0 {
		return fmt.Errorf("engine.tickMillis must be positive, got %v", c.Engine.TickMillis)
	}
	if c.Engine.CellSize <= 0 {
		return fmt.Errorf("engine.cellSize must be positive, got %d", c.Engine.CellSize)
	}
	if c.Viewport.Height <= c.Engine.GroundHeight {
		return fmt.Errorf("viewport.height %v must exceed engine.groundHeight %v", c.Viewport.Height, c.Engine.GroundHeight)
	}
	return nil
}
