package orchard

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Box is a rectangle described by its center and size, the way the stage
// geometry is authored.
type Box struct {
	CenterX float64 `yaml:"cx"`
	CenterY float64 `yaml:"cy"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// Rect converts the box to a top-left Rect.
func (b Box) Rect() Rect {
	return RectCentered(b.CenterX, b.CenterY, b.Width, b.Height)
}

// ZonesConfig holds the three zone rectangles.
type ZonesConfig struct {
	Matrix Box `yaml:"matrix"`
	Cart   Box `yaml:"cart"`
	Bin    Box `yaml:"bin"`
}

// Config holds the stage tuning. Durations are in seconds. The sample file
// configs/orchard.yaml lists every field.
type Config struct {
	WorldWidth  float64 `yaml:"worldWidth"`
	WorldHeight float64 `yaml:"worldHeight"`
	Ground      float64 `yaml:"ground"`

	Zones ZonesConfig `yaml:"zones"`

	FruitRadius float64 `yaml:"fruitRadius"`

	// Impact and Effort project x and y into the [0, 100] reporting space.
	Impact LinearScale `yaml:"impact"`
	Effort LinearScale `yaml:"effort"`

	// Decay is the exponential-decay rate of transitions, per second.
	Decay float64 `yaml:"decay"`
	// Precision is the number of decimals at which a transition snaps.
	Precision int `yaml:"precision"`

	PersistInterval float64 `yaml:"persistInterval"`
	StorageKey      string  `yaml:"storageKey"`

	ClearDelay    float64 `yaml:"clearDelay"`
	ShoveDistance float64 `yaml:"shoveDistance"`

	LidOpenAngle float64 `yaml:"lidOpenAngle"`
	FlowerSpin   float64 `yaml:"flowerSpin"`
}

// DefaultConfig returns the stage geometry and timings of the 1600x1600 tree.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  1600,
		WorldHeight: 1600,
		Ground:      64,
		Zones: ZonesConfig{
			Matrix: Box{CenterX: 800, CenterY: 672, Width: 960, Height: 960},
			Cart:   Box{CenterX: 1248, CenterY: 1392, Width: 384, Height: 288},
			Bin:    Box{CenterX: 384, CenterY: 1438, Width: 128, Height: 208},
		},
		FruitRadius:     36,
		Impact:          LinearScale{Min: 320, Max: 1280},
		Effort:          LinearScale{Min: 192, Max: 1152},
		Decay:           12,
		Precision:       4,
		PersistInterval: 1,
		StorageKey:      "data",
		ClearDelay:      0.6,
		ShoveDistance:   576,
		LidOpenAngle:    -math.Pi / 2 * 1.5,
		FlowerSpin:      1,
	}
}

// LoadConfig reads the YAML config file at path. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read orchard config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse orchard config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid orchard config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the geometry is usable and the timings are sane.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world size must be positive, got %.1fx%.1f", c.WorldWidth, c.WorldHeight)
	}
	zones := []struct {
		name string
		box  Box
	}{
		{"matrix", c.Zones.Matrix},
		{"cart", c.Zones.Cart},
		{"bin", c.Zones.Bin},
	}
	for _, z := range zones {
		if z.box.Width <= 0 || z.box.Height <= 0 {
			return fmt.Errorf("zone %s has degenerate size %.1fx%.1f", z.name, z.box.Width, z.box.Height)
		}
	}
	if c.FruitRadius <= 0 {
		return fmt.Errorf("fruitRadius must be positive, got %.1f", c.FruitRadius)
	}
	if c.Impact.Min >= c.Impact.Max {
		return fmt.Errorf("impact range invalid: min(%.1f) >= max(%.1f)", c.Impact.Min, c.Impact.Max)
	}
	if c.Effort.Min >= c.Effort.Max {
		return fmt.Errorf("effort range invalid: min(%.1f) >= max(%.1f)", c.Effort.Min, c.Effort.Max)
	}
	if c.Decay <= 0 {
		return fmt.Errorf("decay must be positive, got %.2f", c.Decay)
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("precision out of range: %d", c.Precision)
	}
	if c.PersistInterval < 0 || c.ClearDelay < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storageKey must not be empty")
	}
	return nil
}
