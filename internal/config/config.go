package config

import (
	"errors"
	"os"

	"bidwise/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Dataset is the path to the replay log (CSV or XLSX).
	Dataset string `yaml:"dataset"`
	// ModelDir holds the scoring model artifacts.
	ModelDir string         `yaml:"model_dir"`
	Budget   float64        `yaml:"budget"`
	Strategy StrategyConfig `yaml:"strategy"`
}

type StrategyConfig struct {
	Name             string  `yaml:"name"`
	BaseBid          float64 `yaml:"base_bid"`
	ConversionWeight int     `yaml:"conversion_weight"`
	DeviceTargeting  string  `yaml:"device_targeting"`
	ActiveHours      []int   `yaml:"active_hours"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.ModelDir == "" {
		c.ModelDir = "models"
	}
	if c.Budget == 0 {
		c.Budget = 10000
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = string(model.StrategyBaseline)
	}
	if c.Strategy.BaseBid == 0 {
		c.Strategy.BaseBid = 10
	}
	if c.Strategy.ConversionWeight == 0 {
		c.Strategy.ConversionWeight = 5
	}
	if c.Strategy.DeviceTargeting == "" {
		c.Strategy.DeviceTargeting = string(model.TargetAll)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset is required")
	}
	if c.Budget <= 0 {
		return errors.New("budget must be > 0")
	}
	_, err := c.Strategy.ToParams()
	return err
}

// ToParams converts the YAML strategy block into validated run parameters.
func (sc StrategyConfig) ToParams() (model.StrategyParams, error) {
	p := model.StrategyParams{
		Strategy:         model.Strategy(sc.Name),
		BaseBid:          sc.BaseBid,
		ConversionWeight: sc.ConversionWeight,
		DeviceTargeting:  model.Targeting(sc.DeviceTargeting),
		ActiveHours:      sc.ActiveHours,
	}
	if err := p.Validate(); err != nil {
		return model.StrategyParams{}, err
	}
	return p, nil
}
