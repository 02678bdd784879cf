// Package config loads and persists the flight controller's JSON
// configuration file through viper, validating a fixed set of values before
// the process is allowed to arm (see Config.Validate).
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"flightcontrol/ferrors"
)

// PIDGains is one axis's (p,i,d) tuple.
type PIDGains struct {
	P float64 `mapstructure:"p" json:"p"`
	I float64 `mapstructure:"i" json:"i"`
	D float64 `mapstructure:"d" json:"d"`
}

// LowPassSpec is a biquad low-pass filter's design parameters.
type LowPassSpec struct {
	F  float64 `mapstructure:"f" json:"f"`
	Q  float64 `mapstructure:"q" json:"q"`
	Fs float64 `mapstructure:"fs" json:"fs"`
}

// AlphaBetaGammaSpec configures an alpha-beta-gamma tracker.
type AlphaBetaGammaSpec struct {
	Alpha float64 `mapstructure:"alpha" json:"alpha"`
	Beta  float64 `mapstructure:"beta" json:"beta"`
	Gamma float64 `mapstructure:"gamma" json:"gamma"`
}

// AlphaBetaSpec configures a scalar alpha-beta tracker (the PID D-term
// filter).
type AlphaBetaSpec struct {
	Alpha float64 `mapstructure:"alpha" json:"alpha"`
	Beta  float64 `mapstructure:"beta" json:"beta"`
}

// Config is the full set of values loaded from the JSON configuration
// file (§6).
type Config struct {
	LogLevelFilter string `mapstructure:"log_level_filter"`

	PIDValues struct {
		Roll  PIDGains `mapstructure:"roll" json:"roll"`
		Pitch PIDGains `mapstructure:"pitch" json:"pitch"`
		Yaw   PIDGains `mapstructure:"yaw" json:"yaw"`
	} `mapstructure:"pid_values" json:"pid_values"`

	Rates struct {
		Roll  float64 `mapstructure:"roll" json:"roll"`
		Pitch float64 `mapstructure:"pitch" json:"pitch"`
		Yaw   float64 `mapstructure:"yaw" json:"yaw"`
	} `mapstructure:"rates" json:"rates"`

	Limits struct {
		Roll  float64 `mapstructure:"roll" json:"roll"`
		Pitch float64 `mapstructure:"pitch" json:"pitch"`
	} `mapstructure:"limits" json:"limits"`

	CalibrationAcc [3]float64 `mapstructure:"calibration_acc" json:"calibration_acc"`
	CalibrationGyr [3]float64 `mapstructure:"calibration_gyr" json:"calibration_gyr"`

	AhrsMadgwickBeta *float64 `mapstructure:"ahrs_madgwick_beta" json:"ahrs_madgwick_beta"`

	InputRCRange struct {
		Min int `mapstructure:"min" json:"min"`
		Max int `mapstructure:"max" json:"max"`
	} `mapstructure:"input_rc_range" json:"input_rc_range"`

	OutputESCPins    [4]int  `mapstructure:"output_esc_pins" json:"output_esc_pins"`
	OutputESCMinValue float64 `mapstructure:"output_esc_min_value" json:"output_esc_min_value"`

	FilterGyrLowPass LowPassSpec        `mapstructure:"filter_gyr_low_pass" json:"filter_gyr_low_pass"`
	FilterGyrABG     AlphaBetaGammaSpec `mapstructure:"filter_gyr_abg" json:"filter_gyr_abg"`
	FilterAccLowPass LowPassSpec        `mapstructure:"filter_acc_low_pass" json:"filter_acc_low_pass"`
	FilterAccABG     AlphaBetaGammaSpec `mapstructure:"filter_acc_abg" json:"filter_acc_abg"`
	FilterDTermAB    AlphaBetaSpec      `mapstructure:"filter_d_term_ab" json:"filter_d_term_ab"`
}

var validLogLevels = map[string]bool{
	"none": true, "error": true, "warn": true, "info": true, "debug": true, "all": true,
}

// Load reads and validates the JSON configuration file at path.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("json")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrConfig, "reading config file %q", path)
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrConfig, "decoding config file %q", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast, per the startup fail-fast policy (it is safer to
// refuse to arm than to fly blind), when log_level_filter is not a known
// level, output_esc_min_value is outside [0,1], input_rc_range does not have
// min < max, or an output_esc_pins entry is negative. A key absent from the
// file is not reported as such: it decodes to its zero value and fails only
// if that value breaks one of these checks.
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevelFilter] {
		return ferrors.Wrap(ferrors.ErrConfig, "log_level_filter %q is not one of none/error/warn/info/debug/all", c.LogLevelFilter)
	}
	if c.OutputESCMinValue < 0 || c.OutputESCMinValue > 1 {
		return ferrors.Wrap(ferrors.ErrConfig, "output_esc_min_value %v must be in [0,1]", c.OutputESCMinValue)
	}
	if c.InputRCRange.Min >= c.InputRCRange.Max {
		return ferrors.Wrap(ferrors.ErrConfig, "input_rc_range (%d,%d) must have min < max", c.InputRCRange.Min, c.InputRCRange.Max)
	}
	for _, pin := range c.OutputESCPins {
		if pin < 0 {
			return ferrors.Wrap(ferrors.ErrConfig, "output_esc_pins contains a negative channel number: %v", c.OutputESCPins)
		}
	}
	return nil
}

// Save rewrites the configuration file in place, used after a successful
// --flat-trim run to persist the new calibration offsets.
func Save(path string, cfg *Config) error {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("json")
	vp.AddConfigPath(filepath.Dir(path))

	fields := map[string]any{
		"log_level_filter":   cfg.LogLevelFilter,
		"pid_values":         cfg.PIDValues,
		"rates":              cfg.Rates,
		"limits":             cfg.Limits,
		"calibration_acc":    cfg.CalibrationAcc,
		"calibration_gyr":    cfg.CalibrationGyr,
		"ahrs_madgwick_beta": cfg.AhrsMadgwickBeta,
		"input_rc_range":     cfg.InputRCRange,
		"output_esc_pins":    cfg.OutputESCPins,
		"output_esc_min_value": cfg.OutputESCMinValue,
		"filter_gyr_low_pass":  cfg.FilterGyrLowPass,
		"filter_gyr_abg":       cfg.FilterGyrABG,
		"filter_acc_low_pass":  cfg.FilterAccLowPass,
		"filter_acc_abg":       cfg.FilterAccABG,
		"filter_d_term_ab":     cfg.FilterDTermAB,
	}
	for k, v := range fields {
		vp.Set(k, v)
	}

	if err := vp.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file %q: %w", path, err)
	}
	return nil
}
