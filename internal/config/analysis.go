package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/ecg.report/internal/ecg"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig holds the tunable parameters of the ECG pipeline. Every
// field is optional; the Get* accessors fall back to built-in defaults.
type AnalysisConfig struct {
	// Band-pass edges, in units of the frequency index.
	LowCutHz  *float64 `json:"low_cut_hz,omitempty"`
	HighCutHz *float64 `json:"high_cut_hz,omitempty"`

	// Beat detector
	OutlierCount  *int     `json:"outlier_count,omitempty"`
	PeakThreshold *float64 `json:"peak_threshold,omitempty"`

	// Range check, symmetric about zero.
	VoltageLimit *float64 `json:"voltage_limit,omitempty"`

	// "index" or "value"
	BeatMapping *string `json:"beat_mapping,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// EmptyAnalysisConfig returns an AnalysisConfig with all fields unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// DefaultAnalysisConfig returns a config with every field set to its default.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		LowCutHz:      ptrFloat64(ecg.DefaultLowCutHz),
		HighCutHz:     ptrFloat64(ecg.DefaultHighCutHz),
		OutlierCount:  ptrInt(ecg.DefaultOutlierCount),
		PeakThreshold: ptrFloat64(ecg.DefaultPeakThreshold),
		VoltageLimit:  ptrFloat64(ecg.DefaultVoltageLimit),
		BeatMapping:   ptrString(string(ecg.MapByIndex)),
	}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file cannot
// be loaded; intended for test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are usable.
func (c *AnalysisConfig) Validate() error {
	low, high := c.GetLowCutHz(), c.GetHighCutHz()
	if low < 0 {
		return fmt.Errorf("low_cut_hz must be non-negative, got %f", low)
	}
	if high <= low {
		return fmt.Errorf("high_cut_hz (%f) must be greater than low_cut_hz (%f)", high, low)
	}

	if c.OutlierCount != nil && *c.OutlierCount < 0 {
		return fmt.Errorf("outlier_count must be non-negative, got %d", *c.OutlierCount)
	}

	if c.PeakThreshold != nil {
		if *c.PeakThreshold < 0 || *c.PeakThreshold >= 1 {
			return fmt.Errorf("peak_threshold must be in [0, 1), got %f", *c.PeakThreshold)
		}
	}

	if c.VoltageLimit != nil && *c.VoltageLimit <= 0 {
		return fmt.Errorf("voltage_limit must be positive, got %f", *c.VoltageLimit)
	}

	if c.BeatMapping != nil {
		switch ecg.BeatMapping(*c.BeatMapping) {
		case ecg.MapByIndex, ecg.MapByValue:
		default:
			return fmt.Errorf("beat_mapping must be %q or %q, got %q", ecg.MapByIndex, ecg.MapByValue, *c.BeatMapping)
		}
	}

	return nil
}

// GetLowCutHz returns the low_cut_hz value or the default.
func (c *AnalysisConfig) GetLowCutHz() float64 {
	if c.LowCutHz == nil {
		return ecg.DefaultLowCutHz
	}
	return *c.LowCutHz
}

// GetHighCutHz returns the high_cut_hz value or the default.
func (c *AnalysisConfig) GetHighCutHz() float64 {
	if c.HighCutHz == nil {
		return ecg.DefaultHighCutHz
	}
	return *c.HighCutHz
}

// GetOutlierCount returns the outlier_count value or the default.
func (c *AnalysisConfig) GetOutlierCount() int {
	if c.OutlierCount == nil {
		return ecg.DefaultOutlierCount
	}
	return *c.OutlierCount
}

// GetPeakThreshold returns the peak_threshold value or the default.
func (c *AnalysisConfig) GetPeakThreshold() float64 {
	if c.PeakThreshold == nil {
		return ecg.DefaultPeakThreshold
	}
	return *c.PeakThreshold
}

// GetVoltageLimit returns the voltage_limit value or the default.
func (c *AnalysisConfig) GetVoltageLimit() float64 {
	if c.VoltageLimit == nil {
		return ecg.DefaultVoltageLimit
	}
	return *c.VoltageLimit
}

// GetBeatMapping returns the beat_mapping value or the default.
func (c *AnalysisConfig) GetBeatMapping() ecg.BeatMapping {
	if c.BeatMapping == nil || *c.BeatMapping == "" {
		return ecg.MapByIndex
	}
	return ecg.BeatMapping(*c.BeatMapping)
}

// Params converts the config into pipeline parameters.
func (c *AnalysisConfig) Params() ecg.Params {
	return ecg.Params{
		LowCutHz:      c.GetLowCutHz(),
		HighCutHz:     c.GetHighCutHz(),
		OutlierCount:  c.GetOutlierCount(),
		PeakThreshold: c.GetPeakThreshold(),
		VoltageLimit:  c.GetVoltageLimit(),
		Mapping:       c.GetBeatMapping(),
	}
}
