package cadence

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/yaml.v3"
)

// TypingConfig is the YAML form of the console's typing options.
type TypingConfig struct {
	Duration    time.Duration `yaml:"duration"`
	CursorChar  string        `yaml:"cursorChar"`
	CursorBlink time.Duration `yaml:"cursorBlink"`
	// StartDelay is waited before the sequence starts; EndHold after it ends.
	StartDelay time.Duration `yaml:"startDelay"`
	EndHold    time.Duration `yaml:"endHold"`
}

// Options converts the config into TypingOptions.
func (c TypingConfig) Options() TypingOptions {
	return TypingOptions{
		Duration:    c.Duration,
		CursorChar:  c.CursorChar,
		CursorBlink: c.CursorBlink,
	}
}

// Config holds every tunable of the loading console and the menu.
type Config struct {
	Intensities map[string]Intensity `yaml:"intensities"`
	Intensity   string               `yaml:"intensity"`
	Animated    bool                 `yaml:"animated"`
	ScanLines   int                  `yaml:"scanLines"`
	Button      ButtonConfig         `yaml:"button"`
	Typing      TypingConfig         `yaml:"typing"`
	Messages    []Message            `yaml:"messages"`
	Menu        []string             `yaml:"menu"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	presets := make(map[string]Intensity, len(Intensities))
	for k, v := range Intensities {
		presets[k] = v
	}
	return Config{
		Intensities: presets,
		Intensity:   DefaultIntensity,
		Animated:    true,
		ScanLines:   DefaultScanLineCount,
		Button:      DefaultButtonConfig(),
		Typing: TypingConfig{
			Duration:    200 * time.Millisecond,
			CursorChar:  DefaultCursorChar,
			CursorBlink: 500 * time.Millisecond,
			StartDelay:  100 * time.Millisecond,
			EndHold:     500 * time.Millisecond,
		},
		Messages: DefaultMessages(),
		Menu:     []string{"About Me", "Projects", "Skills", "Contact"},
	}
}

// DefaultMessages returns the loading console's diagnostic lines.
func DefaultMessages() []Message {
	const d = 100 * time.Millisecond
	return []Message{
		{Text: "Commencing Core Diagnostics"},
		{Text: "Neural Interface: Online", Delay: d},
		{Text: "Memory Fragment Check: Complete", Delay: d},
		{Text: "Cognitive Kernel Status: Stable", Delay: d},
		{Text: "Emotional Matrix: Desynchronized", Delay: d},
		{Text: "Reconstructing Personality Profile...", Delay: d},
		{Text: "Synchronizing Light Protocols...", Delay: d},
		{Text: "Calibrating Optic Sensors", Delay: d},
		{Text: "Initiating Pod Link", Delay: d},
		{Text: "Activating Synthetic Soul", Delay: d},
		{Text: "Launching StarLith Environment", Delay: d},
		{Text: "Establishing Human Connection...", Delay: d},
		{Text: "Awaiting Consciousness Signal...", Delay: d},
	}
}

// LoadConfig parses YAML over DefaultConfig: fields absent from data keep
// their defaults. Invalid values are corrected to the nearest default and
// logged; only malformed YAML is an error.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if len(c.Intensities) == 0 {
		c.Intensities = DefaultConfig().Intensities
	}
	if _, ok := c.Intensities[c.Intensity]; !ok {
		log.Printf("cadence: unknown intensity %q, using %q", c.Intensity, DefaultIntensity)
		c.Intensity = DefaultIntensity
		if _, ok := c.Intensities[DefaultIntensity]; !ok {
			c.Intensities[DefaultIntensity] = Intensities[DefaultIntensity]
		}
	}
	if c.Button.ParticleCount < 0 {
		log.Printf("cadence: particle count %d is negative, using 0", c.Button.ParticleCount)
		c.Button.ParticleCount = 0
	}
	if c.ScanLines <= 0 {
		c.ScanLines = DefaultScanLineCount
	}
}

// LoadMessages parses a YAML list of messages. On any failure (malformed
// data or an empty list) it logs and returns fallback.
func LoadMessages(data []byte, fallback []Message) []Message {
	var msgs []Message
	if err := yaml.Unmarshal(data, &msgs); err != nil {
		log.Printf("cadence: loading messages: %v, using %d fallback messages", err, len(fallback))
		return fallback
	}
	if len(msgs) == 0 {
		log.Printf("cadence: loading messages: empty list, using %d fallback messages", len(fallback))
		return fallback
	}
	return msgs
}
