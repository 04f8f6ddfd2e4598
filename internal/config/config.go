package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	NewlineGlyphColor string `toml:"newline_glyph_color"`
	SeparatorColor    string `toml:"separator_color"`
	PromptColor       string `toml:"prompt_color"`
	StatusErrorColor  string `toml:"status_error_color"`
	HelpKeyColor      string `toml:"help_key_color"`
	HelpDescColor     string `toml:"help_desc_color"`
}

type Config struct {
	// Colors is the default for ANSI color output; the -c flag
	// forces it on for a single run.
	Colors bool  `toml:"colors"`
	Theme  Theme `toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Colors: false,
		Theme: Theme{
			NewlineGlyphColor: "#555555",
			SeparatorColor:    "#444444",
			PromptColor:       "#00AAFF",
			StatusErrorColor:  "#FF5555",
			HelpKeyColor:      "#FFAA00",
			HelpDescColor:     "#AAAAAA",
		},
	}
}

// ConfigPath honors HEXLINE_CONFIG_HOME and XDG_CONFIG_HOME before
// falling back to ~/.config/hexline.
func ConfigPath() string {
	if v := os.Getenv("HEXLINE_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "hexline.toml")
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "hexline", "hexline.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexline.toml"
	}
	return filepath.Join(home, ".config", "hexline", "hexline.toml")
}

// Load reads the config file, returning defaults if it is absent.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

type Styles struct {
	NewlineGlyph lipgloss.Style
	Separator    lipgloss.Style
	Prompt       lipgloss.Style
	StatusError  lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		NewlineGlyph: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.NewlineGlyphColor)).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SeparatorColor)),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.PromptColor)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusErrorColor)),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HelpKeyColor)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HelpDescColor)),
	}
}
