package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Preferences holds per-user btcsim defaults.
type Preferences struct {
	Assumptions AssumptionPreferences `toml:"assumptions"`
	Output      OutputPreferences     `toml:"output"`
	Server      ServerPreferences     `toml:"server"`
}

// AssumptionPreferences override the built-in global assumptions. Unset
// numbers keep the built-in value.
type AssumptionPreferences struct {
	ExchangeRate   *float64 `toml:"exchange_rate"`
	TaxRatePercent *float64 `toml:"tax_rate_percent"`
	PriceModel     string   `toml:"price_model,omitempty"`
	Currency       string   `toml:"currency,omitempty"`
	Locale         string   `toml:"locale,omitempty"`
}

// OutputPreferences holds report defaults.
type OutputPreferences struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory,omitempty"`
}

// ServerPreferences holds defaults for `btcsim serve`.
type ServerPreferences struct {
	Addr string `toml:"addr"`
}

// DefaultPreferences returns the default preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Assumptions: AssumptionPreferences{
			PriceModel: domain.Standard.String(),
			Currency:   domain.DefaultCurrency,
			Locale:     domain.DefaultLocale,
		},
		Output: OutputPreferences{Format: "console"},
		Server: ServerPreferences{Addr: ":8080"},
	}
}

// GlobalAssumptions layers the preferences over the built-in assumptions.
func (p Preferences) GlobalAssumptions() (domain.GlobalAssumptions, error) {
	g := domain.DefaultGlobalAssumptions()
	a := p.Assumptions

	if a.ExchangeRate != nil {
		g.ExchangeRate = decimal.NewFromFloat(*a.ExchangeRate)
	}
	if a.TaxRatePercent != nil {
		g.TaxRatePercent = decimal.NewFromFloat(*a.TaxRatePercent)
	}
	if a.PriceModel != "" {
		model, err := domain.ParsePriceModelVariant(a.PriceModel)
		if err != nil {
			return g, err
		}
		g.PriceModel = model
	}
	if a.Currency != "" {
		g.Currency = a.Currency
	}
	if a.Locale != "" {
		g.Locale = a.Locale
	}

	parser := &InputParser{}
	if err := parser.validateGlobalAssumptions(&g); err != nil {
		return g, err
	}
	return g, nil
}

// PreferencesDir returns the XDG-compliant config directory.
func PreferencesDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "btcsim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "btcsim")
}

// PreferencesPath returns the full path to the preferences file.
func PreferencesPath() string {
	return filepath.Join(PreferencesDir(), "config.toml")
}

// LoadPreferences reads the preferences file, returning defaults if it
// doesn't exist.
func LoadPreferences() (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(PreferencesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("reading preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parsing preferences: %w", err)
	}
	if _, err := prefs.GlobalAssumptions(); err != nil {
		return prefs, fmt.Errorf("parsing preferences: %w", err)
	}

	return prefs, nil
}

// SavePreferences writes the preferences to disk.
func SavePreferences(prefs Preferences) error {
	dir := PreferencesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}

	f, err := os.OpenFile(PreferencesPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating preferences file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(prefs)
}

// PreferencesExist returns true if a preferences file exists on disk.
func PreferencesExist() bool {
	_, err := os.Stat(PreferencesPath())
	return err == nil
}
