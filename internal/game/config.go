package game

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/royalur/internal/board"
	"github.com/samdwyer/royalur/internal/rules"
)

// ErrInvalidConfig is returned when the configuration cannot start a game.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds game configuration options, read from ROYALUR_* variables.
type Config struct {
	// Seed for the dice. A seed of 0 means a random seed will be generated.
	Seed int64 `env:"ROYALUR_SEED" envDefault:"0"`

	// Pieces each player has to bring home.
	Pieces int `env:"ROYALUR_PIECES" envDefault:"7"`

	// Board is the name of an embedded layout.
	Board string `env:"ROYALUR_BOARD" envDefault:"standard"`

	// FirstPlayer moves first in a new game.
	FirstPlayer uint8 `env:"ROYALUR_FIRST_PLAYER" envDefault:"1"`

	// Piece colours as "#RRGGBB".
	PlayerOneColor string `env:"ROYALUR_COLOR_ONE" envDefault:"#F2C14E"`
	PlayerTwoColor string `env:"ROYALUR_COLOR_TWO" envDefault:"#5FB7D4"`

	// SavePath, when set, is where the game is saved on quit and resumed from
	// on start.
	SavePath string `env:"ROYALUR_SAVE_PATH"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that the environment parser cannot.
func (c Config) Validate() error {
	if c.Pieces <= 0 {
		return fmt.Errorf("%w: ROYALUR_PIECES must be positive, got %d", ErrInvalidConfig, c.Pieces)
	}
	if c.Board == "" {
		return fmt.Errorf("%w: ROYALUR_BOARD is empty (have %v)", ErrInvalidConfig, board.Names())
	}
	if p := rules.Player(c.FirstPlayer); p != rules.PlayerOne && p != rules.PlayerTwo {
		return fmt.Errorf("%w: ROYALUR_FIRST_PLAYER must be 1 or 2, got %d", ErrInvalidConfig, c.FirstPlayer)
	}
	return nil
}
