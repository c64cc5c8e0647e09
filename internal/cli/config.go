package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramusita/chitgame/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	MatchID   string

	// Seat is the last seat saved by create or join, if any
	Seat *Seat
}

// envConfig is the environment's contribution to Config
type envConfig struct {
	ServerURL string `env:"CHIT_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"CHIT_TOKEN"`
	TokenFile string `env:"CHIT_TOKEN_FILE"`
	Output    string `env:"CHIT_OUTPUT" envDefault:"text"`
	MatchID   string `env:"CHIT_MATCH"`
}

// Seat is what create and join return and what the token file stores
type Seat struct {
	MatchID     string `json:"match_id"`
	Code        string `json:"code"`
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() (*Config, error) {
	var e envConfig
	if err := config.ParseEnv(&e); err != nil {
		return nil, err
	}
	if e.TokenFile == "" {
		e.TokenFile = defaultTokenFile()
	}
	return &Config{
		ServerURL: e.ServerURL,
		Token:     e.Token,
		TokenFile: e.TokenFile,
		Output:    e.Output,
		MatchID:   e.MatchID,
	}, nil
}

// LoadToken reads the token file. A flag or env token wins over the file,
// but the file's match id is still used as the default match.
func (c *Config) LoadToken() error {
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var seat Seat
	if err := json.Unmarshal(data, &seat); err != nil || seat.PlayerToken == "" {
		// Bare token file
		if c.Token == "" {
			c.Token = strings.TrimSpace(string(data))
		}
		return nil
	}

	c.Seat = &seat
	if c.Token == "" {
		c.Token = seat.PlayerToken
	}
	return nil
}

// SaveSeat stores the seat in the token file
func (c *Config) SaveSeat(seat Seat) error {
	c.Seat = &seat
	c.Token = seat.PlayerToken

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(seat)
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, data, 0o600)
}

// ResolveMatch picks the match to act on: the flag, then CHIT_MATCH, then
// the saved seat
func (c *Config) ResolveMatch(flag string) (string, error) {
	switch {
	case flag != "":
		return flag, nil
	case c.MatchID != "":
		return c.MatchID, nil
	case c.Seat != nil:
		return c.Seat.MatchID, nil
	}
	return "", fmt.Errorf("no match selected: pass --match or run 'match create' / 'match join' first")
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".chit", "seat.json")
	}
	return filepath.Join(home, ".chit", "seat.json")
}
