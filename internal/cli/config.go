package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CHESSROOM_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("CHESSROOM_TOKEN"),
		TokenFile: getEnvOrDefault("CHESSROOM_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
	}
}

// LoadToken loads the token from file, generating and persisting a fresh
// one on first use. The token is the participant identity: keeping it
// stable across invocations is what lets the CLI re-claim its seat.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err == nil && len(data) > 0 {
		c.Token = string(data)
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	token, err := generateToken()
	if err != nil {
		return err
	}
	return c.SaveToken(token)
}

// SaveToken saves the token to the token file
func (c *Config) SaveToken(token string) error {
	c.Token = token

	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func generateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating participant token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chessroom/token"
	}
	return filepath.Join(home, ".chessroom", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
