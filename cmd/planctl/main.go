package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thislife/planner/client"
	"github.com/thislife/planner/client/localstore"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "planctl",
		Short: "CLI client for the planner sync service",
	}
)

// session is the stored login: the service URL and access code from the
// last `planctl login`.
type session struct {
	API        string `json:"api"`
	AccessCode string `json:"accessCode"`
}

func sessionPath() (string, error) {
	dir, err := localstore.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func loadSession() (*session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &s, nil
}

func saveSession(s *session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// newClient builds a client from the stored session, falling back to the
// --api flag and no access code when not logged in.
func newClient() (*client.Client, error) {
	base := apiFlag
	var opts []client.Option
	if s, err := loadSession(); err != nil {
		return nil, err
	} else if s != nil {
		if s.API != "" {
			base = s.API
		}
		if s.AccessCode != "" {
			opts = append(opts, client.WithAccessCode(s.AccessCode))
		}
	}
	return client.New(base, opts...)
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Planner service base URL")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
