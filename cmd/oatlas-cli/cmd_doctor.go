package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config and server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	fmt.Println("\nAtlas Doctor")
	fmt.Println("============")

	var results []checkResult

	// 1. Config file (optional, env and flags also work).
	cfgPath, cfg, cfgErr := doctorLoadConfig()
	if cfgErr != nil {
		results = append(results, checkResult{
			Name: "Config file", Passed: false,
			Detail: cfgPath,
			Hint:   "Optional. Create it to persist a server URL.",
		})
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	url := doctorResolveURL(cfg)

	// 2. Server URL.
	if url == "" {
		results = append(results, checkResult{
			Name: "Server URL", Passed: false,
			Hint: "Set --url or OATLAS_URL",
		})
	} else {
		results = append(results, checkResult{
			Name: "Server URL", Passed: true, Detail: url,
		})
	}

	// 3. Server reachable.
	if url != "" {
		health, err := doctorCheckHealth(url)
		if err != nil {
			results = append(results, checkResult{
				Name: "Server reachable", Passed: false,
				Detail: url,
				Hint:   fmt.Sprintf("Is the atlas server running?\n   Error: %v", err),
			})
		} else {
			detail := url
			if health.Version != "" {
				detail = fmt.Sprintf("v%s (build %s)", health.Version, health.Build)
			}
			results = append(results, checkResult{
				Name: "Server reachable", Passed: true, Detail: detail,
			})

			// 4. Snapshot loaded.
			if health.Countries > 0 || health.Institutions > 0 {
				results = append(results, checkResult{
					Name: "Snapshot loaded", Passed: true,
					Detail: fmt.Sprintf("%d countries, %d institutions", health.Countries, health.Institutions),
				})
			} else {
				results = append(results, checkResult{
					Name: "Snapshot loaded", Passed: false,
					Hint: "Server is up but serving no entities. Check its data source.",
				})
			}
		}
	}

	fmt.Println()
	allPassed := true
	for _, r := range results {
		if r.Passed {
			if r.Detail != "" {
				fmt.Printf("✅ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("✅ %s\n", r.Name)
			}
		} else {
			allPassed = false
			if r.Detail != "" {
				fmt.Printf("❌ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("❌ %s\n", r.Name)
			}
			if r.Hint != "" {
				fmt.Printf("   Hint: %s\n", r.Hint)
			}
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	return nil
}

func doctorLoadConfig() (string, *configFile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	cfgPath := filepath.Join(home, ".oatlas", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}
	return cfgPath, &cfg, nil
}

func doctorResolveURL(cfg *configFile) string {
	// Flag first, then env, then config file.
	url := flagURL
	if url == defaultURL {
		if v := os.Getenv("OATLAS_URL"); v != "" {
			url = v
		}
	}
	if cfg != nil && url == defaultURL {
		resolved := cfg.URL
		if cfg.Profiles != nil {
			profile := cfg.ActiveProfile
			if profile == "" {
				profile = "default"
			}
			if p, ok := cfg.Profiles[profile]; ok && p.URL != "" {
				resolved = p.URL
			}
		}
		if resolved != "" {
			url = resolved
		}
	}
	return url
}

type doctorHealth struct {
	Version      string `json:"version"`
	Build        string `json:"build"`
	Countries    int    `json:"countries"`
	Institutions int    `json:"institutions"`
}

func doctorCheckHealth(url string) (*doctorHealth, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/v1/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var health doctorHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, err
	}
	return &health, nil
}
