package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"MusicTycoon/internal/calculator"
	"MusicTycoon/internal/economy"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/quality"
)

func newQualityCmd() *cobra.Command {
	var (
		cfgPath string
		album   string
	)
	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Preview recording quality, prices and album aggregation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			base := quality.ComputeBaseQuality(cfg.Player.Skills, cfg.Player.Tools)
			printHeader(fmt.Sprintf("%s in the studio", cfg.Player.Name))
			fmt.Printf("Base quality:        %.1f\n", base)
			fmt.Printf("Single fair price:   $%.2f\n", economy.RecommendedPrice(cfg.Economy, model.KindSingle, base))
			fmt.Printf("Album fair price:    $%.2f\n", economy.RecommendedPrice(cfg.Economy, model.KindAlbum, base))
			fmt.Printf("Seed hype (single):  %.3f\n", economy.SeedHype(cfg.Economy, model.KindSingle, cfg.Player.Fans))
			fmt.Printf("Seed hype (album):   %.3f\n", economy.SeedHype(cfg.Economy, model.KindAlbum, cfg.Player.Fans))

			if album == "" {
				return nil
			}
			tracks, err := parseQualities(album)
			if err != nil {
				return err
			}
			q := quality.AggregateAlbumQuality(tracks)
			fmt.Println()
			printHeader(fmt.Sprintf("Album of %d tracks", len(tracks)))
			fmt.Printf("Track mean:          %.1f\n", calculator.Mean(tracks))
			fmt.Printf("Album quality:       %.1f\n", q)
			fmt.Printf("Fair price:          $%.2f\n", economy.RecommendedPrice(cfg.Economy, model.KindAlbum, q))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the YAML config")
	cmd.Flags().StringVar(&album, "album", "", "comma-separated track qualities to aggregate, e.g. 90,85,80")
	return cmd
}

func parseQualities(list string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("track quality %q: %w", part, err)
		}
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("track quality %v outside 0-100", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no track qualities in %q", list)
	}
	return out, nil
}
