// Command worldgen is a thin demonstration CLI over the world generation
// pipeline. It is illustrative tooling, not a production map-generation
// service: it exists to exercise generate/get-template/compare from the
// command line while developing templates.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worldforge/internal/logging"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/orchestrator"
)

var (
	flagSeed     int64
	flagCells    int
	flagAspect   float64
	flagCellSize float64
	flagTemplate string
)

func main() {
	logging.InitLogger()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "worldgen",
		Short: "Deterministic procedural world generator",
	}
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "master RNG seed")
	root.PersistentFlags().IntVar(&flagCells, "cells", 2000, "target Voronoi cell count")
	root.PersistentFlags().Float64Var(&flagAspect, "aspect", 16.0/9.0, "map width/height ratio")
	root.PersistentFlags().Float64Var(&flagCellSize, "cell-size-km", 6, "nominal cell size in kilometres")
	root.PersistentFlags().StringVar(&flagTemplate, "template", "Continents", "terrain template name")

	root.AddCommand(generateCmd(), templateCmd(), compareCmd())
	return root
}

func baseConfig() (config.Config, error) {
	tmpl, err := parseTemplate(flagTemplate)
	if err != nil {
		return config.Config{}, err
	}
	cfg := config.Config{
		Seed:                       flagSeed,
		CellCount:                  flagCells,
		Aspect:                     flagAspect,
		CellSizeKm:                 flagCellSize,
		Template:                   tmpl,
		LatitudeSouth:              10,
		MaxElevationM:              5000,
		MaxDepthM:                  1250,
		EquatorTempC:               27,
		PoleTempC:                  -20,
		LapseCPerKm:                6.5,
		MaxAnnualPrecipMm:          4000,
		RiverTraceThresholdBase:    5,
		RiverMajorMultiplier:       8,
		MinRiverVertices:           3,
		MinRealmCells:              20,
		MinRealmPopulationFraction: 0.05,
		WindBands: []config.WindBand{
			{LatMin: -90, LatMax: 0, Compass: config.NorthEast},
			{LatMin: 0, LatMax: 90, Compass: config.SouthWest},
		},
	}
	return cfg.WithTuningProfile(tmpl)
}

func parseTemplate(name string) (config.TemplateID, error) {
	for id := config.TemplateVolcano; id <= config.TemplateOldWorld; id++ {
		if id.String() == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown template %q", name)
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run the full generation pipeline and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig()
			if err != nil {
				return err
			}
			world, err := orchestrator.Generate(context.Background(), cfg)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %d cells, land ratio %.3f, %d rivers, %d realms, %d counties\n",
				world.Metadata.RunID,
				world.Mesh.CellCount,
				world.Elevation.LandRatio(),
				len(world.Hydrology.Rivers),
				countDistinct(world.Political.RealmID),
				countDistinct(world.Political.CountyID),
			)
			for stage, d := range world.Metadata.StageElapse {
				fmt.Printf("  %-10s %s\n", stage, d)
			}
			return nil
		},
	}
}

func templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the built-in DSL script for --template",
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := parseTemplate(flagTemplate)
			if err != nil {
				return err
			}
			fmt.Println(orchestrator.GetTemplate(tmpl))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	var otherSeed int64
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Generate with --seed and --compare-seed and diff the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgA, err := baseConfig()
			if err != nil {
				return err
			}
			cfgB := cfgA
			cfgB.Seed = otherSeed

			metrics, err := orchestrator.Compare(context.Background(), cfgA, cfgB)
			if err != nil {
				return err
			}
			fmt.Printf("land ratio: %.3f vs %.3f\n", metrics.LandRatioA, metrics.LandRatioB)
			fmt.Printf("rivers:     %d vs %d\n", metrics.RiverCountA, metrics.RiverCountB)
			fmt.Printf("realms:     %d vs %d\n", metrics.RealmCountA, metrics.RealmCountB)
			fmt.Printf("counties:   %d vs %d\n", metrics.CountyCountA, metrics.CountyCountB)
			fmt.Printf("biome overlap: %.3f\n", metrics.BiomeOverlap)
			return nil
		},
	}
	cmd.Flags().Int64Var(&otherSeed, "compare-seed", 2, "second seed to generate and diff against --seed")
	return cmd
}

func countDistinct(ids []int) int {
	seen := map[int]bool{}
	for _, id := range ids {
		if id > 0 {
			seen[id] = true
		}
	}
	return len(seen)
}
