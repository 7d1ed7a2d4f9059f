package main

import (
	"charger-siting-service/internal/adapters/facilities"
	"charger-siting-service/internal/api/dto"
	"charger-siting-service/internal/config"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Options for an offline coverage scan. Zero-valued overrides keep the
// configured thresholds.
type Options struct {
	ConfigFile  string  `short:"c" long:"config"        env:"SITING_CONFIG" description:"Path to siting configuration" default:"config/siting.yaml"`
	Stations    string  `short:"s" long:"stations"      env:"SEED_PATH"     description:"GeoJSON station snapshot; fetch from NREL when empty"`
	NRELKey     string  `long:"nrel-key"                env:"NREL_API_KEY"  description:"NREL API key"`
	Output      string  `short:"o" long:"out"                               description:"Output GeoJSON file, - for stdout" default:"-"`
	Step        float64 `long:"step"                                        description:"Grid step in degrees"`
	MinSubCount int     `long:"min-sub-count"                               description:"Minimum uncovered neighbors"`
	LogLevel    string  `long:"log-level"               env:"LOG_LEVEL"     description:"Log level" default:"info"`
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	obs.SetupLogger(opts.LogLevel, "console")

	if err := run(context.Background(), opts); err != nil {
		log.Fatal().Err(err).Msg("grid scan failed")
	}
}

func run(ctx context.Context, opts Options) error {
	siting, err := config.LoadSiting(opts.ConfigFile)
	if err != nil {
		return err
	}
	region, err := siting.RegionPolygon()
	if err != nil {
		return err
	}

	params := siting.GridParams()
	if opts.Step > 0 {
		params.Step = opts.Step
	}
	if opts.MinSubCount > 0 {
		params.MinSubCount = opts.MinSubCount
	}

	provider, err := stationSource(opts)
	if err != nil {
		return err
	}

	points, err := services.ScanCoverage(ctx, region, siting.FacilityQuery(), params, provider)
	if err != nil {
		return err
	}

	b, err := dto.GridFeatureCollection(points).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode heat map: %w", err)
	}

	var out io.Writer = os.Stdout
	if opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("create %q: %w", opts.Output, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(b); err != nil {
		return fmt.Errorf("write heat map: %w", err)
	}

	log.Info().
		Int("points", len(points)).
		Float64("step", params.Step).
		Int("min_sub_count", params.MinSubCount).
		Str("out", opts.Output).
		Msg("heat map written")
	return nil
}

func stationSource(opts Options) (ports.FacilityProvider, error) {
	if opts.Stations == "" {
		return facilities.NewNRELClient(opts.NRELKey)
	}

	data, err := os.ReadFile(opts.Stations)
	if err != nil {
		return nil, fmt.Errorf("read stations %q: %w", opts.Stations, err)
	}
	fs, _, err := facilities.DecodeStations(data)
	if err != nil {
		return nil, fmt.Errorf("stations %q: %w", opts.Stations, err)
	}
	return facilities.NewStaticProvider(fs), nil
}
