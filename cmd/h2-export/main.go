package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/h2calc/internal/app"
	"github.com/chrissnell/h2calc/internal/hydrogen"
	"github.com/chrissnell/h2calc/internal/log"
	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/config"
)

// bandWidth is the number of standard deviations in the exported uncertainty band
const bandWidth = 2.0

func main() {
	var (
		cfgFile    = flag.String("config", "config.yaml", "Path to YAML configuration file")
		envFile    = flag.String("env", ".env", "Optional dotenv file with H2CALC_* overrides")
		cityFlag   = flag.String("city", "0", "City name or index")
		source     = flag.String("source", "wind", "Generation source: wind or solar")
		height     = flag.Float64("height", 0, "Turbine hub height in m (0 uses the configured default)")
		radius     = flag.Float64("radius", 0, "Turbine blade radius in m (0 uses the configured default)")
		area       = flag.Float64("area", 0, "Panel area in m² (0 uses the configured default)")
		efficiency = flag.Float64("efficiency", 0, "Panel efficiency as a fraction (0 uses the configured default)")
		csvOutput  = flag.String("csv", "", "Optional CSV output file path")
		debug      = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if err := log.Init(log.Options{Debug: *debug}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := config.NewEnvProvider(config.NewYAMLProvider(filename), *envFile).LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	calc, err := app.NewCalculator(context.Background(), cfg, log.GetSugaredLogger())
	if err != nil {
		log.Fatalf("%v", err)
	}

	cityIndex, err := resolveCity(calc.Cities(), *cityFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	session := app.NewSession(cfg)

	var series *hydrogen.SeriesResult
	switch hydrogen.Source(*source) {
	case hydrogen.SourceWind:
		p := session.Wind()
		overrideParam(&p.HeightM, *height)
		overrideParam(&p.RadiusM, *radius)
		result, err := calc.ComputeWindSeries(cityIndex, p)
		if err != nil {
			log.Fatalf("error computing wind series: %v", err)
		}
		series = &result.SeriesResult
		printHeader(series, fmt.Sprintf("Wind: hub height %.1f m, blade radius %.1f m", p.HeightM, p.RadiusM))
	case hydrogen.SourceSolar:
		p := session.Solar()
		overrideParam(&p.PanelAreaM2, *area)
		overrideParam(&p.Efficiency, *efficiency)
		result, err := calc.ComputeSolarSeries(cityIndex, p)
		if err != nil {
			log.Fatalf("error computing solar series: %v", err)
		}
		series = &result.SeriesResult
		printHeader(series, fmt.Sprintf("Solar: panel area %.2f m², efficiency %.2f", p.PanelAreaM2, p.Efficiency))
		printSolstice(result.Solstice)
	default:
		log.Fatalf("unknown source %q: use wind or solar", *source)
	}

	printSummary(series)

	if *csvOutput != "" {
		if err := exportCSV(*csvOutput, series); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSeries exported to: %s\n", *csvOutput)
	}
}

func overrideParam(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// resolveCity accepts either a city index or a case-insensitive city name
func resolveCity(cities []weather.City, s string) (int, error) {
	if idx, err := strconv.Atoi(s); err == nil {
		return idx, nil
	}
	for i, c := range cities {
		if strings.EqualFold(c.Name, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown city %q", s)
}

func printHeader(s *hydrogen.SeriesResult, params string) {
	fmt.Printf("Green Hydrogen Production Estimate\n")
	fmt.Printf("==================================\n\n")
	fmt.Printf("  City: %s (%.2f, %.2f)\n", s.City.Name, s.City.Latitude, s.City.Longitude)
	fmt.Printf("  %s\n", params)
	fmt.Printf("  Years: %v\n\n", s.Years)
}

func printSummary(s *hydrogen.SeriesResult) {
	fmt.Printf("%-6s %16s %16s\n", "Year", "Energy (MWh)", "Hydrogen (t)")
	for y, year := range s.Years {
		last := len(s.Energy[y]) - 1
		fmt.Printf("%-6d %16.3f %16.4f\n", year, s.Energy[y][last], s.Hydrogen[y][last])
	}

	last := len(s.HydrogenMean) - 1
	lower, upper := s.HydrogenStats().Band(bandWidth)
	fmt.Printf("\nAnnual hydrogen: %.4f t ± %.4f t (σ)\n", s.HydrogenMean[last], s.HydrogenStdDev[last])
	fmt.Printf("%.0fσ band: %.4f t to %.4f t\n", bandWidth, lower[last], upper[last])
}

func printSolstice(p hydrogen.SolsticeProfile) {
	date := time.Date(p.ClimateYear, time.Month(p.Month), p.Day, 0, 0, 0, 0, time.UTC)
	fmt.Printf("Solstice profile for %s (day %d, wind %d, climate %d)\n",
		date.Format("January 2"), p.DayOfYear, p.WindYear, p.ClimateYear)
	fmt.Printf("%-5s %12s %12s\n", "Hour", "Raw W/m²", "Derated W/m²")
	for h := range p.Raw {
		fmt.Printf("%-5d %12.2f %12.2f\n", h, p.Raw[h], p.Weathered[h])
	}
	fmt.Println()
}

func exportCSV(filename string, s *hydrogen.SeriesResult) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	writer := csv.NewWriter(file)

	header := []string{"hour"}
	for _, year := range s.Years {
		header = append(header, fmt.Sprintf("energy_mwh_%d", year))
	}
	for _, year := range s.Years {
		header = append(header, fmt.Sprintf("hydrogen_t_%d", year))
	}
	header = append(header, "hydrogen_mean_t", "hydrogen_stddev_t", "band_lower_t", "band_upper_t")
	if err := writer.Write(header); err != nil {
		return err
	}

	lower, upper := s.HydrogenStats().Band(bandWidth)
	for i := range s.HydrogenMean {
		row := []string{strconv.Itoa(i)}
		for y := range s.Years {
			row = append(row, formatFloat(s.Energy[y][i]))
		}
		for y := range s.Years {
			row = append(row, formatFloat(s.Hydrogen[y][i]))
		}
		row = append(row,
			formatFloat(s.HydrogenMean[i]),
			formatFloat(s.HydrogenStdDev[i]),
			formatFloat(lower[i]),
			formatFloat(upper[i]),
		)
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
