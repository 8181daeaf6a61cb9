package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/windy-forecast/forecast"
	"github.com/couchcryptid/windy-forecast/internal/config"
	"github.com/couchcryptid/windy-forecast/internal/observability"
	"github.com/couchcryptid/windy-forecast/windy"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude (-90..90)")
	lon := flag.Float64("lon", 0, "longitude (-180..180)")
	model := flag.String("model", string(forecast.ModelGFS), "forecast model, e.g. gfs, iconEu, gfsWave")
	parameters := flag.String("parameters", "", "comma-separated parameters (default temp,wind)")
	levels := flag.String("levels", "", "comma-separated levels (default surface)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	client := windy.NewClient(cfg.APIKey, cfg.RequestTimeout, logger)
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}

	resp, err := client.PointForecast(context.Background(), *lat, *lon, *model, splitList(*parameters), splitList(*levels))
	if err != nil {
		logger.Error("point forecast failed", "error", err)
		os.Exit(1)
	}

	printForecast(resp)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printForecast(resp *forecast.Response) {
	if resp.Warning != "" {
		fmt.Printf("warning: %s\n", resp.Warning)
	}
	if n := len(resp.Timestamps); n > 0 {
		fmt.Printf("forecast %s .. %s (%d steps)\n",
			resp.Timestamps[0].Format(time.RFC3339),
			resp.Timestamps[n-1].Format(time.RFC3339),
			n,
		)
	}

	for _, name := range resp.AvailableParameters() {
		acc, err := resp.Parameter(name)
		if err != nil {
			continue
		}
		printAccessor(name, acc)
	}
}

func printAccessor(label string, acc forecast.Accessor) {
	switch a := acc.(type) {
	case *forecast.LevelAccessor:
		for _, level := range a.Levels() {
			printSeries(label+"@"+level, a.Unit(), a.Level(level))
		}
	case *forecast.SurfaceAccessor:
		printSeries(label, a.Unit(), a.Values())
	case *forecast.CompositeAccessor:
		for _, name := range a.Components() {
			if sub, ok := a.Component(name); ok {
				printAccessor(label+"."+name, sub)
			}
		}
	}
}

func printSeries(label, unit string, values []*float64) {
	first, last := "-", "-"
	if len(values) > 0 {
		first = formatValue(values[0])
		last = formatValue(values[len(values)-1])
	}
	if unit == "" {
		unit = "?"
	}
	fmt.Printf("%-28s %-8s first=%-10s last=%-10s points=%d\n", label, unit, first, last, len(values))
}

func formatValue(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
