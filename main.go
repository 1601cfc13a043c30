package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/kztmrngs/FastSieve/api"
	"github.com/kztmrngs/FastSieve/config"
	"github.com/kztmrngs/FastSieve/sieve"
	"github.com/kztmrngs/FastSieve/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	// Command-line flags
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
		tuiMode     = flag.Bool("tui", false, "Show live progress while sieving")
		apiServer   = flag.Bool("api-server", false, "Start HTTP API server mode")
		apiPort     = flag.Int("port", 0, "API server port (used with -api-server, 0 = config value)")
		quietMode   = flag.Bool("quiet", false, "Suppress the prime list (totals and timing only)")

		segmentBytes = flag.Uint64("segment-bytes", 0, "Packed bytes per segment (0 = config value)")

		enableStats = flag.Bool("stats", false, "Collect and report run statistics")
		statsFile   = flag.String("stats-file", "", "Statistics output file (default: stdout)")
		statsFormat = flag.String("stats-format", "", "Statistics format (json, csv)")
	)

	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("FastSieve %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	// Show help
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	// Load configuration, then apply flag overrides
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *segmentBytes != 0 {
		cfg.Sieve.SegmentBytes = *segmentBytes
	}
	if *quietMode {
		cfg.Output.Quiet = true
	}
	if *enableStats {
		cfg.Output.EnableStats = true
	}
	if *statsFile != "" {
		cfg.Output.StatsFile = *statsFile
	}
	if *statsFormat != "" {
		cfg.Output.StatsFormat = *statsFormat
	}
	if *apiPort != 0 {
		cfg.API.Port = *apiPort
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Start API server mode if requested
	if *apiServer {
		runAPIServer(cfg)
		return
	}

	// Positional bounds: <hi> or <lo> <hi>
	args := flag.Args()
	switch len(args) {
	case 1:
		hi := parseBound(args[0])
		runSieve(cfg, 2, hi, sieve.ModeAll, *tuiMode)
	case 2:
		lo := parseBound(args[0])
		hi := parseBound(args[1])
		runSieve(cfg, lo, hi, sieve.ModeRange, *tuiMode)
	default:
		prog := os.Args[0]
		fmt.Printf("Usage: %s <upper_limit> OR %s <lower_limit> <upper_limit>\n", prog, prog)
		os.Exit(1)
	}
}

// parseBound parses a positional argument as an unsigned 64-bit bound.
// Malformed input is fatal.
func parseBound(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid bound %q: %v\n", s, err)
		os.Exit(1)
	}
	return v
}

// runSieve executes one sieve run and prints the result in the standard
// output format. Only the kernel call itself is timed.
func runSieve(cfg *config.Config, lo, hi uint64, mode sieve.Mode, withTUI bool) {
	opts := sieve.Options{SegmentBytes: cfg.Sieve.SegmentBytes}

	var stats *sieve.Statistics
	if cfg.Output.EnableStats {
		stats = sieve.NewStatistics()
		opts.Stats = stats
		stats.Start()
	}

	var primes []uint64
	var err error
	start := time.Now()
	if withTUI {
		primes, err = tui.New().Run(lo, hi, mode, opts)
	} else {
		primes, err = sieve.ComputeWithOptions(lo, hi, mode, opts)
	}
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if stats != nil {
		stats.Finish()
	}

	if mode == sieve.ModeRange {
		fmt.Printf("Primes from %d to %d (total %d):\n", lo, hi, len(primes))
	} else {
		fmt.Printf("Primes up to %d (total %d):\n", hi, len(primes))
	}
	if !cfg.Output.Quiet && !withTUI {
		w := bufio.NewWriter(os.Stdout)
		for _, p := range primes {
			fmt.Fprintf(w, "%d ", p)
		}
		fmt.Fprintln(w)
		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Time: %f seconds\n", elapsed.Seconds())

	if stats != nil {
		if err := exportStats(cfg, stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing statistics: %v\n", err)
			os.Exit(1)
		}
	}
}

// exportStats writes run statistics to the configured file or stdout.
func exportStats(cfg *config.Config, stats *sieve.Statistics) error {
	out := os.Stdout
	if cfg.Output.StatsFile != "" {
		f, err := os.Create(cfg.Output.StatsFile) // #nosec G304 -- user-specified stats output path
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close stats file: %v\n", closeErr)
			}
		}()
		out = f
	}

	if cfg.Output.StatsFormat == "csv" {
		return stats.ExportCSV(out)
	}
	return stats.ExportJSON(out)
}

// runAPIServer starts the HTTP API and blocks until SIGINT/SIGTERM.
func runAPIServer(cfg *config.Config) {
	server := api.NewServerWithVersion(cfg, Version)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down API server...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("API server stopped")
			os.Exit(0)
		})
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal (Ctrl+C or SIGTERM)
	<-sigChan
	performShutdown()
}

func printHelp() {
	fmt.Println("FastSieve - segmented wheel-30 prime sieve")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fastsieve [flags] <upper_limit>")
	fmt.Println("  fastsieve [flags] <lower_limit> <upper_limit>")
	fmt.Println("  fastsieve -api-server [-port N]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  fastsieve 1000000            # primes up to 1000000")
	fmt.Println("  fastsieve 1000000 2000000    # primes between the bounds")
	fmt.Println("  fastsieve -quiet -stats 1000000000")
	fmt.Println("  fastsieve -tui 10000000000")
}
