// Command matchmaker verifies batches of social media profiles against
// brand search criteria.
//
// Usage:
//
//	matchmaker requests.json
//	matchmaker -            # read requests from stdin
//
// The input file holds a JSON array of verification requests:
//
//	[{"profileIdentifier": "someathlete",
//	  "platform": "instagram",
//	  "criteria": {"niches": ["fitness"], "minFollowers": 10000}}]
//
// Results are written to stdout as a JSON array, one result per request,
// in request order. Authenticated platforms read cookies from browser
// stores by default, or from TWITTER_*/INSTAGRAM_*/TIKTOK_* env vars
// (a .env file in the working directory is loaded if present).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/matchmaker"
	"github.com/codeGROOVE-dev/matchmaker/httpcache"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores (enabled by default)")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching (enabled by default with 75-day TTL)")
	cacheTTL := flag.Duration("cache-ttl", 75*24*time.Hour, "cache time-to-live (default: 75 days, use 24h for testing)")
	scrapeTimeout := flag.Duration("timeout", 15*time.Second, "per-profile scrape timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: matchmaker [options] <requests.json | ->")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nSupported platforms:")
		fmt.Fprintln(os.Stderr, "  - Instagram (reads browser cookies by default)")
		fmt.Fprintln(os.Stderr, "  - TikTok (reads browser cookies by default)")
		fmt.Fprintln(os.Stderr, "  - Twitter/X (reads browser cookies by default)")
		fmt.Fprintln(os.Stderr, "  - YouTube (no auth)")
		os.Exit(1)
	}

	// Cookie env vars may live in a .env file; a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	requests, err := readRequests(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup cache
	var httpCache *httpcache.Cache
	if !*noCache {
		httpCache, err = httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := httpCache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			logger.Debug("HTTP cache initialized", "ttl", cacheTTL.String())
		}
	}

	// Build options
	var opts []matchmaker.Option
	opts = append(opts, matchmaker.WithLogger(logger))
	opts = append(opts, matchmaker.WithScrapeTimeout(*scrapeTimeout))
	if !*noBrowser {
		opts = append(opts, matchmaker.WithBrowserCookies())
	}
	if httpCache != nil {
		opts = append(opts, matchmaker.WithHTTPCache(httpCache))
	}

	results, err := matchmaker.Verify(context.Background(), requests, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
	if err := outputJSON(results); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func readRequests(path string) ([]matchmaker.VerificationRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	var requests []matchmaker.VerificationRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parse requests: %w", err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no requests in %s", path)
	}
	return requests, nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
