package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/himanishpuri/ClipLink/pkg/cliplink"
	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Global flags
var (
	dbPath    string
	tempDir   string
	numFrames int
)

func init() {
	// Global flags that can be used with any command
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CLIPLINK_DB_PATH", "cliplink.sqlite3"), "Path to the SQLite catalog database")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("CLIPLINK_TEMP_DIR", "/tmp"), "Directory for temporary video downloads")
	flag.IntVar(&numFrames, "frames", 3, "Number of frames sampled per clip")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// createService creates a new ClipLink service with configured options
func createService() (cliplink.Service, error) {
	return cliplink.NewService(
		cliplink.WithDBPath(dbPath),
		cliplink.WithTempDir(tempDir),
		cliplink.WithNumFrames(numFrames),
	)
}

func main() {
	_ = godotenv.Load()

	log := logger.GetLogger()

	printBanner()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Infof("Executing command: %s", command)

	switch command {
	case "analyze":
		handleAnalyze()
	case "search":
		handleSearch()
	case "catalog":
		handleCatalog()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
  ____ _ _       _     _       _
 / ___| (_)_ __ | |   (_)_ __ | | __
| |   | | | '_ \| |   | | '_ \| |/ /
| |___| | | |_) | |___| | | | |   <
 \____|_|_| .__/|_____|_|_| |_|_|\_\
          |_|

       Video to Shoppable Products
`
	fmt.Println(banner)
}

func handleAnalyze() {
	log := logger.GetLogger()

	args := os.Args[2:]
	var videoURL string
	var flagArgs []string

	// Separate the video URL from flags
	for i, arg := range args {
		if len(arg) > 0 && arg[0] != '-' && videoURL == "" {
			videoURL = arg
		} else {
			flagArgs = append(flagArgs, args[i:]...)
			break
		}
	}

	analyzeCmd := flag.NewFlagSet("analyze", flag.ExitOnError)
	note := analyzeCmd.String("note", "", "Free-text hint about what to look for (optional)")
	frames := analyzeCmd.Int("frames", 0, "Frames to sample (0 uses the global default)")
	analyzeCmd.Parse(flagArgs)

	if videoURL == "" {
		fmt.Println("Error: video URL required")
		fmt.Println("Usage: cliplink analyze <video_url> [--note <hint>] [--frames <n>]")
		os.Exit(1)
	}

	fmt.Println("\n🔧 Initializing service...")
	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	fmt.Println("🎬 Analyzing clip...")
	fmt.Println("   Downloading, sampling frames and searching for products")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := svc.AnalyzeClip(ctx, cliplink.AnalyzeRequest{
		URL:       videoURL,
		Note:      *note,
		NumFrames: *frames,
	})
	if err != nil {
		fmt.Printf("\n❌ Failed to analyze clip: %v\n", err)
		log.Errorf("AnalyzeClip failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Analysis complete (%d/%d frames labeled)\n", result.FramesLabeled, result.FramesExtracted)
	if result.Brand != "" {
		fmt.Printf("   Brand: %s\n", result.Brand)
	}
	fmt.Printf("   Query: %q\n", result.Query)

	printResults(result.Products)
}

func handleSearch() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Usage: cliplink search <query>")
		os.Exit(1)
	}

	query := os.Args[2]
	log.Infof("Searching products: %q", query)

	fmt.Println("\n🔧 Initializing service...")
	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := svc.SearchProducts(ctx, query, 0)
	if err != nil {
		fmt.Printf("\n❌ Failed to search products: %v\n", err)
		log.Errorf("SearchProducts failed: %v", err)
		os.Exit(1)
	}

	printResults(results)
}

func handleCatalog() {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	caps := svc.Capabilities()
	fmt.Println("\n🩺 Configured capabilities:")
	fmt.Printf("   Vision labeling:  %v\n", caps.Vision)
	fmt.Printf("   Embeddings:       %v\n", caps.Embeddings)
	fmt.Printf("   Web search:       %v\n", caps.Search)
	fmt.Printf("   Local catalog:    %v\n", caps.Catalog)
}

func printResults(results []models.RankedResult) {
	if len(results) == 0 {
		fmt.Println("\n📭 No products found")
		return
	}

	fmt.Printf("\n🛍️  Top %d product(s):\n\n", len(results))
	for _, r := range results {
		fmt.Printf("%d. %s\n", r.Rank, r.Title)
		if r.Price > 0 {
			fmt.Printf("   Price: $%.2f %s\n", r.Price, r.Currency)
		} else {
			fmt.Printf("   Price: unavailable\n")
		}
		fmt.Printf("   Score: %.3f (text %.3f, brand %.1f) | Source: %s\n", r.Score, r.TextScore, r.BrandScore, r.Source)
		fmt.Printf("   %s\n", r.ProductURL)
		fmt.Println()
	}
}

func printUsage() {
	fmt.Println("ClipLink - Video to Shoppable Products CLI")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  --db <path>        Path to SQLite catalog (env: CLIPLINK_DB_PATH, default: cliplink.sqlite3)")
	fmt.Println("  --temp <dir>       Temporary directory for downloads (env: CLIPLINK_TEMP_DIR, default: /tmp)")
	fmt.Println("  --frames <n>       Frames sampled per clip (default: 3)")
	fmt.Println("\nUsage:")
	fmt.Println("  cliplink [global-options] analyze <video_url> [--note <hint>] [--frames <n>]")
	fmt.Println("  cliplink [global-options] search <query>")
	fmt.Println("  cliplink [global-options] catalog")
	fmt.Println("\nExamples:")
	fmt.Println("  # Analyze an Instagram reel")
	fmt.Println("  cliplink analyze \"https://www.instagram.com/reel/xyz\" --note \"white sneakers\"")
	fmt.Println()
	fmt.Println("  # Rank products for a raw query")
	fmt.Println("  cliplink search \"nike running shoes\"")
}
