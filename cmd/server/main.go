package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/himanishpuri/ClipLink/pkg/cliplink"
)

var (
	port           int
	dbPath         string
	tempDir        string
	numFrames      int
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CLIPLINK_DB_PATH", "cliplink.sqlite3"), "Path to SQLite catalog database")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("CLIPLINK_TEMP_DIR", "/tmp"), "Temporary directory for downloads")
	flag.IntVar(&numFrames, "frames", 3, "Default number of frames sampled per clip")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Load .env if present; API keys usually live there in development.
	_ = godotenv.Load()

	flag.Parse()

	// Parse allowed origins
	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	// Create ClipLink service
	service, err := cliplink.NewService(
		cliplink.WithDBPath(dbPath),
		cliplink.WithTempDir(tempDir),
		cliplink.WithNumFrames(numFrames),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	// Create server configuration
	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		TempDir:        tempDir,
		NumFrames:      numFrames,
		AllowedOrigins: origins,
	}

	// Create and start server
	server := NewServer(service, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
