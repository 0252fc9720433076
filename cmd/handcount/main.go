package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/handcount/internal/app"
	"github.com/ayusman/handcount/internal/server"
	"github.com/ayusman/handcount/internal/store"
	"github.com/ayusman/handcount/internal/tray"
)

const listenAddr = ":8080"

func main() {
	fmt.Println("Handcount - Finger Count Tracking")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".handcount")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "handcount.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the pipeline
	a := app.New(app.Config{
		Store:    st,
		CameraID: 0,
	})

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start the server
	cfg := server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Snapshots: a,
	}

	srv := server.New(cfg)
	go func() {
		fmt.Printf("Starting server on %s\n", listenAddr)
		if err := srv.ListenAndServe(listenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}
	a.SetEnabled(true)

	// Tray owns the main thread until quit
	tr := tray.New()
	a.RegisterCountCallback(tr.SetCount)
	tr.OnToggle(a.SetEnabled)
	tr.OnOpenUI(func() {
		if err := exec.Command("open", "http://localhost"+listenAddr).Start(); err != nil {
			log.Printf("Failed to open dashboard: %v", err)
		}
	})
	tr.OnQuit(a.Stop)

	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handcount/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handcount", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
