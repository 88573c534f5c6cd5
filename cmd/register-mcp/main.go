package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-registration-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("%s %s\n", server.ServerName, Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Printf("%s - MCP server for rigid image registration\n", server.ServerName)
			fmt.Println()
			fmt.Println("Usage: register-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug          Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=1080      Log-polar angular sectors\n", server.EnvLogPolarTheta)
			fmt.Printf("  %s=360         Log-polar radial rings\n", server.EnvLogPolarRho)
			fmt.Printf("  %s=false           Estimate channels sequentially\n", server.EnvParallel)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	if cfg.Debug {
		log.Printf("Image Registration MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("log-polar %dx%d, parallel=%v", cfg.Registration.SizeTheta, cfg.Registration.SizeRho, cfg.Registration.Parallel)
	}

	srv, err := server.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
