package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/neerajjha549/custom-protocol-over-tcp/internal/client"
	"github.com/neerajjha549/custom-protocol-over-tcp/internal/config"
	"github.com/neerajjha549/custom-protocol-over-tcp/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	host := flag.String("host", "", "Server host (overrides config)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *host != "" {
		cfg.Client.Host = *host
	}
	if *port != 0 {
		cfg.Client.Port = *port
	}
	if *logLevel != "" {
		cfg.Logging.Level = strings.ToUpper(*logLevel)
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	sess, err := client.Dial(cfg.Client.Host, cfg.Client.Port)
	if err != nil {
		logger.Error("Connection failed. Is the server running? (%v)", err)
		os.Exit(1)
	}
	defer sess.Close()

	logger.Info("Connected to %s:%d", cfg.Client.Host, cfg.Client.Port)

	// Ctrl+C is a request to disconnect politely, not an error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println()
		_ = sess.Quit()
		os.Exit(0)
	}()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Println("Commands:")
		fmt.Println("  echo <text>  - server sends the text back")
		fmt.Println("  rev <text>   - server reverses the text")
		fmt.Println("  quit         - disconnect")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			// End of input behaves like quit
			_ = sess.Quit()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")

		var reply string
		switch strings.ToLower(verb) {
		case "echo":
			reply, err = sess.Echo(rest)
		case "rev":
			reply, err = sess.Reverse(rest)
		case "quit":
			if err := sess.Quit(); err != nil {
				logger.Warn("Failed to send quit: %v", err)
			}
			return
		default:
			fmt.Println("Invalid command. Please use 'echo', 'rev', or 'quit'.")
			continue
		}

		if err != nil {
			if errors.Is(err, client.ErrDisconnected) {
				fmt.Println("Server closed the connection.")
			} else {
				logger.Error("Request failed: %v", err)
			}
			return
		}

		fmt.Println(reply)
	}
}
