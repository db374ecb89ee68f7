package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JimZhouZZY/klotski-sub001/config"
	"github.com/JimZhouZZY/klotski-sub001/shell"
)

var (
	GitVersion string
)

//go:embed klotski.txt
var klotskibanner string

func main() {
	fmt.Println(klotskibanner)
	fmt.Println(GitVersion)

	// Arguments with an = sign are config overrides; everything else is a
	// one-shot command to execute instead of starting the interactive loop.
	var cfgArgs, cmdArgs []string
	for _, arg := range os.Args[1:] {
		if strings.Contains(arg, "=") {
			cfgArgs = append(cfgArgs, arg)
		} else {
			cmdArgs = append(cmdArgs, arg)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Load(cfgArgs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().Msgf("Loaded config: %v", cfg.AllSettings())

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	cmdLine := strings.TrimSpace(strings.Join(cmdArgs, " "))

	sc := shell.NewShellController(cfg, GitVersion)
	if cmdLine == "" {
		go sc.Loop(sig)
	} else {
		sc.Execute(sig, cmdLine)
		sig <- syscall.SIGINT
	}

	<-idleConnsClosed
	log.Info().Msg("shutting down")
}
