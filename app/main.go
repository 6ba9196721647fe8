package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/longvox/themer/app/server"
	"github.com/longvox/themer/app/store"
	"github.com/longvox/themer/app/theme"
)

var opts struct {
	DB string `short:"d" long:"db" env:"THEMER_DB" default:"themer.db" description:"database URL (sqlite file, postgres://... or \"memory\")"`

	Server struct {
		Address      string `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout  int    `long:"read-timeout" env:"READ_TIMEOUT" default:"5" description:"read timeout in seconds"`
		WriteTimeout int    `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30" description:"write timeout in seconds"`
		BaseURL      string `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /themer)"`
		SiteTitle    string `long:"title" env:"TITLE" default:"themer" description:"site title"`
	} `group:"server" namespace:"server" env-namespace:"THEMER_SERVER"`

	Widget struct {
		Origin        string `long:"origin" env:"ORIGIN" default:"https://giscus.app" description:"comments widget origin"`
		Repo          string `long:"repo" env:"REPO" description:"repository for widget discussions (empty disables the embed)"`
		RetryInterval int    `long:"retry-interval" env:"RETRY_INTERVAL" default:"250" description:"widget lookup retry interval in milliseconds"`
		RetryMax      int    `long:"retry-max" env:"RETRY_MAX" default:"15" description:"widget lookup retry budget in seconds"`
	} `group:"widget" namespace:"widget" env-namespace:"THEMER_WIDGET"`

	Sessions struct {
		TTL             int `long:"ttl" env:"TTL" default:"30" description:"idle visitor session TTL in minutes"`
		CleanupInterval int `long:"cleanup-interval" env:"CLEANUP_INTERVAL" default:"1" description:"idle session cleanup interval in minutes"`
	} `group:"sessions" namespace:"sessions" env-namespace:"THEMER_SESSIONS"`

	CacheMaxKeys int `long:"cache-max-keys" env:"THEMER_CACHE_MAX_KEYS" default:"10000" description:"max visitor preferences kept in cache"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("themer %s\n", revision)

	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		os.Exit(0)
	}

	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel)

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Printf("[INFO] starting themer server on %s", opts.Server.Address)

	prefStore, err := makeStore(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cached, err := store.NewCached(prefStore, opts.CacheMaxKeys)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer func() {
		if err := cached.Close(); err != nil {
			log.Printf("[WARN] store close failed: %v", err)
		}
	}()

	manager := theme.NewManager(cached, theme.ManagerConfig{
		SessionTTL:      time.Duration(opts.Sessions.TTL) * time.Minute,
		CleanupInterval: time.Duration(opts.Sessions.CleanupInterval) * time.Minute,
		RetryInterval:   time.Duration(opts.Widget.RetryInterval) * time.Millisecond,
		RetryMax:        time.Duration(opts.Widget.RetryMax) * time.Second,
	})
	go manager.Run(ctx)

	srv, err := server.New(manager, cached, server.Config{
		Address:         opts.Server.Address,
		ReadTimeout:     time.Duration(opts.Server.ReadTimeout) * time.Second,
		WriteTimeout:    time.Duration(opts.Server.WriteTimeout) * time.Second,
		IdleTimeout:     time.Minute,
		ShutdownTimeout: 5 * time.Second,
		Version:         revision,
		BaseURL:         opts.Server.BaseURL,
		SiteTitle:       opts.Server.SiteTitle,
		WidgetOrigin:    opts.Widget.Origin,
		WidgetRepo:      opts.Widget.Repo,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeStore picks the storage backend from the db URL. "memory" keeps
// preferences for the process lifetime only.
func makeStore(dbURL string) (store.Interface, error) {
	if dbURL == "memory" {
		log.Printf("[INFO] using in-memory preference store")
		return store.NewMemory(), nil
	}
	return store.New(dbURL)
}

func setupLogs() io.Writer {
	log.Setup(log.Msec)
	if opts.Debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
	return os.Stdout
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
