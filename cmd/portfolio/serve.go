package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/contact"
	"github.com/jonathan/portfolio/internal/db"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/resume"
	"github.com/jonathan/portfolio/internal/server"
	"github.com/jonathan/portfolio/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long:  "Starts the HTTP server hosting the portfolio page, the contact form and the résumé download.",
	RunE:  runServe,
}

var (
	servePort           int
	serveProfile        string
	serveProjects       string
	serveDatabaseURL    string
	serveTheme          string
	serveTrustedProxies []string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveProfile, "profile", "p", "", "Path to profile file (JSON or YAML)")
	serveCmd.Flags().StringVar(&serveProjects, "projects", "", "Path to project catalog file")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "Database URL (sqlite://path or postgres://...)")
	serveCmd.Flags().StringVar(&serveTheme, "theme", "", "Default theme: light or dark")
	serveCmd.Flags().StringSliceVar(&serveTrustedProxies, "trusted-proxy", nil, "Proxy addresses allowed to set X-Forwarded-For")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(os.Getenv)
	if err != nil {
		return err
	}
	flagInt(cmd, "port", servePort, &cfg.Port)
	flagString(cmd, "profile", serveProfile, &cfg.Profile)
	flagString(cmd, "projects", serveProjects, &cfg.Projects)
	flagString(cmd, "db-url", serveDatabaseURL, &cfg.DatabaseURL)
	flagString(cmd, "theme", serveTheme, &cfg.DefaultTheme)
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.Projects)
	if err != nil {
		return err
	}
	created, err := cfg.CreationTime()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	// The page is served immediately; the résumé button stays disabled until the probe finishes.
	capability := rendering.NewCapability(nil)
	capability.Start()

	if cfg.RelayAccessKey == "" {
		log.Printf("[SERVER] Warning: no relay access key configured; contact submissions will fail")
	}
	relay := contact.NewRelay(cfg.RelayEndpoint, cfg.RelayAccessKey, nil)
	contactSvc := contact.NewService(store, relay, p.Contact.Email)

	state := site.NewState(p, catalog, capability, site.ParseTheme(cfg.DefaultTheme))
	gen := resume.NewGenerator(capability, resume.Options{FileName: cfg.FileName, CreationDate: created})

	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		State:          state,
		Generator:      gen,
		Contact:        contactSvc,
		Store:          store,
		TrustedProxies: serveTrustedProxies,
	})
	if err != nil {
		_ = store.Close()
		return err
	}

	log.Printf("[SERVER] Serving %s with %d project(s), database %s", p.Name, len(catalog.All()), db.Redact(cfg.DatabaseURL))
	return srv.Start()
}
