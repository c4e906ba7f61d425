// salaryhistd serves the salary histogram over HTTP. The server is up
// immediately; endpoints answer 503 {"status":"loading"} until the CSV has
// been loaded in the background. When the CSV changes on disk the dataset
// is reloaded automatically.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/dataset"
	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

func main() {
	var (
		configPath string
		file       string
		port       int
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "Optional config.yaml path")
	flag.StringVar(&file, "file", "", "Path to the salary CSV (overrides config)")
	flag.IntVar(&port, "port", 0, "Listen port (overrides config)")
	flag.StringVar(&logLevel, "log", "", "Log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if file != "" {
		cfg.Data.Path = file
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.SetLevel(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	h := NewHandler(cfg)
	h.RegisterRoutes(e)

	loader := dataset.NewLoader(cfg.Mapping())
	reload := func() {
		if !loader.LoadAsync(cfg.Data.Path, func(ds types.Dataset, err error) {
			if err != nil {
				logging.Errorf("load %s: %v", cfg.Data.Path, err)
				return
			}
			h.SetDataset(ds)
			logging.Infof("dataset ready: %d records from %s", ds.Len(), ds.Source)
		}) {
			logging.Debugf("load already in flight, skipping")
		}
	}
	reload()

	if w, err := dataset.Watch(cfg.Data.Path, reload); err != nil {
		logging.Warnf("file watch disabled: %v", err)
	} else {
		defer w.Close()
	}

	logging.Infof("listening on :%d (data loading in background)", cfg.Server.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}
