package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/grantlink/grantlink/auth"
	"github.com/grantlink/grantlink/config"
	controller "github.com/grantlink/grantlink/controllers"
	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/mq"
	"github.com/grantlink/grantlink/servercfg"
)

var version = "v0.1.0"

// default GC percent when GOGC is unset, keeps the long-lived server lean
const defaultGCPercent = 10

// Start DB connection and start API request handler
func main() {
	absoluteConfigPath := flag.String("c", "", "absolute path to configuration file")
	flag.Parse()
	setupConfig(*absoluteConfigPath)
	servercfg.SetVersion(version)
	fmt.Println(models.RetrieveLogo()) // print the logo
	initialize()                       // initial db and seeded platform catalog
	setGarbageCollection()
	setVerbosity()
	defer database.CloseDB()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()
	var waitGroup sync.WaitGroup
	startControllers(&waitGroup, ctx)
	waitGroup.Wait()
}

func setupConfig(absoluteConfigPath string) {
	if len(absoluteConfigPath) > 0 {
		cfg, err := config.ReadConfig(absoluteConfigPath)
		if err != nil {
			logger.Log(0, fmt.Sprintf("failed parsing config at: %s", absoluteConfigPath))
			return
		}
		config.Config = cfg
	}
}

func initialize() {
	var err error

	if servercfg.GetMasterKey() == "" {
		logger.Log(0, "warning: MASTER_KEY not set, this could make account recovery difficult")
	}

	if err = database.InitializeDatabase(); err != nil {
		logger.FatalLog("Error connecting to database: ", err.Error())
	}
	logger.Log(0, "database successfully connected")

	logic.SetJWTSecret()

	if err = logic.SeedPlatforms(); err != nil {
		logger.Log(0, "could not seed platform catalog: ", err.Error())
	}

	err = logic.TimerCheckpoint()
	if err != nil {
		logger.Log(1, "Timer error occurred: ", err.Error())
	}

	var authProvider = auth.InitializeAuthProvider()
	if authProvider != "" {
		logger.Log(0, "OAuth provider,", authProvider+",", "initialized")
	} else {
		logger.Log(0, "no OAuth provider found or not configured, continuing without OAuth")
	}
}

func startControllers(wg *sync.WaitGroup, ctx context.Context) {
	if servercfg.IsMessageQueueBackend() {
		mq.SetupMQTT()
		go mq.Keepalive(ctx)
	}

	if servercfg.IsRestBackend() {
		wg.Add(1)
		go controller.HandleRESTRequests(wg, ctx)
	}

	wg.Add(1)
	go manageLeases(wg, ctx)

	if !servercfg.IsRestBackend() && !servercfg.IsMessageQueueBackend() {
		logger.Log(0, "No Server Mode selected, so nothing is being served! Set Rest mode (REST_BACKEND) or MessageQueue (MESSAGEQUEUE_BACKEND) to 'true'.")
	}
}

// manageLeases - expires overdue credential checkouts in the background
func manageLeases(wg *sync.WaitGroup, ctx context.Context) {
	defer wg.Done()
	go logic.ManageSessionLeases(ctx)
	<-ctx.Done()
	logger.Log(0, "lease manager shutting down")
}

func setVerbosity() {
	verbose := int(servercfg.GetVerbosity())
	logger.Verbosity = verbose
}

func setGarbageCollection() {
	_, gcset := os.LookupEnv("GOGC")
	if !gcset {
		debug.SetGCPercent(defaultGCPercent)
	}
}
