// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/gona-network/gonastake/api"
	"github.com/gona-network/gonastake/api/admin/health"
	"github.com/gona-network/gonastake/co"
	"github.com/gona-network/gonastake/genesis"
	"github.com/gona-network/gonastake/log"
	"github.com/gona-network/gonastake/logdb"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/metrics"
	"github.com/gona-network/gonastake/runtime"
	"github.com/gona-network/gonastake/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	serveFlags := []cli.Flag{
		dataDirFlag,
		cacheFlag,
		stateCacheFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		apiLogsLimitFlag,
		enableAPILogsFlag,
		verbosityFlag,
		jsonLogsFlag,
		pprofFlag,
		skipLogsFlag,
		ntpServerFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		enableAdminFlag,
		adminAddrFlag,
	}

	app := cli.App{
		Version:   fullVersion(),
		Name:      "gonastake",
		Usage:     "Staking ledger of the Gona network",
		Copyright: "2025 The Gona developers",
		Flags:     append([]cli.Flag{genesisFlag}, serveFlags...),
		Action:    defaultAction,
		Commands: []cli.Command{
			{
				Name:   "dev",
				Usage:  "run with the built-in development genesis",
				Flags:  append([]cli.Flag{persistFlag}, serveFlags...),
				Action: devAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(int(ctx.Uint64(verbosityFlag.Name)), ctx.Bool(jsonLogsFlag.Name))

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB, err := openLogDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	return serve(ctx, logLevel, gene, instanceDir, mainDB, logDB)
}

func devAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(int(ctx.Uint64(verbosityFlag.Name)), ctx.Bool(jsonLogsFlag.Name))
	gene := genesis.NewDevnet()

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
		err         error
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
		if logDB, err = openLogDB(instanceDir); err != nil {
			mainDB.Close()
			return err
		}
	} else {
		instanceDir = "Memory"
		if mainDB, err = lvldb.NewMem(); err != nil {
			return err
		}
		if logDB, err = logdb.NewMem(); err != nil {
			mainDB.Close()
			return err
		}
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	printDevAccounts()
	return serve(ctx, logLevel, gene, instanceDir, mainDB, logDB)
}

func serve(
	ctx *cli.Context,
	logLevel *slog.LevelVar,
	gene *genesis.Genesis,
	instanceDir string,
	mainDB *lvldb.LevelDB,
	logDB *logdb.LogDB,
) error {
	metricsEnabled := ctx.Bool(enableMetricsFlag.Name)
	if metricsEnabled {
		metrics.InitializePrometheusMetrics()
	}

	stater := state.NewStater(mainDB, int(ctx.Uint64(stateCacheFlag.Name)))
	if err := gene.Build(stater); err != nil {
		return err
	}
	rt := runtime.New(stater, logDB, runtime.SystemClock)
	h := health.New(rt, gene.ID())

	handler, apiCloser := api.New(rt, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		SkipLogs:        ctx.Bool(skipLogsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   metricsEnabled,
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})
	defer func() { logger.Info("closing subscriptions..."); apiCloser() }()
	defer rt.Close()

	apiURL, srvCloser, err := startAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	metricsURL := ""
	if metricsEnabled {
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, h)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		adminURL = url
	}

	printStartupMessage(gene, instanceDir, apiURL, metricsURL, adminURL)

	exit := handleExitSignal()
	var goes co.Goes
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		goes.Go(func() { syncClock(exit, server, 10*time.Minute, h) })
	}
	<-exit.Done()
	if !goes.WaitTimeout(10 * time.Second) {
		logger.Warn("background tasks still running", "n", goes.Running())
	}
	return nil
}

func printStartupMessage(gene *genesis.Genesis, dataDir, apiURL, metricsURL, adminURL string) {
	fmt.Printf(`Starting %v
    Network     [ %v %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]
    Admin       [ %v ]
`,
		fmt.Sprintf("gonastake %v", fullVersion()),
		gene.ID(), gene.Name(),
		dataDir,
		apiURL,
		orDisabled(metricsURL),
		orDisabled(adminURL),
	)
}

func printDevAccounts() {
	fmt.Println("Development accounts (address | staker key):")
	for i, acc := range genesis.DevAccounts() {
		fmt.Printf("  %d  %v | %v\n", i, acc.Address, acc.StakerKey)
	}
}

func orDisabled(url string) string {
	if url == "" {
		return "Disabled"
	}
	return url
}
