// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forkscan/forkscand/config"
	"github.com/forkscan/forkscand/consensus"
	"github.com/forkscan/forkscand/dbaccess"
	"github.com/forkscan/forkscand/logger"
	"github.com/forkscan/forkscand/rpcclient"
	"github.com/forkscan/forkscand/signal"
	"github.com/forkscan/forkscand/util/panics"
	"github.com/forkscan/forkscand/version"
)

const dbDirname = "db"

func main() {
	if err := forkscandMain(); err != nil {
		os.Exit(1)
	}
}

// forkscandMain is the real main function for forkscand. It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func forkscandMain() error {
	// Load configuration and parse command line. This also initializes
	// logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	// Get a channel that will be closed when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C).
	interrupt := signal.InterruptListener()

	log.Infof("Version %s", version.Version())

	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:           cfg.RPCServer,
		User:           cfg.RPCUser,
		Pass:           cfg.RPCPass,
		DisableTLS:     cfg.NoTLS,
		Proxy:          cfg.Proxy,
		ProxyUser:      cfg.ProxyUser,
		ProxyPass:      cfg.ProxyPass,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		log.Errorf("Couldn't create an RPC client for %s: %s", cfg.RPCServer, err)
		return err
	}

	if signal.InterruptRequested(interrupt) {
		return nil
	}

	// The scan itself runs to completion; only the boundaries between the
	// scan and the persistence step honor the interrupt.
	report, err := consensus.NewScanner(client).Run(cfg.StartHeight)
	if err != nil {
		log.Errorf("Scan failed: %+v", err)
		return err
	}

	err = printReport(report)
	if err != nil {
		log.Errorf("Couldn't print the scan report: %s", err)
		return err
	}

	if signal.InterruptRequested(interrupt) {
		return nil
	}

	if !cfg.NoDatabase {
		err = storeReport(cfg, report)
		if err != nil {
			log.Errorf("Couldn't store the scan report: %s", err)
			return err
		}
	}

	return nil
}

// printReport writes the scan report to stdout as indented JSON.
func printReport(report *consensus.ScanReport) error {
	marshalled, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(marshalled))
	return nil
}

// storeReport persists the scan report under the configured data directory.
// A report for the same tip from an earlier run is left untouched.
func storeReport(cfg *config.Config, report *consensus.ScanReport) error {
	databaseContext, err := dbaccess.New(filepath.Join(cfg.DataDir, dbDirname))
	if err != nil {
		return err
	}
	defer func() {
		err := databaseContext.Close()
		if err != nil {
			log.Errorf("Couldn't close the database: %s", err)
		}
	}()

	exists, err := dbaccess.HasScanReport(databaseContext, &report.TipHash)
	if err != nil {
		return err
	}
	if exists {
		log.Infof("A scan report for tip %s already exists, not overwriting it",
			report.TipHash)
		return nil
	}

	err = dbaccess.StoreScanReport(databaseContext, report)
	if err != nil {
		return err
	}
	log.Infof("Stored the scan report for tip %s", report.TipHash)
	return nil
}
