/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command primefixctl is the operator-facing entrypoint for the FIX
// session engine: it wires config, logging, metrics, transport, and
// session together, then either idles on a live session, runs the
// interactive REPL, or prints how to run the benchmarks with go test.
package main

import (
	"fmt"
	"os"
	"time"

	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prime-fix-engine-go/config"
	"prime-fix-engine-go/database"
	"prime-fix-engine-go/fixclient"
	"prime-fix-engine-go/fixsession"
	"prime-fix-engine-go/logging"
	"prime-fix-engine-go/metrics"
	"prime-fix-engine-go/transport"
)

var (
	configPath string
	dbPath     string
	account    string
	metricsAddr string
)

func main() {
	root := &cobra.Command{
		Use:   "primefixctl",
		Short: "Operate a FIX session engine client",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to session config file (YAML/TOML/JSON)")
	root.PersistentFlags().StringVar(&dbPath, "db", "primefix.db", "path to SQLite persistence file")
	root.PersistentFlags().StringVar(&account, "account", "", "account to stamp on outbound orders/cancels/quotes")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(connectCmd(), replCmd(), benchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect and log on, then idle until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, mdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer mdb.Close()

			if err := session.Connect(session.ConfigAddress()); err != nil {
				return fmt.Errorf("primefixctl: connect: %w", err)
			}
			waitForLoginOrExit(app, session)

			select {}
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Connect and log on, then drive the session from an interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, mdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer mdb.Close()

			if err := session.Connect(session.ConfigAddress()); err != nil {
				return fmt.Errorf("primefixctl: connect: %w", err)
			}
			waitForLoginOrExit(app, session)

			fixclient.Repl(app)
			session.Close()
			return nil
		},
	}
}

func benchCmd() *cobra.Command {
	var entries int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Print the go test command that runs the market data extraction benchmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("primefixctl bench: use `go test -bench=. -benchmem ./fixclient/` for full output.\n")
			fmt.Printf("Requested entry count: %d (informational only; this subcommand does not invoke the Go toolchain)\n", entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&entries, "entries", 10, "number of synthetic market data entries to size the benchmark around")
	return cmd
}

// bootstrap loads config, wires logging/metrics/transport, constructs the
// session and the application layer on top of it, and optionally starts a
// Prometheus HTTP exporter. It does not dial; callers call Connect.
func bootstrap() (*fixclient.FixApp, *namedSession, *database.MarketDataDb, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("primefixctl: %w", err)
	}
	if account != "" {
		cfg.Account = account
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("primefixctl: building logger: %w", err)
	}
	factory := logging.NewFactory()
	factory.InstallZap(zapLogger)
	sessionLog := factory.For("fixsession")
	appLog := factory.For("fixclient")

	reg := prometheus.NewRegistry()
	met := metrics.NewRegistry(reg)
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go http.ListenAndServe(metricsAddr, mux)
	}

	mdb, err := database.NewMarketDataDb(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("primefixctl: opening database: %w", err)
	}

	tr := transport.NewTCPTransport()
	session := fixsession.NewSession(cfg, tr, sessionLog, met, fixsession.SystemClock{})

	app := fixclient.NewFixApp(fixclient.NewConfig(cfg.Account), session, mdb, appLog)

	return app, &namedSession{Session: session, address: cfg.Address}, mdb, nil
}

// namedSession carries the dial address alongside *fixsession.Session,
// since FixSessionConfig.Address is read once at bootstrap rather than
// threaded through every call site that needs to (re)dial.
type namedSession struct {
	*fixsession.Session
	address string
}

func (n *namedSession) ConfigAddress() string { return n.address }

// waitForLoginOrExit polls session.State() until it reaches LOGGED_IN
// (firing app.NotifyLoggedIn on success) or the app decides to give up
// after a Logout/failure, since fixsession.Session has no blocking
// "wait for handshake" call of its own.
func waitForLoginOrExit(app *fixclient.FixApp, session *namedSession) {
	for i := 0; i < 100; i++ {
		if session.State() == fixsession.StateLoggedIn {
			app.NotifyLoggedIn()
			return
		}
		if app.ShouldExit() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
