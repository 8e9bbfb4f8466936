// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// walletsubmitd is a demonstration driver for the wallet transaction
// submission scheduler. It is not a production wallet: it exists so the
// scheduler's ambient/domain dependencies (CLI, config, metrics, logging)
// all have a real caller, as a thin urfave/cli/v2 shell around the
// underlying library packages.
package main

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/log"

	"github.com/luxfi/walletsubmit/internal/resubmit"
	"github.com/luxfi/walletsubmit/internal/retry"
	"github.com/luxfi/walletsubmit/internal/txaux"
	"github.com/luxfi/walletsubmit/internal/txid"
	"github.com/luxfi/walletsubmit/metrics"
	"github.com/luxfi/walletsubmit/submission"
)

const clientIdentifier = "walletsubmitd"

var app = &cli.App{
	Name:  clientIdentifier,
	Usage: "drive the wallet transaction submission scheduler against an in-memory demo network",
	Flags: configFlags,
}

func init() {
	app.Action = run
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func makeID(label string) txid.ID {
	return txid.ID(sha256.Sum256([]byte(label)))
}

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	var policy retry.Policy
	switch cfg.RetryPolicy {
	case "exponential":
		policy = retry.NewExponential(cfg.MaxRetries, cfg.Base)
	default:
		policy = retry.NewConstant(cfg.Skip, cfg.MaxRetries)
	}

	var collectors *metrics.Collectors
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		collectors = metrics.NewCollectors(reg, "walletsubmit")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Info("walletsubmitd: serving metrics", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error("walletsubmitd: metrics server exited", "err", err)
			}
		}()
	} else {
		collectors = metrics.NewCollectors(nil, "walletsubmit")
	}

	net := newFakeNetwork(cfg.AdoptAfter)
	resubmitFn := resubmit.Default(net.transmit, policy)
	sched := submission.New(resubmitFn, submission.WithMetrics(collectors))

	idA := makeID("A")
	idB := makeID("B")
	batch := map[txid.ID]txaux.TxAux{
		idA: {Payload: idA[:]},
		idB: {Payload: idB[:], Inputs: []txaux.Outpoint{{Producer: idA, Known: true}}},
	}
	sched = sched.AddPending(batch)
	log.Info("walletsubmitd: seeded pending set", "A", idA, "B(depends on A)", idB)

	for i := 0; i < cfg.Ticks; i++ {
		if adopted := net.newlyAdopted(); len(adopted) > 0 {
			sched = sched.RemPending(adopted)
			log.Info("walletsubmitd: adoption notified", "slot", sched.CurrentSlot(), "ids", adopted)
		}

		slotBefore := sched.CurrentSlot()
		var evicted []txid.ID
		evicted, sched = sched.Tick(func(err error) {
			log.Error("walletsubmitd: tick aborted", "err", err)
		})
		fmt.Printf("slot %d: pending=%d nursery=%d evicted=%v\n",
			slotBefore, sched.Pending().Len(), len(sched.Schedule().Nursery()), evicted)
	}
	return nil
}
