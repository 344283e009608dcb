package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"gpiotask/host/monitor"
	"gpiotask/host/serial"
)

var (
	opts = struct {
		device    string
		baud      int
		metrics   string
		namespace string
		quiet     bool
	}{}

	rootCmd = &cobra.Command{
		Use:   "gpiotask-monitor",
		Short: "Follow a gpiotask board console",
		Long: "Read the console of a board running the gpiotask demo, check the task " +
			"lifecycle as it happens and optionally export it as Prometheus metrics.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&opts.device, "device", "d", "/dev/ttyUSB0", "Serial device path, - for stdin")
	rootCmd.Flags().IntVarP(&opts.baud, "baud", "b", 115200, "Baud rate (ignored for USB CDC)")
	rootCmd.Flags().StringVar(&opts.metrics, "metrics", "", "Serve Prometheus metrics on this address, e.g. :9100")
	rootCmd.Flags().StringVar(&opts.namespace, "namespace", "gpiotask", "Metric namespace")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print violations")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var metrics *monitor.Metrics
	if opts.metrics != "" {
		reg := prom.NewRegistry()
		m, err := monitor.NewMetrics(opts.namespace, reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = m

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: opts.metrics, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Error: metrics server: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		fmt.Printf("Serving metrics on %s/metrics\n", opts.metrics)
	}

	cfg := serial.DefaultConfig(opts.device)
	cfg.Baud = opts.baud
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	var r io.Reader = port
	if opts.device != serial.StdinDevice {
		// Flush stale data from the OS buffer
		_ = port.Flush()
		r = serial.NewTimeoutReader(ctx, port)
		fmt.Printf("Monitoring %s at %d baud\n", opts.device, opts.baud)
	}

	mon := monitor.New(metrics)
	if !opts.quiet {
		mon.OnEvent = func(ev monitor.Event) {
			fmt.Printf("%-16s %s\n", ev.Kind, ev.Line)
		}
		mon.OnUnknown = func(line string) {
			fmt.Printf("%-16s %s\n", "?", line)
		}
	}
	mon.OnViolation = func(v monitor.Violation) {
		fmt.Fprintf(os.Stderr, "VIOLATION %s (line %q)\n", v, v.Line)
	}

	err = mon.Run(ctx, r)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	fmt.Printf("Boots: %d, violations: %d\n", mon.Checker().Boots(), mon.Violations())
	if err == nil && mon.Violations() > 0 {
		err = fmt.Errorf("%d violations", mon.Violations())
	}
	return err
}
