// Command smart-plug drives a networked smart plug: it switches the relay and
// indicator from a local button and radio commands, discovers the network
// coordinator and reports telemetry to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sweeney/smart-plug/internal/config"
	"github.com/sweeney/smart-plug/internal/gpio"
	"github.com/sweeney/smart-plug/internal/metrics"
	"github.com/sweeney/smart-plug/internal/plug"
	"github.com/sweeney/smart-plug/internal/radio"
	"github.com/sweeney/smart-plug/internal/status"
	"github.com/sweeney/smart-plug/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type overrides struct {
	broker   string
	httpAddr string
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "smart-plug",
		Short:         "Networked smart plug controller",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults apply when empty)")

	root.AddCommand(newRunCmd(&configPath), newProbeCmd(&configPath))
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	var ov overrides

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the plug control loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, ov)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&ov.broker, "broker", "", "MQTT broker address (overrides radio.broker)")
	cmd.Flags().StringVar(&ov.httpAddr, "http", "", `HTTP status address (overrides http.addr, "off" disables)`)
	return cmd
}

func newProbeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print the button level and pin mapping, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, overrides{})
			if err != nil {
				return err
			}
			ctrl, err := gpio.NewRealController(cfg.GPIO.Chip, cfg.GPIO.Pins)
			if err != nil {
				return fmt.Errorf("init gpio: %w", err)
			}
			defer ctrl.Close()
			return probe(cmd.OutOrStdout(), ctrl, cfg.GPIO.Pins)
		},
	}
}

func loadConfig(path string, ov overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if ov.broker != "" {
		cfg.Radio.Broker = ov.broker
	}
	switch ov.httpAddr {
	case "":
	case "off":
		cfg.HTTP.Addr = ""
	default:
		cfg.HTTP.Addr = ov.httpAddr
	}
	return cfg, nil
}

func probe(w io.Writer, button plug.Button, pins gpio.Pins) error {
	pressed, err := button.Pressed()
	if err != nil {
		return fmt.Errorf("read button: %w", err)
	}
	level := "released"
	if pressed {
		level = "pressed"
	}
	fmt.Fprintf(w, "button (pin %d): %s\n", pins.Button, level)
	fmt.Fprintf(w, "relay=%d red=%d green=%d blue=%d\n", pins.Relay, pins.Red, pins.Green, pins.Blue)
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	// Initialize GPIO
	ctrl, err := gpio.NewRealController(cfg.GPIO.Chip, cfg.GPIO.Pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}

	// Initialize radio
	rad, err := radio.NewRealRadio(cfg.RadioOptions())
	if err != nil {
		ctrl.Close()
		return fmt.Errorf("init radio: %w", err)
	}

	return serve(ctx, cfg, ctrl, rad)
}

// serve runs the poll loop and the status server on the given ports until ctx
// is cancelled or the server fails. Both ports are closed on return.
func serve(ctx context.Context, cfg *config.Config, ctrl gpio.Controller, rad radio.Client) error {
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Printf("gpio close: %v", err)
		}
	}()
	defer func() {
		if err := rad.Close(); err != nil {
			log.Printf("radio close: %v", err)
		}
	}()

	boot := time.Now()
	tracker := status.NewTracker(boot, status.Config{
		NodeID:      cfg.Node.ID,
		Address:     cfg.NodeAddress().String(),
		PollMs:      cfg.Timing.Poll.Milliseconds(),
		DiscoveryMs: cfg.Timing.Discovery.Milliseconds(),
		TelemetryMs: cfg.Timing.Telemetry.Milliseconds(),
		DebounceMs:  cfg.Timing.Debounce.Milliseconds(),
		Broker:      cfg.Radio.Broker,
		Prefix:      cfg.Radio.Prefix,
		HTTPAddr:    cfg.HTTP.Addr,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	node := plug.NewNode(plug.Ports{
		Radio:   rad,
		Outputs: ctrl,
		Button:  ctrl,
		Sensor:  cfg.SensorSource(),
	}, monotonicClock(boot), cfg.Periods())

	g, gctx := errgroup.WithContext(ctx)

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker, reg)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: node=%s address=%s broker=%s poll=%v", cfg.Node.ID, cfg.NodeAddress(), cfg.Radio.Broker, cfg.Timing.Poll)

	ticker := time.NewTicker(cfg.Timing.Poll)
	defer ticker.Stop()

	g.Go(func() error {
		return runLoop(gctx, node, rad, tracker, m, ticker.C)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		log.Printf("shutting down")
		return nil
	}
	return err
}

// monotonicClock returns milliseconds since boot from Go's monotonic clock.
func monotonicClock(boot time.Time) func() int64 {
	return func() int64 {
		return time.Since(boot).Milliseconds()
	}
}

func runLoop(ctx context.Context, node *plug.Node, radioStatus radio.ConnectionStatus, tracker *status.Tracker, m *metrics.Metrics, tick <-chan time.Time) error {
	return node.Run(ctx, tick, func(events []plug.Event) {
		for _, e := range events {
			logEvent(e)
		}
		if tracker != nil {
			tracker.Update(node, events)
			if radioStatus != nil {
				tracker.SetRadioConnected(radioStatus.IsConnected())
			}
		}
		if m != nil {
			m.Observe(node.State(), node.Resolved(), events)
		}
	})
}

func logEvent(e plug.Event) {
	switch e.Type {
	case plug.EventCoordinatorDiscovered:
		log.Printf("coordinator discovered: %s", e.Peer)
	case plug.EventDiscoveryMiss:
		log.Printf("discovery: no %q among peers", plug.CoordinatorNodeID)
	case plug.EventDiscoveryFailed:
		log.Printf("discovery failure: %v", e.Err)
	case plug.EventTelemetrySent:
		// Every telemetry period; visible in status and metrics.
	case plug.EventTelemetryFailed:
		log.Printf("transmission failure: %v", e.Err)
	case plug.EventCommandReceived:
		log.Printf("data received from %s: %q (state=%s)", e.Peer, e.Payload, e.State)
	case plug.EventButtonToggled:
		log.Printf("button pressed: state=%s", e.State)
	default:
		if e.Err != nil {
			log.Printf("%s: %v", e.Type, e.Err)
		} else {
			log.Printf("event: %s", e.Type)
		}
	}
}
