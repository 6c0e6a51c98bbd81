package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/osinstall/nfs-source/pkg/mount"
	"github.com/osinstall/nfs-source/pkg/observability"
	"github.com/osinstall/nfs-source/pkg/source"
	"github.com/osinstall/nfs-source/pkg/task"
	"github.com/osinstall/nfs-source/pkg/utils"
)

var (
	// Source configuration
	url           = flag.String("url", "", "NFS source URL of the form nfs:[options:]host:path (required for setup)")
	mountLocation = flag.String("mount-location", source.InstallTree, "Install tree mount location")

	// Action to perform
	action = flag.String("action", "status", "Action to perform: setup, teardown, status, or monitor")

	// Observability
	metricsAddress = flag.String("metrics-address", "", "Address to serve Prometheus metrics on (monitor action, empty disables)")
	pollInterval   = flag.Duration("poll-interval", 10*time.Second, "Readiness poll interval for the monitor action")

	// Version flag
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// Set via ldflags during build
var version = "dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	mounter := mount.NewMounter()
	src := source.New(source.Config{
		MountLocation: *mountLocation,
		Mounter:       mounter,
	})
	if *url != "" {
		src.SetURL(*url)
	}

	var err error
	switch *action {
	case "setup":
		err = runSetup(src)
	case "teardown":
		err = runTeardown(src)
	case "status":
		err = printStatus(src, mounter)
	case "monitor":
		err = runMonitor(src)
	default:
		klog.Fatalf("Unknown action %q (want setup, teardown, status, or monitor)", *action)
	}

	if err != nil {
		klog.Fatalf("Action %s failed: %v", *action, err)
	}
}

func runSetup(src *source.NFSSource) error {
	if src.URL() == "" {
		klog.Fatal("--url is required for setup")
	}

	ready, err := src.IsReady()
	if err != nil {
		return err
	}
	if ready {
		return fmt.Errorf("a source is already mounted at %s", src.MountLocation())
	}

	runner := task.NewRunner(nil)
	return runner.RunAll(context.Background(), src.SetUpWithTasks())
}

func runTeardown(src *source.NFSSource) error {
	// Teardown tasks are not idempotent; gate on readiness here, as
	// the orchestrator would.
	ready, err := src.IsReady()
	if err != nil {
		return err
	}
	if !ready {
		return fmt.Errorf("%w: nothing mounted at %s", utils.ErrSourceNotReady, src.MountLocation())
	}

	runner := task.NewRunner(nil)
	return runner.RunAll(context.Background(), src.TearDownWithTasks())
}

func printStatus(src *source.NFSSource, mounter mount.Mounter) error {
	ready, err := src.IsReady()
	if err != nil {
		return err
	}

	fmt.Printf("type:           %s\n", src.Type())
	fmt.Printf("url:            %s\n", src.URL())
	fmt.Printf("mount location: %s\n", src.MountLocation())
	fmt.Printf("ready:          %v\n", ready)

	if !ready {
		return nil
	}

	entry, err := mount.FindMountEntry(context.Background(), src.MountLocation())
	if err != nil {
		return err
	}
	fmt.Printf("mounted from:   %s (%s, %s)\n", entry.Source, entry.FSType, entry.Options)

	stats, err := mounter.GetDeviceStats(src.MountLocation())
	if err != nil {
		return err
	}
	fmt.Printf("size:           %d bytes (%d available)\n", stats.TotalBytes, stats.AvailableBytes)
	return nil
}

// runMonitor serves Prometheus metrics and keeps the readiness gauge
// in sync with the live mount table until interrupted.
func runMonitor(src *source.NFSSource) error {
	if *metricsAddress == "" {
		klog.Fatal("--metrics-address is required for monitor")
	}

	metrics := observability.NewMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: *metricsAddress, Handler: mux}

	go func() {
		klog.Infof("Serving metrics on %s", *metricsAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Fatalf("Metrics server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*pollInterval)
	defer ticker.Stop()

	updateReady(src, metrics)
	for {
		select {
		case <-ticker.C:
			updateReady(src, metrics)
		case sig := <-sigChan:
			klog.Infof("Received signal %s, shutting down", sig)
			return server.Close()
		}
	}
}

func updateReady(src *source.NFSSource, metrics *observability.Metrics) {
	ready, err := src.IsReady()
	if err != nil {
		klog.Errorf("Failed to query mount state: %v", err)
		return
	}
	klog.V(4).Infof("Source at %s ready=%v", src.MountLocation(), ready)
	metrics.SetReady(ready)
}
