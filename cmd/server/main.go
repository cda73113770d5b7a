// cmd/server is the main entrypoint for the DTC intake node. It loads the
// static replica cluster from an INI config file, wires the coordination
// core, and serves the caller-facing HTTP API.
//
// Example:
//
//	./server --cluster cluster.ini --addr :8080
//
// Example cluster.ini:
//
//	[CLUSTER]
//	node1 = http://replica-1.example:8080
//	node2 = http://replica-2.example:8080
//	node3 = http://replica-3.example:8080
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"groupdtc/internal/api"
	"groupdtc/internal/cluster"
	"groupdtc/internal/compensate"
	"groupdtc/internal/config"
	"groupdtc/internal/coordinator"
	"groupdtc/internal/replica"
	"groupdtc/internal/reportsink"
)

func main() {
	// ── Flags ──────────────────────────────────────────────────────────────
	addr := flag.String("addr", ":8080", "Listen address (host:port)")
	clusterFile := flag.String("cluster", "cluster.ini", "Path to the cluster INI config file")
	replicaTimeout := flag.Duration("replica-timeout", replica.DefaultTimeout, "Per-replica call timeout")
	maxAttempts := flag.Int("compensation-attempts", compensate.DefaultPolicy.MaxAttempts, "Max compensation retry attempts")
	minBackoff := flag.Duration("compensation-min-backoff", compensate.DefaultPolicy.MinBackoff, "Compensation retry min backoff")
	maxBackoff := flag.Duration("compensation-max-backoff", compensate.DefaultPolicy.MaxBackoff, "Compensation retry max backoff")
	kafkaBrokers := flag.String("kafka-brokers", "", "Comma-separated Kafka seed brokers for the failure-reporting sink (empty disables)")
	kafkaTopic := flag.String("kafka-topic", "dtc.failures", "Kafka topic for FAILED transaction reports")
	postgresDSN := flag.String("postgres-dsn", "", "Postgres DSN for the failure-reporting audit sink (empty disables)")
	flag.Parse()

	// ── Cluster ────────────────────────────────────────────────────────────
	endpoints, err := config.LoadCluster(*clusterFile)
	if err != nil {
		log.Fatalf("load cluster config: %v", err)
	}

	replicas := make([]cluster.Replica, len(endpoints))
	for i, e := range endpoints {
		replicas[i] = cluster.Replica{
			Name:   e.Name,
			Client: replica.NewHTTPClient(e.BaseURL, *replicaTimeout),
		}
	}
	c := cluster.New(replicas)
	log.Printf("loaded cluster with %d replicas from %s", c.Size(), *clusterFile)

	// ── Reporting sink ─────────────────────────────────────────────────────
	sinks := []compensate.Sink{reportsink.LogSink{}}

	if *kafkaBrokers != "" {
		kafkaSink, err := reportsink.NewKafkaSink(strings.Split(*kafkaBrokers, ","), *kafkaTopic)
		if err != nil {
			log.Fatalf("init kafka sink: %v", err)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	if *postgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pgSink, err := reportsink.NewPostgresSink(ctx, *postgresDSN)
		cancel()
		if err != nil {
			log.Fatalf("init postgres sink: %v", err)
		}
		defer pgSink.Close()
		sinks = append(sinks, pgSink)
	}

	sink := reportsink.MultiSink{Sinks: sinks}

	// ── Coordinator ────────────────────────────────────────────────────────
	policy := compensate.Policy{
		MaxAttempts: *maxAttempts,
		MinBackoff:  *minBackoff,
		MaxBackoff:  *maxBackoff,
	}
	coord := coordinator.New(c, policy, sink)

	// ── HTTP server ────────────────────────────────────────────────────────
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.Logger(), api.Recovery())

	handler := api.NewHandler(coord)
	handler.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "replicas": len(replicas)})
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// ── Graceful shutdown ──────────────────────────────────────────────────
	go func() {
		log.Printf("dtc intake listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
