package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"clusterhttp/api"
	"clusterhttp/cluster"
	"clusterhttp/gossip"
	"clusterhttp/sharding"
)

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func setupGossip(logger kitlog.Logger) (*gossip.Provider, shutdownFunc) {
	provider, err := gossip.New(gossip.Config{
		System:        opts.Node.System,
		Protocol:      opts.Node.Protocol,
		DataCenter:    opts.Node.DataCenter,
		Roles:         parseList(opts.Node.Roles),
		BindAddr:      opts.Gossip.BindAddr,
		AdvertiseAddr: opts.Gossip.AdvertiseAddr,
		ProbeTimeout:  time.Millisecond * time.Duration(opts.Gossip.ProbeTimeout),
		ProbeInterval: time.Millisecond * time.Duration(opts.Gossip.ProbeInterval),
		Logger:        logger,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to configure gossip: %v", err))
	}

	if err := provider.Start(); err != nil {
		panic(fmt.Sprintf("failed to start gossip: %v", err))
	}

	level.Info(logger).Log("msg", "gossip started", "self", provider.Self().Address)

	shutdown := func(ctx context.Context) error {
		logger.Log("msg", "leaving cluster")

		if err := provider.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop gossip: %w", err)
		}

		return nil
	}

	return provider, shutdown
}

func setupDirectory(specs []regionSpec) *sharding.LocalDirectory {
	directory := sharding.NewLocalDirectory()

	for _, spec := range specs {
		directory.AddHost(spec.name, sharding.NewRegion(spec.name, spec.numShards))
	}

	return directory
}

func setupRestServer(
	wg *sync.WaitGroup,
	provider *gossip.Provider,
	directory sharding.Directory,
	logger kitlog.Logger,
) (*http.Server, shutdownFunc) {
	var (
		dispatcher   = cluster.NewDispatcher(provider, logger)
		aggregator   = sharding.NewAggregator(directory, logger)
		shardTimeout = time.Millisecond * time.Duration(opts.HTTP.ShardTimeout)
	)

	restAPI := &http.Server{
		Addr:    opts.HTTP.BindAddr,
		Handler: api.CreateRouter(provider, dispatcher, aggregator, shardTimeout),
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := restAPI.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				panic(fmt.Sprintf("failed to start REST API server: %v", err))
			}
		}
	}()

	shutdown := func(ctx context.Context) error {
		logger.Log("msg", "shutting down API server")

		if err := restAPI.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown REST API server: %w", err)
		}

		return nil
	}

	return restAPI, shutdown
}
