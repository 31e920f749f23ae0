/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	configEnvKey    = "HEDERA_SDK_ENGINE_CONFIG"
	shutdownTimeout = 10 * time.Second
)

var (
	configFile = pflag.String("config", "", "Path of the configuration file merged over the defaults")
	topic      = pflag.String("topic", "", "Topic id whose messages are streamed to the log, e.g. 0.0.5000")
)

func configLogger(level string) {
	var err error
	var logLevel log.Level

	if logLevel, err = log.ParseLevel(level); err != nil {
		logLevel = log.InfoLevel
	}

	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
}

func main() {
	pflag.Parse()
	configLogger("info")

	if *configFile != "" {
		if err := os.Setenv(configEnvKey, *configFile); err != nil {
			log.Fatalf("Failed to set config file: %s", err)
		}
	}

	engineConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	configLogger(engineConfig.Log.Level)

	c, err := client.NewFromConfig(engineConfig)
	if err != nil {
		log.Fatalf("Failed to create client: %s", err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, engineConfig, c, *topic); err != nil {
		log.Errorf("Stopped with error: %s", err)
		return
	}

	log.Info("Shut down")
}

// run serves the health and metrics endpoints and runs the background tasks until ctx is done or one of them fails
func run(ctx context.Context, engineConfig *config.Config, c *client.Client, topicId string) error {
	router, err := newRouter(engineConfig, c)
	if err != nil {
		return err
	}

	source, err := newAddressBookSource(engineConfig, c)
	if err != nil {
		return err
	}

	httpConfig := engineConfig.Http
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpConfig.Port),
		Handler:           router,
		IdleTimeout:       httpConfig.IdleTimeout,
		ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
		ReadTimeout:       httpConfig.ReadTimeout,
		WriteTimeout:      httpConfig.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Listening on port %d", httpConfig.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if source != nil {
		g.Go(func() error {
			return updateNetwork(gctx, c, source, engineConfig.Client.NetworkUpdatePeriod)
		})
	}

	if topicId != "" {
		g.Go(func() error {
			return streamTopic(gctx, c, topicId)
		})
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
