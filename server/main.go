// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"flag"
	"fmt"
	"github.com/huaouo/tabsql/engine"
	"github.com/huaouo/tabsql/rpc"
	"github.com/huaouo/tabsql/utils"
	"google.golang.org/grpc"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
)

var configFile = flag.String("f", "config.yaml", "specify a YAML config file")
var port = flag.String("port", "", "specify a tcp port to listen on (overrides config)")
var dir = flag.String("dir", "", "specify a data directory (overrides config)")
var help = flag.Bool("help", false, "print help information")

func main() {
	flag.Parse()
	if *help {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		return
	}

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Cannot load config: %v\n", err)
	}
	if *port != "" {
		config.Server.Port = *port
	}
	if *dir != "" {
		config.Server.Dir = *dir
	}

	sugar := utils.GetLogger(config.Server.LogDir, config.Server.LogLevel).Sugar()
	defer func() { _ = sugar.Sync() }()

	db, err := engine.Open(engine.Config{
		Dir:            config.Server.Dir,
		InMemory:       config.Server.InMemory,
		ParseCacheSize: config.Server.ParseCacheSize,
		Logger:         sugar,
	})
	if err != nil {
		sugar.Fatalf("Cannot open DB: %v", err)
	}

	lis, err := net.Listen("tcp", ":"+config.Server.Port)
	if err != nil {
		sugar.Fatalf("Failed to listen: %v", err)
	}
	sugar.Infof("Start to listen on :%s (tcp)", config.Server.Port)

	s := grpc.NewServer()
	rpc.RegisterDBMSServer(s, &server{db: db, logger: sugar})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		sugar.Info("Shutting down")
		s.GracefulStop()
	}()

	if err := s.Serve(lis); err != nil {
		sugar.Errorf("Failed to serve: %v", err)
	}
	if err := db.Close(); err != nil {
		sugar.Errorf("Cannot close DB: %v", err)
	}
}
