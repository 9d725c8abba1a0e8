/*
File Name:  main.go

A thin CLI shell over the airx core (grounded on original_source's
src/main.rs: load config, wire callbacks, run the two blocking loops
until interrupted), the Go mirror of a host embedding the FFI surface
directly instead of through cgo.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/airx-go/airx"
)

func main() {
	configFile := flag.String("config", "Config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg := airx.DefaultConfig()
	if status, err := airx.LoadConfig(*configFile, &cfg); status != airx.ExitSuccess {
		fmt.Fprintf(os.Stderr, "loading config %q: %v\n", *configFile, err)
		os.Exit(status)
	}

	var interrupted int32
	shouldInterrupt := func() bool { return atomic.LoadInt32(&interrupted) != 0 }

	service := airx.New(cfg, airx.Filters{
		LogError: func(function, format string, v ...interface{}) {
			log.Printf("["+function+"] "+format, v...)
		},
	})
	service.Stdout.Subscribe(os.Stdout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down")
		atomic.StoreInt32(&interrupted, 1)
	}()

	done := make(chan error, 2)
	go func() { done <- service.RunDiscovery(shouldInterrupt) }()
	go func() { done <- service.RunDataService(shouldInterrupt) }()

	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			log.Printf("service loop exited: %v\n", err)
		}
	}
}
