package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	paramsFile = flag.String("params", "", "load evaluation and search params from a JSON file")
	profiles   = flag.Bool("profiles", false, "open the profile database for the Profile option")
	hashMB     = flag.Int("hash", uci.DefaultHashMB, "position cache size in MB")
)

func main() {
	flag.Parse()
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	params := engine.DefaultParams()
	if *paramsFile != "" {
		f, err := os.Open(*paramsFile)
		if err != nil {
			log.Fatal(err)
		}
		params, err = engine.LoadParams(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", *paramsFile, err)
		}
	}

	eng := engine.NewEngine(engine.CacheEntriesForMB(*hashMB))
	protocol := uci.New(eng, params, os.Stdin, os.Stdout)

	if *profiles {
		store, err := storage.NewStorage()
		if err != nil {
			log.Printf("Warning: profiles disabled: %v", err)
		} else {
			defer store.Close()
			protocol.SetStorage(store)
		}
	}

	if err := protocol.Run(); err != nil {
		log.Printf("reading commands: %v", err)
	}
}
