// Command ecg analyses single-lead ECG traces and reports heart-rate metrics.
//
//	ecg [flags] trace.csv...        analyse traces, write <name>.json per trace
//	ecg records -db records.db      print stored records as JSON lines
//	ecg serve -db records.db        serve stored records over HTTP
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/ecg.report/internal/version"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: ecg [flags] trace.csv...\n       ecg records [flags]\n       ecg serve [flags]\n\nflags:\n")
	flag.PrintDefaults()
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "records":
			if err := runRecords(os.Args[2:], os.Stdout); err != nil {
				log.Fatalf("records: %v", err)
			}
			return
		case "serve":
			if err := runServe(os.Args[2:]); err != nil {
				log.Fatalf("serve: %v", err)
			}
			return
		}
	}

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("ecg %s\n", version.String())
		return
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	opts, err := optionsFromFlags()
	if err != nil {
		log.Fatalf("%v", err)
	}

	failed := 0
	for _, path := range flag.Args() {
		if _, err := analyzeFile(path, opts); err != nil {
			log.Printf("ERROR: %s: %v", path, err)
			failed++
		}
	}
	if opts.Store != nil {
		opts.Store.Close()
	}
	if failed > 0 {
		log.Fatalf("%d of %d trace(s) failed", failed, flag.NArg())
	}
}
