package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PandeyAnukrati/payment-app/internal/di"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config.yaml", "path to config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stderr")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "payapp: %s\n", err)
		os.Exit(1)
	}
}
