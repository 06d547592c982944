// Command wilson measures plaquettes and Wilson loops on stored SU(3) lattice
// gauge configurations.
//
//	wilson -i config.bin -o wilson.csv --shape 24,24,24,48
//	wilson inspect -i config.bin -d 4
//	wilson batch ./configs ./results
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
