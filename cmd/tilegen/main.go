// Command tilegen renders tile documents to images.
//
//	tilegen init wall.json
//	tilegen render wall.json -o wall.png
//	tilegen watch wall.json -o wall.png
//	tilegen preview wall.json --tile Wall --node Bricks -o bricks.png
//	tilegen validate wall.json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
