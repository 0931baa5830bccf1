package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
)

// go run ./cmd/logoexport
// go run ./cmd/logoexport --variant v1
// go run ./cmd/logoexport plan
// go run ./cmd/logoexport check
// go run ./cmd/logoexport watch --root ../clodeb

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd.SetOut(colorable.NewColorableStdout())
	rootCmd.SetErr(colorable.NewColorableStderr())
	code := execute(ctx)
	stop()
	os.Exit(code)
}
