package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aglyzov/sprintmap/sprintmap"
)

func main() {
	var (
		total  = flag.Int("n", 100_000, "number of sessions to open")
		closeN = flag.Int("close", 50_000, "number of sessions to close afterwards")
		pool   = flag.Int("pool", -1, "node pool size (-1 disables pooling)")
		dump   = flag.String("dump", "", "dump the subtree at this base-32 slot path")
	)

	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	opts := sprintmap.OptList()
	if *pool >= 0 {
		opts = append(opts, sprintmap.WithNodePool(*pool))
	}

	// handles -> session ids
	sessions := sprintmap.New[uuid.UUID](opts...)
	handles := make([]uint32, 0, *total)

	for i := 0; i < *total; i++ {
		handle, ok := sessions.Insert(uuid.New())
		if !ok {
			logger.Warn("handle space exhausted", zap.Int("open", sessions.Len()))
			break
		}
		handles = append(handles, handle)
	}

	if len(handles) == 0 {
		logger.Info("no sessions opened")
		return
	}

	logger.Info("sessions opened",
		zap.Int("open", sessions.Len()),
		zap.Uint32("firstHandle", handles[0]),
		zap.Stringer("firstSession", sessions.Search(handles[0], uuid.Nil)),
	)

	for _, handle := range handles[:min(*closeN, len(handles))] {
		if id := sessions.Remove(handle, uuid.Nil); id == uuid.Nil {
			logger.Error("session missing", zap.Uint32("handle", handle))
		}
	}

	logger.Info("sessions closed", zap.Int("open", sessions.Len()))

	if err := sessions.Validate(); err != nil {
		logger.Fatal("tree integrity check failed", zap.Error(err))
	}

	fmt.Println(sessions.Stats())

	if *dump != "" {
		if err := sessions.DumpPath(os.Stdout, *dump); err != nil {
			logger.Error("cannot dump subtree", zap.String("path", *dump), zap.Error(err))
		}
	}
}
