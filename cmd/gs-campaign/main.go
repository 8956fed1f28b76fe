package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/config"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/executor"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/launcher"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/sched"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/shutdown"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/supervisor"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <campaign-settings-file>\n", os.Args[0])
		os.Exit(2)
	}

	settings, err := config.Load(os.Args[1])
	if err != nil {
		log.Fatal("settings validation failed", zap.Error(err))
	}
	template, err := config.LoadTemplate(settings.GSJSON)
	if err != nil {
		log.Fatal("template load failed", zap.Error(err))
	}

	root := context.Background()
	ctx, cancel := shutdown.WithSignal(root)
	defer cancel()

	env := sched.ProcessEnv{}
	exec := executor.New(log, settings, launcher.MPI{Env: env})
	sup := supervisor.New(log, settings, env, exec)

	rep := sup.Run(ctx, template)

	generated, skipped := sup.Tallies()
	log.Info("DONE",
		zap.Int64("generated", generated),
		zap.Int64("skipped", skipped),
		zap.Int("completed", rep.Completed),
		zap.Int("failed", rep.Failed))
}
