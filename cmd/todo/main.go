package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-todo/configs"
	"go-todo/internal/application/cli"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/internal/infra/storage"
	"go-todo/pkg/log"
	"go-todo/pkg/resource"
)

func main() {
	verbose := flag.Bool("v", false, "print application logs")
	flag.Parse()

	if err := configs.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !*verbose {
		log.Replace(zap.NewNop())
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, resource.GetStringOrDefault("app.storage.backend", storage.BackendFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := todo.NewTodoUseCase(backend.Gateway, resource.GetStringOrDefault("app.storage.key", "@todos"))
	code := 1
	if err := store.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	} else {
		code = cli.NewRunner(store, os.Stdout, os.Stderr).Run(ctx, flag.Args())
	}

	_ = backend.Close()
	os.Exit(code)
}
