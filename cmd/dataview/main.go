package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/trashhalo/obsidian-dataview/internal/config"
	"github.com/trashhalo/obsidian-dataview/internal/render"
	"github.com/trashhalo/obsidian-dataview/internal/store"
	"github.com/trashhalo/obsidian-dataview/internal/task"
	"github.com/trashhalo/obsidian-dataview/internal/value"
)

func main() {
	cfg := config.Load()
	level := parseLogLevel(cfg.LogLevel)
	var handler slog.Handler
	if cfg.LogPretty {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		slog.Error("load settings", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var code int
	switch os.Args[1] {
	case "tasks":
		code = cmdTasks(ctx, os.Args[2:])
	case "toggle":
		code = cmdToggle(ctx, settings, os.Args[2:])
	case "render":
		code = cmdRender(ctx, os.Args[2:])
	default:
		usage()
		code = 2
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dataview tasks <vault>")
	fmt.Fprintln(os.Stderr, "       dataview toggle <vault> <path> <line>")
	fmt.Fprintln(os.Stderr, "       dataview render <vault> <path>")
}

func cmdTasks(ctx context.Context, args []string) int {
	if len(args) < 1 {
		usage()
		return 2
	}
	docs := store.NewDir(args[0])
	roots, err := scanVault(ctx, docs)
	if err != nil {
		slog.Error("scan vault", "err", err)
		return 1
	}
	open := make([]*task.Node, 0, len(roots))
	for _, node := range roots {
		if !node.Completed() {
			open = append(open, node)
		}
	}
	grouped := value.GroupBy(open, func(n *task.Node) value.Value {
		return value.LinkValue(value.File(n.Path, false, ""))
	})
	fmt.Print(render.TaskGrouping(grouped, 0))
	return 0
}

func cmdToggle(ctx context.Context, settings config.Settings, args []string) int {
	if len(args) < 3 {
		usage()
		return 2
	}
	vault, docPath := args[0], args[1]
	line, err := strconv.Atoi(args[2])
	if err != nil {
		slog.Error("parse line", "arg", args[2], "err", err)
		return 2
	}
	docs := store.NewDir(vault)
	doc, err := docs.ReadDocument(ctx, docPath)
	if err != nil {
		slog.Error("read document", "path", docPath, "err", err)
		return 1
	}
	node := findTask(task.ParseDocument(docPath, doc), line)
	if node == nil {
		slog.Error("no task at line", "path", docPath, "line", line)
		return 1
	}

	status := "x"
	complete := true
	if node.Completed() {
		status = " "
		complete = false
	}
	var written bool
	if settings.CompletionTracking {
		text := task.SetCompletion(node.Text, settings.CompletionKey, complete, time.Now)
		written, err = task.RewriteText(ctx, docs, node, status, text)
	} else {
		written, err = task.Rewrite(ctx, docs, node, status)
	}
	if err != nil {
		slog.Error("rewrite task", "path", docPath, "line", line, "err", err)
		return 1
	}
	if !written {
		slog.Info("nothing to do", "path", docPath, "line", line)
		return 0
	}
	slog.Info("task updated", "path", docPath, "line", line, "status", status)
	return 0
}

func cmdRender(ctx context.Context, args []string) int {
	if len(args) < 2 {
		usage()
		return 2
	}
	docs := store.NewDir(args[0])
	doc, err := docs.ReadDocument(ctx, args[1])
	if err != nil {
		slog.Error("read document", "path", args[1], "err", err)
		return 1
	}
	markdown := render.TaskForest(task.ParseDocument(args[1], doc))
	html, err := render.HTML(markdown)
	if err != nil {
		slog.Error("render html", "path", args[1], "err", err)
		return 1
	}
	fmt.Print(html)
	return 0
}

func scanVault(ctx context.Context, docs *store.Dir) ([]*task.Node, error) {
	paths, err := docs.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	var roots []*task.Node
	for _, p := range paths {
		doc, err := docs.ReadDocument(ctx, p)
		if err != nil {
			slog.Warn("read document", "path", p, "err", err)
			continue
		}
		roots = append(roots, task.ParseDocument(p, doc)...)
	}
	return roots, nil
}

func findTask(roots []*task.Node, line int) *task.Node {
	for _, node := range roots {
		if node.Line == line {
			return node
		}
		if found := findTask(node.Children, line); found != nil {
			return found
		}
	}
	return nil
}

func parseLogLevel(raw string) slog.Leveler {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
	return level
}
