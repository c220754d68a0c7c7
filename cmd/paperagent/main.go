package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frido22/ai-paper-agent/internal/server"
	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/eval"
	"github.com/frido22/ai-paper-agent/pkg/logger"
	"github.com/frido22/ai-paper-agent/pkg/logger/console"
	"github.com/frido22/ai-paper-agent/pkg/paper"
)

// paperResult is the per-paper JSON document written to the output
// directory.
type paperResult struct {
	Name       string                 `json:"name"`
	Pages      int                    `json:"pages"`
	Graph      argument.Output        `json:"graph"`
	Stats      argument.Stats         `json:"stats"`
	Complexity argument.Complexity    `json:"complexity"`
	Score      *eval.ConsistencyScore `json:"score,omitempty"`
	Failed     int                    `json:"failed_steps,omitempty"`
}

func main() {
	outDir := flag.String("out", "output", "Directory for result JSON files")
	parallel := flag.Int("parallel", 2, "Number of papers processed concurrently")
	score := flag.Bool("score", true, "Run conclusion consistency scoring")
	flag.Parse()

	util.LoadEnv()
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	}))

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: paperagent [flags] paper.pdf [paper2.pdf ...]")
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Fatal("Failed to create output directory", "dir", *outDir, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := server.NewReasoningClient()
	cfg := server.ExtractConfigFromEnv()

	start := time.Now()

	// Papers run in parallel; chunks within one paper stay sequential so
	// each chunk sees the context of everything before it.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(*parallel)

	for _, path := range paths {
		group.Go(func() error {
			return processPaper(groupCtx, client, cfg, path, *outDir, *score)
		})
	}

	if err := group.Wait(); err != nil {
		logger.Fatal("Batch failed", "err", err)
	}

	metrics := client.Metrics()
	logger.Info("Batch finished",
		"papers", len(paths),
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"duration", time.Since(start).Round(time.Second).String(),
	)
}

func processPaper(ctx context.Context, client ai.ReasoningClient, cfg argument.Config, path, outDir string, score bool) error {
	doc, err := paper.LoadPDF(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	extractor, err := argument.NewExtractor(client, cfg)
	if err != nil {
		return err
	}

	result, err := extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", doc.Name, err)
	}

	out := paperResult{
		Name:       doc.Name,
		Pages:      len(doc.Pages),
		Graph:      result.Graph.Output(),
		Stats:      result.Graph.Stats(),
		Complexity: argument.AnalyzeComplexity(result.Graph),
		Failed:     len(result.Failed()),
	}

	if score {
		sections := paper.ParseSections(doc.Pages)
		if sections.Results != "" && sections.Conclusion != "" {
			verdict := eval.ScoreConsistency(ctx, client, sections.Results, sections.Conclusion)
			out.Score = &verdict
		} else {
			logger.Warn("skipping consistency score", "paper", doc.Name, "reason", "results or conclusion section not found")
		}
	}

	target := filepath.Join(outDir, resultFilename(doc.Name))
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, raw, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	logger.Info("Paper processed",
		"paper", doc.Name,
		"nodes", out.Stats.TotalNodes,
		"edges", out.Stats.TotalEdges,
		"output", target,
	)
	return nil
}

func resultFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ".graph.json"
}
