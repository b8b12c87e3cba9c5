// Package generation turns a startup idea and its prerequisite artifacts into a
// new typed artifact by prompting the language model.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/prompts"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Inputs is what a routine may read: the idea and the decoded prerequisite artifacts.
type Inputs struct {
	StartupName string
	Idea        string
	Artifacts   map[types.Field]any
}

// Routine produces one artifact. It must not mutate anything outside its return value.
type Routine func(ctx context.Context, g *Generator, in Inputs) (any, error)

// Generator holds the providers routines call.
type Generator struct {
	LLM     llm.Client
	Search  Searcher
	Scraper Scraper
	Logger  *zap.SugaredLogger

	// MaxConcurrency bounds parallel search and scrape calls per routine.
	MaxConcurrency int
	// ResultsPerQuery is the number of search hits requested per query.
	ResultsPerQuery int
	// ScrapeLimit is the number of result pages scraped by routines that scrape.
	ScrapeLimit int
}

// NewGenerator creates a Generator with default limits.
func NewGenerator(client llm.Client, searcher Searcher, scraper Scraper, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		LLM:             client,
		Search:          searcher,
		Scraper:         scraper,
		Logger:          observability.OrNop(logger),
		MaxConcurrency:  4,
		ResultsPerQuery: 5,
		ScrapeLimit:     3,
	}
}

func (g *Generator) logger() *zap.SugaredLogger {
	return observability.OrNop(g.Logger)
}

// JSON returns a routine that asks the model for a T and validates the result.
func JSON[T any](field types.Field, tier llm.ModelTier) Routine {
	return func(ctx context.Context, g *Generator, in Inputs) (any, error) {
		return generate[T](ctx, g, field, tier, in, "")
	}
}

func generate[T any](ctx context.Context, g *Generator, field types.Field, tier llm.ModelTier, in Inputs, research string) (*T, error) {
	if g == nil || g.LLM == nil {
		return nil, fmt.Errorf("no language model configured")
	}

	var out T
	prompt, err := BuildPrompt(field, in, research, Skeleton(&out))
	if err != nil {
		return nil, err
	}

	raw, err := g.LLM.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &out); err != nil {
		return nil, &types.ShapeError{Field: field, Cause: err}
	}
	if err := types.ValidateArtifact(field, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuildPrompt assembles the full prompt for a task.
func BuildPrompt(field types.Field, in Inputs, research, schema string) (string, error) {
	instruction, err := prompts.Task(field.String())
	if err != nil {
		return "", err
	}

	data := map[string]string{
		"StartupName": in.StartupName,
		"Idea":        in.Idea,
		"Research":    research,
		"Schema":      schema,
	}

	blocks := []string{prompts.Format(prompts.MustGet(prompts.CommonFile, "preamble"), data)}
	if len(in.Artifacts) > 0 {
		ctxText, err := renderContext(in.Artifacts)
		if err != nil {
			return "", err
		}
		data["Context"] = ctxText
		blocks = append(blocks, prompts.Format(prompts.MustGet(prompts.CommonFile, "context"), data))
	}
	if research != "" {
		blocks = append(blocks, prompts.Format(prompts.MustGet(prompts.CommonFile, "research"), data))
	}
	blocks = append(blocks,
		"Task: "+instruction,
		prompts.Format(prompts.MustGet(prompts.CommonFile, "output"), data),
	)
	return strings.Join(blocks, "\n\n"), nil
}

// renderContext serializes prerequisite artifacts in pipeline order.
func renderContext(artifacts map[types.Field]any) (string, error) {
	var sb strings.Builder
	for _, field := range types.AllFields {
		artifact, ok := artifacts[field]
		if !ok {
			continue
		}
		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode %s for prompt: %w", field, err)
		}
		fmt.Fprintf(&sb, "### %s\n%s\n", field, data)
	}
	return strings.TrimSpace(sb.String()), nil
}
