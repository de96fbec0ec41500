// Copyright 2026 the askalex authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/trangdata/askalex"
	"github.com/trangdata/askalex/ai"
	"github.com/trangdata/askalex/ai/openai"
	"github.com/trangdata/askalex/openalex"
	"github.com/trangdata/askalex/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "askalex",
		Usage: "Ask questions over the biomedical literature",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a question from OpenAlex abstracts",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "model",
						Aliases: []string{"m"},
						Usage:   "Completion model for answer synthesis",
						Value:   "gpt-35-turbo",
					},
					&cli.IntFlag{
						Name:    "articles",
						Aliases: []string{"n"},
						Usage:   "Number of articles to index",
						Value:   6,
					},
					&cli.IntFlag{
						Name:  "per-page",
						Usage: "Candidate documents to request from OpenAlex (max 100)",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-ada-002",
					},
					&cli.StringFlag{
						Name:  "keyword-model",
						Usage: "Completion model for keyword extraction",
						Value: "gpt-4-32k",
					},
					&cli.StringFlag{
						Name:  "mailto",
						Usage: "Contact address for the OpenAlex polite pool",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("usage: askalex ask QUESTION")
	}

	token := os.Getenv("OPENAI_API_KEY")
	if token == "" {
		token = "none"
	}

	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithToken(token),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("model")),
	)
	provider, err := openai.NewProvider(config)
	if err != nil {
		return fmt.Errorf("creating AI provider: %w", err)
	}
	defer provider.Close()

	counter, err := search.NewTiktokenCounter()
	if err != nil {
		return fmt.Errorf("loading tokenizer: %w", err)
	}

	var sourceOpts []openalex.Option
	if mailto := c.String("mailto"); mailto != "" {
		sourceOpts = append(sourceOpts, openalex.WithMailto(mailto))
	}
	source := openalex.NewClient(sourceOpts...)

	engine, err := askalex.NewEngine(source, provider, counter,
		askalex.WithPerPage(c.Int("per-page")),
		askalex.WithTopN(c.Int("articles")),
		askalex.WithKeywordModel(c.String("keyword-model")),
	)
	if err != nil {
		return err
	}

	ranked, answer, err := engine.Ask(c.Context, question, c.String("model"))
	if err != nil {
		return err
	}

	if answer != nil {
		fmt.Println(answer.Text)
		fmt.Printf("\nEstimated cost: %s\n", askalex.FormatCost(answer.Cost.Amount))
	} else {
		fmt.Println("No answer available.")
	}

	if len(ranked) > 0 {
		fmt.Println("\nReferences:")
		for _, doc := range ranked {
			fmt.Printf("  %.3f  %s\n         %s\n", doc.Similarity, doc.Title, doc.URL)
		}
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
