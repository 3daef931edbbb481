// Copyright 2014-2022 Google Inc.
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

// Command lazytree is an interactive shell over a single lazy-deletion tree.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/google/lazytree"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "lazytree",
		Usage:   "interactive shell over a binary search tree with lazy deletion",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "numeric",
				Usage:   "parse keys as integers instead of strings",
				EnvVars: []string{"LAZYTREE_NUMERIC"},
			},
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "number of random keys to insert before the prompt",
				EnvVars: []string{"LAZYTREE_SEED"},
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "disable coloured output",
				EnvVars: []string{"LAZYTREE_NO_COLOR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"LAZYTREE_LOG_LEVEL", "LOG_LEVEL"},
			},
		},
		Action: runShell,
	}
	return app.Run(args)
}

func runShell(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	if cctx.Bool("no-color") {
		color.NoColor = true
	}
	seed := cctx.Int("seed")
	if seed < 0 {
		return fmt.Errorf("seed must not be negative: %d", seed)
	}

	if cctx.Bool("numeric") {
		sh := newShell(lazytree.NewOrdered[int64](), parseInt, os.Stdout, logger)
		sh.seed(seed, func() int64 { return rand.Int63n(int64(seed)*10 + 1) })
		return sh.run(os.Stdin)
	}
	sh := newShell(lazytree.NewOrdered[string](), parseString, os.Stdout, logger)
	sh.seed(seed, func() string { return strings.ToLower(faker.Word()) })
	return sh.run(os.Stdin)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseString(s string) (string, error) {
	return s, nil
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
