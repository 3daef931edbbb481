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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/google/lazytree"
)

const helpText = `
Lazy Tree CLI

Available Commands:
  INSERT <key>...  Insert keys, reviving soft-deleted ones
  REMOVE <key>...  Soft-delete keys
  FIND <key>       Look up an active key
  CONTAINS <key>   Report whether a key is active
  MIN | MAX        Smallest / largest active key
  SIZE             Logical size, physical size, tombstones and height
  SOFT             List active keys in order
  HARD             List every key in order, tombstones in [brackets]
  COMPACT          Rebuild the tree without tombstones
  CLEAR            Drop every key
  TREE             Show the tree shape
  HELP             Show this text
  EXIT             Terminate this session
`

// shell reads commands line by line and applies them to one tree.
type shell[K any] struct {
	tree  *lazytree.Tree[K]
	parse func(string) (K, error)
	out   io.Writer
	log   *slog.Logger

	good, bad, faint *color.Color
}

func newShell[K any](tree *lazytree.Tree[K], parse func(string) (K, error), out io.Writer, logger *slog.Logger) *shell[K] {
	return &shell[K]{
		tree:  tree,
		parse: parse,
		out:   out,
		log:   logger,
		good:  color.New(color.FgGreen),
		bad:   color.New(color.FgRed),
		faint: color.New(color.Faint),
	}
}

// seed inserts n keys produced by gen.
func (s *shell[K]) seed(n int, gen func() K) {
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		s.tree.Insert(gen())
	}
	s.log.Info("seeded tree", "requested", n, "size", s.tree.Len(), "height", s.tree.Height())
}

var errExit = errors.New("exit")

// run processes commands from r until EXIT or end of input.
func (s *shell[K]) run(r io.Reader) error {
	fmt.Fprint(s.out, helpText)
	s.prompt()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := s.exec(scanner.Text()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *shell[K]) prompt() {
	fmt.Fprint(s.out, "> ")
}

// exec runs a single command line.  Only EXIT and write failures are
// returned; bad input is reported to the user.
func (s *shell[K]) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	s.log.Debug("command", "name", command, "args", len(args))
	switch command {
	case "insert":
		return s.each(command, args, s.tree.Insert, "inserted", "already present")
	case "remove":
		return s.each(command, args, s.tree.Remove, "removed", "not present")
	case "find":
		return s.find(args)
	case "contains":
		return s.contains(args)
	case "min":
		return s.extreme(s.tree.FindMin)
	case "max":
		return s.extreme(s.tree.FindMax)
	case "size":
		_, err := fmt.Fprintf(s.out, "size=%d hard=%d deleted=%d height=%d\n",
			s.tree.Len(), s.tree.HardLen(), s.tree.Deleted(), s.tree.Height())
		return err
	case "soft":
		return s.list(false)
	case "hard":
		return s.list(true)
	case "compact":
		return s.compact()
	case "clear":
		s.tree.Clear()
		_, err := fmt.Fprintln(s.out, "cleared")
		return err
	case "tree":
		return s.tree.Print(s.out)
	case "help":
		_, err := fmt.Fprint(s.out, helpText)
		return err
	case "exit", "quit":
		return errExit
	default:
		_, err := fmt.Fprintf(s.out, "Unknown command %q\n", command)
		return err
	}
}

// keys parses every argument, reporting the first bad one.
func (s *shell[K]) keys(args []string) ([]K, bool) {
	out := make([]K, 0, len(args))
	for _, a := range args {
		k, err := s.parse(a)
		if err != nil {
			s.log.Warn("bad key", "key", a, "err", err)
			s.bad.Fprintf(s.out, "bad key %q\n", a)
			return nil, false
		}
		out = append(out, k)
	}
	return out, true
}

func (s *shell[K]) each(command string, args []string, op func(K) bool, done, noop string) error {
	if len(args) < 1 {
		_, err := fmt.Fprintf(s.out, "Usage: %s <key>...\n", strings.ToUpper(command))
		return err
	}
	keys, ok := s.keys(args)
	if !ok {
		return nil
	}
	for _, k := range keys {
		var err error
		if op(k) {
			_, err = s.good.Fprintf(s.out, "%v %s\n", k, done)
		} else {
			_, err = s.faint.Fprintf(s.out, "%v %s\n", k, noop)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *shell[K]) one(command string, args []string) (K, bool) {
	var zero K
	if len(args) != 1 {
		fmt.Fprintf(s.out, "Usage: %s <key>\n", strings.ToUpper(command))
		return zero, false
	}
	keys, ok := s.keys(args)
	if !ok {
		return zero, false
	}
	return keys[0], true
}

func (s *shell[K]) find(args []string) error {
	k, ok := s.one("find", args)
	if !ok {
		return nil
	}
	return s.extreme(func() (K, error) { return s.tree.Find(k) })
}

func (s *shell[K]) contains(args []string) error {
	k, ok := s.one("contains", args)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintln(s.out, s.tree.Has(k))
	return err
}

// extreme prints the key returned by get, or "not found".
func (s *shell[K]) extreme(get func() (K, error)) error {
	k, err := get()
	if errors.Is(err, lazytree.ErrNotFound) {
		_, err = s.bad.Fprintln(s.out, "not found")
		return err
	}
	_, err = fmt.Fprintln(s.out, k)
	return err
}

func (s *shell[K]) list(all bool) error {
	var parts []string
	visit := lazytree.VisitorFunc[K](func(k K) {
		if all && !s.tree.Has(k) {
			parts = append(parts, s.bad.Sprintf("[%v]", k))
			return
		}
		parts = append(parts, fmt.Sprint(k))
	})
	if all {
		s.tree.TraverseHard(visit)
	} else {
		s.tree.TraverseSoft(visit)
	}
	_, err := fmt.Fprintln(s.out, strings.Join(parts, " "))
	return err
}

func (s *shell[K]) compact() error {
	reclaimed := s.tree.Deleted()
	s.tree = s.tree.Compact()
	s.log.Info("compacted tree", "reclaimed", reclaimed, "size", s.tree.Len(), "height", s.tree.Height())
	_, err := fmt.Fprintf(s.out, "compacted, %d nodes reclaimed\n", reclaimed)
	return err
}
