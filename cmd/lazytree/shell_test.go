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
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/lazytree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShell(t *testing.T) (*shell[int64], *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newShell(lazytree.NewOrdered[int64](), parseInt, &out, logger), &out
}

// lines runs script and returns the output of each command, prompts removed.
func lines(t *testing.T, sh *shell[int64], out *bytes.Buffer, script ...string) []string {
	t.Helper()
	var got []string
	for _, cmd := range script {
		out.Reset()
		require.NoError(t, sh.exec(cmd), cmd)
		got = append(got, strings.TrimRight(out.String(), "\n"))
	}
	return got
}

func TestShellScenario(t *testing.T) {
	sh, out := testShell(t)
	got := lines(t, sh, out,
		"INSERT 5 3 8 1 4",
		"size",
		"remove 3",
		"contains 3",
		"soft",
		"hard",
		"min",
		"max",
		"insert 3",
		"size",
		"remove 8",
		"compact",
		"hard",
		"size",
	)
	want := []string{
		"5 inserted\n3 inserted\n8 inserted\n1 inserted\n4 inserted",
		"size=5 hard=5 deleted=0 height=3",
		"3 removed",
		"false",
		"1 4 5 8",
		"1 [3] 4 5 8",
		"1",
		"8",
		"3 inserted",
		"size=5 hard=5 deleted=0 height=3",
		"8 removed",
		"compacted, 1 nodes reclaimed",
		"1 3 4 5",
		"size=4 hard=4 deleted=0 height=4",
	}
	assert.Equal(t, want, got)
}

func TestShellNoops(t *testing.T) {
	sh, out := testShell(t)
	got := lines(t, sh, out,
		"insert 1",
		"insert 1",
		"remove 2",
		"remove 1",
		"remove 1",
		"find 1",
		"min",
		"max",
		"clear",
		"size",
	)
	want := []string{
		"1 inserted",
		"1 already present",
		"2 not present",
		"1 removed",
		"1 not present",
		"not found",
		"not found",
		"not found",
		"cleared",
		"size=0 hard=0 deleted=0 height=0",
	}
	assert.Equal(t, want, got)
}

func TestShellBadInput(t *testing.T) {
	sh, out := testShell(t)
	got := lines(t, sh, out,
		"",
		"frobnicate",
		"insert",
		"find",
		"find 1 2",
		"insert x",
		"contains 1.5",
	)
	want := []string{
		"",
		`Unknown command "frobnicate"`,
		"Usage: INSERT <key>...",
		"Usage: FIND <key>",
		"Usage: FIND <key>",
		`bad key "x"`,
		`bad key "1.5"`,
	}
	assert.Equal(t, want, got)
	assert.True(t, sh.tree.Empty())
}

func TestShellTree(t *testing.T) {
	sh, out := testShell(t)
	got := lines(t, sh, out, "insert 2 1 3", "remove 1", "tree")
	assert.Contains(t, got[2], "L 1 (deleted)")
	assert.Contains(t, got[2], "R 3")
}

func TestShellRun(t *testing.T) {
	sh, out := testShell(t)
	in := strings.NewReader("insert 10 20\nremove 10\nsoft\nexit\ninsert 30\n")
	require.NoError(t, sh.run(in))
	assert.Contains(t, out.String(), "> 20\n")
	assert.False(t, sh.tree.Has(30), "commands after EXIT are ignored")
}

func TestShellSeed(t *testing.T) {
	sh, _ := testShell(t)
	next := int64(0)
	sh.seed(10, func() int64 {
		next++
		return next % 5
	})
	assert.Equal(t, 5, sh.tree.Len())
	assert.Equal(t, 5, sh.tree.HardLen())
}

func TestStringKeys(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sh := newShell(lazytree.NewOrdered[string](), parseString, &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, sh.exec("insert pear apple fig"))
	require.NoError(t, sh.exec("remove fig"))
	out.Reset()
	require.NoError(t, sh.exec("hard"))
	assert.Equal(t, "apple [fig] pear\n", out.String())
}
