package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type cli struct {
	t    *testing.T
	base []string
}

func newCLI(t *testing.T) *cli {
	dir := t.TempDir()
	return &cli{t: t, base: []string{
		"-config", filepath.Join(dir, "missing.toml"),
		"-store", filepath.Join(dir, "prefs.dat"),
		"-logfile", filepath.Join(dir, "memowidget.log"),
		"-id", "7",
	}}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	err := run(append(append([]string{}, c.base...), args...), &out)
	return out.String(), err
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "memowidget %s", strings.Join(args, " "))
	return out
}

func TestEditAcrossInvocations(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "Saved widget 7\n", c.must("set", "Hello", "world"))
	c.must("bold", "0", "5")
	c.must("color", "6", "11", "#ff0000")

	doc := c.must("json")
	assert.Equal(t, "Hello world", gjson.Get(doc, "text").String())
	assert.Equal(t, 2, len(gjson.Get(doc, "spans").Array()))
	assert.Equal(t, int64(0xFF0000), gjson.Get(doc, `spans.#(type=="color").value`).Int())

	c.must("undo")
	doc = c.must("json")
	assert.Equal(t, 1, len(gjson.Get(doc, "spans").Array()))

	c.must("redo")
	stats := c.must("stat")
	assert.Contains(t, stats, "units 11, runes 11, graphemes 11, spans 2")
	assert.Contains(t, stats, "history: 3 undo, 0 redo (limit 128)")
}

func TestShowRendersHintAndText(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.must("show"), "Tap to write a memo")

	c.must("type", "memo")
	c.must("gravity", "top_end")
	out := c.must("show", "10")
	assert.True(t, strings.HasPrefix(out, "      "), "right aligned: %q", out)
	assert.Contains(t, out, "memo")
}

func TestPurge(t *testing.T) {
	c := newCLI(t)
	c.must("set", "temporary")
	assert.Equal(t, "Deleted widget 7\n", c.must("purge"))
	assert.Contains(t, c.must("show"), "Tap to write a memo")
}

func TestUsageErrors(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"bold", "1"},
		{"size", "0", "1", "big"},
		{"alpha"},
	} {
		_, err := c.run(args...)
		assert.True(t, errors.Is(err, errUsage), "args %v: %v", args, err)
	}

	_, err := c.run("bg", "#zz")
	assert.Error(t, err)
	_, err = c.run("gravity", "sideways")
	assert.Error(t, err)
}
