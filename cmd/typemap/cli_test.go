package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/typemap/cmd/typemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"parse", "lookup"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParseDefaults(t *testing.T) {
	t.Setenv("TYPEMAP_CORPUS", "")
	t.Setenv("TYPEMAP_OUT", "")
	t.Setenv("TYPEMAP_CACHE_DB", "")

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"parse", "--corpus", "docs"})
	require.NoError(t, err)

	assert.Equal(t, "docs", cli.Parse.Corpus)
	assert.Equal(t, "JavaScript", cli.Parse.Language)
	assert.Equal(t, "DevLang:javascript", cli.Parse.Category)
	assert.False(t, cli.Parse.Force)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "parse")
	assert.Contains(t, stdout.String(), "lookup")
}

func TestMain_Run_NoArgsShowsHelpAndError(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{}, stdout, stderr)
	require.Error(t, err)

	assert.Contains(t, stdout.String(), "parse")
	assert.Contains(t, stderr.String(), "no command specified")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"crawl"}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
}
