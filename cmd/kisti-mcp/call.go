// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// errToolFailed marks a call whose text is a rendered failure. The text has
// already been printed.
var errToolFailed = errors.New("tool reported a failure")

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Run one tool and print its text",
	Long: `Call runs a single tool without an MCP client. Arguments are given as a
JSON object with --args or as a YAML mapping in a file with --args-file.

  kisti-mcp call search_ntis_rnd_projects --args '{"query": "이차전지", "max_results": 3}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().String("args", "", "tool arguments as a JSON object")
	callCmd.Flags().String("args-file", "", "YAML file holding the tool arguments")
	callCmd.MarkFlagsMutuallyExclusive("args", "args-file")

	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	rawArgs, _ := cmd.Flags().GetString("args")
	argsFile, _ := cmd.Flags().GetString("args-file")

	payload, err := callArguments(rawArgs, argsFile)
	if err != nil {
		return err
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	text, err := srv.Call(cmd.Context(), args[0], payload)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	if provider.IsFailure(text) {
		return errToolFailed
	}
	return nil
}

// callArguments returns the JSON object to pass to the tool. A YAML file is
// decoded and re-encoded as JSON.
func callArguments(rawArgs, argsFile string) (json.RawMessage, error) {
	if argsFile == "" {
		if rawArgs == "" {
			return nil, nil
		}
		if !json.Valid([]byte(rawArgs)) {
			return nil, errors.New("--args is not valid JSON")
		}
		return json.RawMessage(rawArgs), nil
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading args file")
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", argsFile)
	}
	out, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "encoding arguments")
	}
	return out, nil
}
