package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nainya/shelfkey/internal/config"
	"github.com/nainya/shelfkey/internal/version"
)

type rootOptions struct {
	cfgFile      string
	outputFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "shelfkey",
		Short: "Call number normalization and shelf browse keys",
		Long: `shelfkey turns library call numbers (LC, Dewey, SUDOC, UNDOC, CALDOC and
local schemes) into lopped base call numbers and sortable forward and reverse
shelf keys, and serves a shelf browse index over gRPC.`,
		Version:       version.GitRelease,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.outputFormat {
			case "yaml", "json":
				return nil
			}
			return fmt.Errorf("unknown output format %q: use yaml or json", opts.outputFormat)
		},
	}

	cmd.PersistentFlags().StringVar(
		&opts.cfgFile, "config", "", "config file (default: ./config.yaml or ~/.shelfkey/config.yaml)",
	)
	cmd.PersistentFlags().StringVarP(
		&opts.outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	cmd.AddCommand(
		newServeCmd(opts),
		newKeyCmd(opts),
		newResolveCmd(opts),
		newIndexCmd(opts),
		newBrowseCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) config() (*config.Config, error) {
	return config.Load(o.cfgFile)
}

// render writes v in the selected output format.
func (o *rootOptions) render(w io.Writer, v any) error {
	if o.outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
