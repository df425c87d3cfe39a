package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainya/shelfkey/pkg/callnumber"
)

func newKeyCmd(root *rootOptions) *cobra.Command {
	var (
		schemeName string
		serial     bool
		volume     string
	)
	cmd := &cobra.Command{
		Use:   "key [CALLNUMBER...]",
		Short: "Print lopped call numbers and shelf keys",
		Long: `Print the lopped call number and the forward and reverse shelf keys of
each call number. With no arguments, or "-", call numbers are read one per
line from standard input.

Examples:
  shelfkey key "QA76.73 .J38 2003 v.1"
  shelfkey key --scheme sudoc --serial "Y 4.ED 8/1:117-48"
  shelfkey key -o json --volume v.2 "QA76.73 .J38 2003"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, ok := callnumber.ParseScheme(schemeName)
			if !ok {
				return fmt.Errorf("unknown scheme %q", schemeName)
			}
			cfg, err := root.config()
			if err != nil {
				return err
			}
			engine := callnumber.New(cfg.Keys.Options())

			raws := args
			if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
				if raws, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			keys := make([]callnumber.Keys, 0, len(raws))
			for _, raw := range raws {
				keys = append(keys, engine.Compute(raw, scheme, serial, volume))
			}
			return root.render(cmd.OutOrStdout(), keys)
		},
	}
	cmd.Flags().StringVarP(&schemeName, "scheme", "s", "LC", "call number scheme: LC, DEWEY, SUDOC, UNDOC, CALDOC or OTHER")
	cmd.Flags().BoolVar(&serial, "serial", false, "lop serial dates as well as volumes")
	cmd.Flags().StringVar(&volume, "volume", "", "volume statement appended to the shelf key")
	return cmd
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read call numbers: %w", err)
	}
	return lines, nil
}
