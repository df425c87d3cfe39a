package main

import (
	"github.com/spf13/cobra"

	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/holding"
)

type resolvedItem struct {
	RecordID   string             `json:"record_id" yaml:"record_id"`
	ItemID     string             `json:"item_id" yaml:"item_id"`
	Library    string             `json:"library" yaml:"library"`
	Location   string             `json:"location" yaml:"location"`
	CallNumber string             `json:"call_number" yaml:"call_number"`
	Display    callnumber.Display `json:"display" yaml:"display"`
	Label      string             `json:"label,omitempty" yaml:"label,omitempty"`
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE",
		Short: "Show how each item of a record file is displayed in browse",
		Long: `Group the items of each record by library, location and scheme and print
the call number, shelf keys and ellipsis decision each item would be browsed
under. FILE is YAML with a top level "records" list; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			specs, err := readRecords(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			engine := callnumber.New(cfg.Keys.Options())

			var out []resolvedItem
			for _, spec := range specs {
				rec := holding.NewRecord(spec)
				for _, r := range rec.Resolve(engine) {
					item := resolvedItem{
						RecordID:   rec.ID,
						ItemID:     r.Item.ID(),
						Library:    r.Item.Library(),
						Location:   r.Item.HomeLocation(),
						CallNumber: r.Item.CallNumber(),
						Display:    r.Display,
					}
					if !r.Display.Omit {
						item.Label = r.Display.Label()
					}
					out = append(out, item)
				}
			}
			return root.render(cmd.OutOrStdout(), out)
		},
	}
}
