package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nainya/shelfkey/internal/server"
)

type remoteOptions struct {
	addr    string
	timeout time.Duration
}

func (o *remoteOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.addr, "addr", "localhost:50051", "shelfkey server address")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 30*time.Second, "request timeout")
}

func (o *remoteOptions) dial() (*grpc.ClientConn, *server.Client, error) {
	conn, err := grpc.NewClient(o.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", o.addr, err)
	}
	return conn, server.NewClient(conn), nil
}

func newIndexCmd(root *rootOptions) *cobra.Command {
	var (
		remote      remoteOptions
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "index FILE",
		Short: "Send the records of a file to a running server",
		Long: `Index every record of FILE (YAML with a top level "records" list, "-" for
standard input) on a running shelfkey server. Records already indexed under
the same ID are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := readRecords(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			conn, client, err := remote.dial()
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := contextWithTimeout(cmd, remote.timeout)
			defer cancel()

			results := make([]server.IndexRecordResponse, len(specs))
			g, ctx := errgroup.WithContext(ctx)
			g.SetLimit(max(concurrency, 1))
			for i, spec := range specs {
				i, spec := i, spec
				g.Go(func() error {
					resp, err := client.IndexRecord(ctx, server.IndexRecordRequest{Record: spec})
					if err != nil {
						return fmt.Errorf("record %d (%s): %w", i, spec.ID, err)
					}
					results[i] = *resp
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return root.render(cmd.OutOrStdout(), results)
		},
	}
	remote.bind(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "records sent in parallel")
	return cmd
}

func newBrowseCmd(root *rootOptions) *cobra.Command {
	var (
		remote   remoteOptions
		req      server.BrowseRequest
		backward bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a library's shelf on a running server",
		Long: `Browse the shelf of one library, starting at a call number or shelf key.

Examples:
  shelfkey browse --library GREEN --call-number "QA76.73 .J38 2003"
  shelfkey browse --library GREEN --call-number "QA76" --backward --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backward {
				req.Direction = "backward"
			}
			conn, client, err := remote.dial()
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := contextWithTimeout(cmd, remote.timeout)
			defer cancel()

			resp, err := client.Browse(ctx, req)
			if err != nil {
				return err
			}
			return root.render(cmd.OutOrStdout(), resp.Entries)
		},
	}
	remote.bind(cmd)
	cmd.Flags().StringVar(&req.Library, "library", "", "library code (required)")
	cmd.Flags().StringVar(&req.CallNumber, "call-number", "", "start at this call number")
	cmd.Flags().StringVar(&req.Scheme, "scheme", "LC", "scheme of --call-number")
	cmd.Flags().StringVar(&req.ShelfKey, "shelfkey", "", "start at this shelf key")
	cmd.Flags().IntVar(&req.Limit, "limit", 20, "entries to return")
	cmd.Flags().BoolVar(&req.Distinct, "distinct", false, "one entry per record and shelf key")
	cmd.Flags().BoolVar(&backward, "backward", false, "walk the shelf backward")
	_ = cmd.MarkFlagRequired("library")
	return cmd
}
