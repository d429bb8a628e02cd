package main

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/sportradar-client/pkg/pagination"
	"github.com/Sternrassler/sportradar-client/pkg/sportradar"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newFetchCmd(a *app) *cobra.Command {
	var (
		key     string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "fetch ENDPOINT",
		Short: "Fetch an endpoint and print the merged JSON payload",
		Long: `Fetch an endpoint path relative to the product base URL, e.g. "seasons" or
"seasons/sr:season:77453/summaries". When the response is paginated, every
page is fetched and the list under --key is concatenated.`,
		Example: `  sportradar fetch competitions
  sportradar fetch seasons/sr:season:77453/summaries --key summaries`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := sportradar.New(a.cfg.ClientConfig(), a.options()...)
			if err != nil {
				return err
			}

			payload, err := api.CallEndpoint(cmd.Context(), sportradar.Endpoint{Path: args[0], Key: key})
			if err != nil {
				return err
			}
			a.logQuota(api.Quota())

			return writePayload(cmd.OutOrStdout(), payload, compact)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "list field to merge across pages")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	return cmd
}

func writePayload(w io.Writer, payload pagination.Payload, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(payload)
	} else {
		data, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
