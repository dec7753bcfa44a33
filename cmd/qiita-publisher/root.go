package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wataash/qiita-publisher/article"
	"github.com/wataash/qiita-publisher/publish"
	"github.com/wataash/qiita-publisher/qiita"
)

var (
	flagDryRun  bool
	flagToken   string
	flagQuiet   bool
	flagVerbose int
	logger      zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qiita-publisher <path>",
	Short: "Publish or update a Qiita article from a local file",
	Long: `qiita-publisher reads a markdown file whose first lines form a
metadata block:

  <!--
  0title: My article
  0url: TODO
  tags: go cli
  -->

and submits the content after the block to Qiita. While 0url holds the TODO
placeholder a new article is created and its URL printed; once the URL is
recorded, subsequent runs show a diff against the remote article and update
it in place. Every network write requires interactive confirmation.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		switch {
		case flagQuiet:
			level = zerolog.ErrorLevel
		case flagVerbose == 1:
			level = zerolog.InfoLevel
		case flagVerbose >= 2:
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).With().Timestamp().Logger()

		if flagToken == "" {
			flagToken = os.Getenv("QIITA_TOKEN")
		}
		if flagToken == "" {
			return errors.New("--token or environment variable QIITA_TOKEN is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		header, body, err := article.Parse(string(buf), logger)
		if err != nil {
			return err
		}

		client := qiita.NewClient(flagToken, logger)
		gate := publish.NewGate(cmd.InOrStdin(), logger)
		differ := publish.NewDiffer(cmd.OutOrStdout(), logger)
		pub := publish.New(client, gate, differ, cmd.OutOrStdout(), logger)

		return dispatch(cmd.Context(), pub, header, body)
	},
}

// dispatch is the only branch in the control flow: no recorded remote id
// means the article has never been created.
func dispatch(ctx context.Context, pub *publish.Publisher, h *article.Header, body string) error {
	if h.RemoteID == "" {
		return pub.Create(ctx, h, body)
	}
	return pub.Update(ctx, h, body)
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional
		_ = godotenv.Load()
	})

	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "dry run (not implemented)")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "Qiita API access token (or QIITA_TOKEN)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "errors only")
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "print verbose output; -vv for debug")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")
}
