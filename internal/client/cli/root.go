package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/dwitter/internal/client/client"
	"github.com/dmitrijs2005/dwitter/internal/client/config"
)

// session is shared by all subcommands of one invocation.
type session struct {
	api    *client.Client
	tokens *tokenStore
	in     *bufio.Reader
}

// requireLogin fails early when no token is cached.
func (s *session) requireLogin() error {
	if s.api.Token() == "" {
		return client.ErrNotLoggedIn
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNotLoggedIn) {
			fmt.Fprintln(os.Stderr, "Run 'dwitter login' to start a new session.")
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host       string
		configPath string
		tokenFile  string
		output     string
	)
	s := &session{}

	rootCmd := &cobra.Command{
		Use:           "dwitter",
		Short:         "dwitter CLI",
		Long:          "Command-line client for the dwitter tweet service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.ServerURL = host
			}
			if cmd.Flags().Changed("token-file") {
				cfg.TokenFile = tokenFile
			}

			path := cfg.TokenFile
			if path == "" {
				path, err = defaultTokenPath()
				if err != nil {
					return err
				}
			}
			s.tokens = &tokenStore{path: path}

			token, err := s.tokens.Load()
			if err != nil {
				return err
			}

			s.api = client.New(cfg.ServerURL, cfg.Timeout)
			s.api.SetToken(token)
			s.in = bufio.NewReader(cmd.InOrStdin())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "", "server URL (default http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "where to cache the session token")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table or json")

	rootCmd.AddCommand(newSignupCmd(s))
	rootCmd.AddCommand(newLoginCmd(s))
	rootCmd.AddCommand(newLogoutCmd(s))
	rootCmd.AddCommand(newMeCmd(s))
	rootCmd.AddCommand(newTweetsCmd(s))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
