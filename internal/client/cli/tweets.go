package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/dwitter/internal/client/client"
)

func newTweetsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tweets",
		Aliases: []string{"t"},
		Short:   "Read and write tweets",
	}
	cmd.AddCommand(newTweetsListCmd(s))
	cmd.AddCommand(newTweetsGetCmd(s))
	cmd.AddCommand(newTweetsPostCmd(s))
	cmd.AddCommand(newTweetsEditCmd(s))
	cmd.AddCommand(newTweetsDeleteCmd(s))
	return cmd
}

func newTweetsListCmd(s *session) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tweets, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := s.api.ListTweets(cmd.Context(), username)
			if err != nil {
				return err
			}
			return printTweets(cmd, list)
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "only tweets by this username")
	return cmd
}

func newTweetsGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw, err := s.api.GetTweet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTweets(cmd, []client.Tweet{*tw})
		},
	}
}

func newTweetsPostCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "post <text>...",
		Short: "Post a new tweet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			tw, err := s.api.CreateTweet(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printTweets(cmd, []client.Tweet{*tw})
		},
	}
}

func newTweetsEditCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace the text of one of your tweets",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			tw, err := s.api.UpdateTweet(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return printTweets(cmd, []client.Tweet{*tw})
		},
	}
}

func newTweetsDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one of your tweets",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			if err := s.api.DeleteTweet(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
