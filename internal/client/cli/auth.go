package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/dwitter/internal/client/client"
	"github.com/dmitrijs2005/dwitter/internal/common"
)

// promptIfEmpty asks for *v on the command's output when the flag was not given.
func promptIfEmpty(cmd *cobra.Command, s *session, v *string, label string) error {
	if *v != "" {
		return nil
	}
	text, err := GetSimpleText(s.in, label, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("read %s: %w", label, err)
	}
	*v = text
	return nil
}

func readPasswordString(cmd *cobra.Command) (string, error) {
	pw, err := GetPassword(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func newSignupCmd(s *session) *cobra.Command {
	var req client.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptIfEmpty(cmd, s, &req.Name, "Name"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, s, &req.UserName, "Username"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, s, &req.Email, "Email"); err != nil {
				return err
			}
			pw, err := readPasswordString(cmd)
			if err != nil {
				return err
			}
			req.Password = pw

			res, err := s.api.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := s.tokens.Save(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", res.UserName)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVarP(&req.UserName, "username", "u", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.URL, "url", "", "avatar URL")
	return cmd
}

func newLoginCmd(s *session) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptIfEmpty(cmd, s, &username, "Username"); err != nil {
				return err
			}
			pw, err := readPasswordString(cmd)
			if err != nil {
				return err
			}

			res, err := s.api.Login(cmd.Context(), username, pw)
			if err != nil {
				return err
			}
			if err := s.tokens.Save(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.UserName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func newLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newMeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			res, err := s.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.UserName)
			return nil
		},
	}
}
