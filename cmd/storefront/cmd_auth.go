// cmd/storefront/cmd_auth.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"storefront/internal/clients"
	"storefront/internal/session"
	"strings"

	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(cmd); err != nil {
			return err
		}
		login, err := clients.NewAuthClient(endpoint, clientOptions()).Login(cmd.Context(), username, password)
		if err != nil {
			return failure(cmd, err)
		}

		store, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()
		if err := store.Save(cmd.Context(), session.Session{Token: login.Token, Username: login.Username}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in successfully")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(cmd); err != nil {
			return err
		}
		if err := clients.NewAuthClient(endpoint, clientOptions()).Register(cmd.Context(), username, password); err != nil {
			return failure(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Registered successfully")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openSession()
		if err != nil {
			return err
		}
		defer closeStore()
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		if !sess.LoggedIn() {
			return failure(cmd, session.ErrNoSession)
		}
		fmt.Fprintln(cmd.OutOrStdout(), sess.Username)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVarP(&username, "username", "u", "", "username")
		cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when empty)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// promptCredentials reads whatever was not given as a flag from stdin, one
// value per line.
func promptCredentials(cmd *cobra.Command) error {
	in := bufio.NewReader(cmd.InOrStdin())
	if username == "" {
		cmd.Print("Username: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		username = line
	}
	if password == "" {
		cmd.Print("Password: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		password = line
	}
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
