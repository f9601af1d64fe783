package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	var code string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store the access code and service URL for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				return fmt.Errorf("--code required")
			}
			if err := saveSession(&session{API: apiFlag, AccessCode: code}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "logged in against %s\n", apiFlag)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&code, "code", "c", "", "Access code (required)")
	_ = loginCmd.MarkFlagRequired("code")
	rootCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearSession(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "logged out")
			return nil
		},
	}
	rootCmd.AddCommand(logoutCmd)

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the remote snapshot and replace local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if !c.Pull(ctx) {
				return fmt.Errorf("pull failed; local state unchanged")
			}
			_, _ = fmt.Fprintln(os.Stdout, "pulled")
			return nil
		},
	}
	rootCmd.AddCommand(pullCmd)

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push the local snapshot to the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()
			if !c.Authenticated() {
				return fmt.Errorf("not logged in; run planctl login first")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if !c.Push(ctx) {
				return fmt.Errorf("push failed")
			}
			_, _ = fmt.Fprintln(os.Stdout, "pushed")
			return nil
		},
	}
	rootCmd.AddCommand(pushCmd)
}
