package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-pos-dashboard/internal/session"
)

func newBannerCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Show whether the install banner may appear on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := env.banners()
			if err != nil {
				return err
			}
			sess, err := session.New(cmd.Context(), env.DeviceKey, store)
			if err != nil {
				return err
			}
			state := "allowed"
			if !sess.BannerAllowed() {
				state = "dismissed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Install banner on %s: %s\n", env.DeviceKey, state)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Hide the install banner on this device for good",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := env.banners()
			if err != nil {
				return err
			}
			sess, err := session.New(cmd.Context(), env.DeviceKey, store)
			if err != nil {
				return err
			}
			if err := sess.DismissBanner(cmd.Context()); err != nil {
				return fmt.Errorf("save banner preference: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Install banner dismissed on %s\n", env.DeviceKey)
			return nil
		},
	})
	return cmd
}

func newStatusCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the shop API can be reached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _ := session.New(cmd.Context(), env.DeviceKey, nil)
			st := sess.Probe(cmd.Context(), env.Client)
			dot := "🟢"
			if !st.Online {
				dot = "🔴"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\nDevice: %s\n", dot, st.Text, env.Client.Origin(), env.DeviceKey)
			if !st.Online {
				return fmt.Errorf("shop API at %s is unreachable", env.Client.Origin())
			}
			return nil
		},
	}
}
