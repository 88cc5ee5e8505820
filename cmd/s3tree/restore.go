package main

import (
	"github.com/spf13/cobra"

	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/mirror"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [flags] <bucket>::<key-prefix> <local-dir>",
		Short: "Download every object under a key prefix into a directory",
		Args:  twoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := keymap.ParseRemote(args[0])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			sess, err := newSession(cmd, remote)
			if err != nil {
				return err
			}

			return sess.run(cmd.Context(), "Restore", mirror.Restore, args[1], remote.Prefix)
		},
	}
}
