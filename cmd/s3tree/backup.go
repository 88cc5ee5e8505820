package main

import (
	"github.com/spf13/cobra"

	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/mirror"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [flags] <local-dir> <bucket>::<key-prefix>",
		Short: "Upload new and modified files under a directory",
		Args:  twoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := keymap.ParseRemote(args[1])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			sess, err := newSession(cmd, remote)
			if err != nil {
				return err
			}

			return sess.run(cmd.Context(), "Backup", mirror.Backup, args[0], remote.Prefix)
		},
	}

	cmd.Flags().Bool("create-bucket", false, "create the bucket if it does not exist")

	return cmd
}
