package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wallswap/wallswap/pkg/daemon"
)

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Tell a running daemon to re-read its configuration",
		Long:  `Send a reload request to the running wallswap daemon, forcing a wallpaper hot-swap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pidFile := daemon.NewPIDFile(daemon.RuntimePIDPath())
			pid, err := pidFile.ReadLive()
			if err != nil {
				return err
			}

			if err := syscall.Kill(pid, syscall.SIGHUP); err != nil {
				return fmt.Errorf("failed to signal daemon (pid %d): %w", pid, err)
			}

			printSuccess(fmt.Sprintf("Reload requested (pid %d)", pid))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the daemon is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidFile := daemon.NewPIDFile(daemon.RuntimePIDPath())
			pid, err := pidFile.ReadLive()
			if err != nil {
				printInfo("Daemon is not running")
				return nil
			}

			printSuccess(fmt.Sprintf("Daemon is running (pid %d)", pid))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wallswap v%s\n", version)
		},
	}
}
