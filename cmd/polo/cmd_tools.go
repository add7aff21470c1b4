package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newAskCmd sends one message through the dispatcher and prints the reply.
func newAskCmd(configPath *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			fmt.Println(a.dispatcher.Handle(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

// newShellCmd runs one shell command through the executor.
func newShellCmd(configPath *string, debug *bool) *cobra.Command {
	var timeoutSec int
	cmd := &cobra.Command{
		Use:   "shell <command...>",
		Short: "Execute a shell command with a timeout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			res := a.exec.RunCommand(cmd.Context(), strings.Join(args, " "), time.Duration(timeoutSec)*time.Second)
			if res.Output != "" {
				fmt.Print(res.Output)
				if !strings.HasSuffix(res.Output, "\n") {
					fmt.Println()
				}
			}
			if !res.Success {
				if res.Err != nil {
					return fmt.Errorf("%s: %s", res.Err.Code, res.Err.Message)
				}
				if res.ExitCode != nil {
					return fmt.Errorf("exit status %d", *res.ExitCode)
				}
				return fmt.Errorf("command failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&timeoutSec, "timeout", "t", 0, "timeout in seconds (0 = configured default)")
	return cmd
}

// newFileCmd groups the direct file operations.
func newFileCmd(configPath *string, debug *bool) *cobra.Command {
	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "File operations",
	}

	readCmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			res := a.exec.ReadFile(cmd.Context(), args[0])
			if !res.Success {
				return fmt.Errorf("%s: %s", res.Err.Code, res.Err.Message)
			}
			fmt.Print(res.Output)
			if !strings.HasSuffix(res.Output, "\n") {
				fmt.Println()
			}
			return nil
		},
	}

	var overwrite bool
	writeCmd := &cobra.Command{
		Use:   "write <path> [content...]",
		Short: "Write a file (content from args, or stdin when omitted)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			if content == "" {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(b)
			}
			res := a.exec.WriteFile(cmd.Context(), args[0], content, overwrite)
			if !res.Success {
				return fmt.Errorf("%s: %s", res.Err.Code, res.Err.Message)
			}
			fmt.Println(res.Output)
			return nil
		},
	}
	writeCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the file if it exists")

	listCmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			res := a.exec.ListDirectory(cmd.Context(), path)
			if !res.Success {
				return fmt.Errorf("%s: %s", res.Err.Code, res.Err.Message)
			}
			fmt.Println(res.Output)
			return nil
		},
	}

	fileCmd.AddCommand(readCmd, writeCmd, listCmd)
	return fileCmd
}
