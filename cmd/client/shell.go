package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

const shellHelp = `Available commands: spots, hotels, cars, posts, post, login, signup, logout,
whoami, recommend, ask, set-hotel-price, set-car-price, help, exit.
Flags work as on the command line, e.g. spots --region "Azad Kashmir".`

func (c *cli) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.repl()
		},
	}
}

// repl runs the interactive shell loop. Each line is executed as a
// subcommand against the same server.
func (c *cli) repl() error {
	reader := bufio.NewReader(c.in)

	for {
		fmt.Fprint(c.out, "tripwise> ")
		line, readErr := reader.ReadString('\n')
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			args = nil
		}

		if len(args) > 0 {
			switch args[0] {
			case "help":
				fmt.Fprintln(c.out, shellHelp)
			case "exit", "quit":
				fmt.Fprintln(c.out, "Bye")
				return nil
			case "shell":
				fmt.Fprintln(c.out, "Already in the shell")
			default:
				sub := newRootCmd(reader, c.out)
				sub.SetArgs(append(args, "--url", c.baseURL, "--timeout", c.timeout.String()))
				if err := sub.Execute(); err != nil {
					fmt.Fprintln(c.out, "Error:", err)
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return readErr
		}
	}
}
