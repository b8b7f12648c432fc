package cli

import (
	"context"
	"io"
)

// Execute builds the command tree and runs it with args, logging to logOut.
// It is the entry point used by main.
func Execute(ctx context.Context, args []string, stdout, logOut io.Writer) error {
	c := New(logOut, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(logOut)
	return root.ExecuteContext(ctx)
}
