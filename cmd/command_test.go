package cmd

import (
	"bytes"

	"github.com/spf13/cobra"
)

// executeCommandC runs cmd with args, returning the executed command
// and everything it wrote to its output
func executeCommandC(cmd *cobra.Command, args ...string) (c *cobra.Command, output string, err error) {
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	c, err = cmd.ExecuteC()
	if err != nil {
		return nil, "", err
	}
	return c, out.String(), nil
}
