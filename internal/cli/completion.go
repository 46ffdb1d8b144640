package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for slidelint.

To load completions:

Bash:
  $ source <(slidelint completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ slidelint completion bash > /etc/bash_completion.d/slidelint
  # macOS:
  $ slidelint completion bash > $(brew --prefix)/etc/bash_completion.d/slidelint

Zsh:
  $ slidelint completion zsh > "${fpath[1]}/_slidelint"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ slidelint completion fish | source

  # To load completions for each session, execute once:
  $ slidelint completion fish > ~/.config/fish/completions/slidelint.fish

PowerShell:
  PS> slidelint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}
