package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/render"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sitelen.

Bash:
  $ source <(sitelen completion bash)

Zsh:
  $ sitelen completion zsh > "${fpath[1]}/_sitelen"

Fish:
  $ sitelen completion fish > ~/.config/fish/completions/sitelen.fish

PowerShell:
  PS> sitelen completion powershell | Out-String | Invoke-Expression

Completions cover subcommands, output formats and input file types.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// registerCompletions adds flag value completions to every command of root
// that defines the flag.
func registerCompletions(root *cobra.Command) {
	files := map[string][]string{
		"config": {"toml"},
		"vocab":  {"toml"},
		"sprite": {"toml"},
	}
	walk(root, func(cmd *cobra.Command) {
		for name, exts := range files {
			switch {
			case cmd.PersistentFlags().Lookup(name) != nil:
				_ = cmd.MarkPersistentFlagFilename(name, exts...)
			case cmd.LocalNonPersistentFlags().Lookup(name) != nil:
				_ = cmd.MarkFlagFilename(name, exts...)
			}
		}
		if cmd.Flags().Lookup("input") != nil {
			_ = cmd.MarkFlagFilename("input", "txt", "json")
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion(cmd.Name()))
		}
	})
}

// formatCompletion completes the last entry of a comma-separated format list.
func formatCompletion(command string) cobra.CompletionFunc {
	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}
	if command == "tree" {
		formats = treeFormats
	}
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		out := make([]string, 0, len(formats))
		for _, f := range formats {
			out = append(out, fmt.Sprintf("%s%s", prefix, f))
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

func walk(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walk(sub, fn)
	}
}
