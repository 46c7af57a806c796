package benchmarks

import "github.com/spf13/cobra"

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{Use: "blackjack-rl-test"}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 100000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 20, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	// adding the subcommands here
	rootCommand.AddCommand(BlackjackCommand())
	rootCommand.AddCommand(BlackjackDoubleCommand())
	rootCommand.AddCommand(BlackjackCountingCommand())
	return rootCommand
}
