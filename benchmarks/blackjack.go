package benchmarks

import (
	"context"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/blackjack-rl-test/blackjack"
	"github.com/zeu5/blackjack-rl-test/policies"
	"github.com/zeu5/blackjack-rl-test/types"
)

func compareBlackjack(saveFile string, newEnv func() *blackjack.Env, ctx context.Context) {
	c := types.NewComparison(&types.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		Horizon:    horizon,
		RecordPath: saveFile,
		// record flags
		RecordTraces: false,
	})
	c.AddAnalysis("Rewards", blackjack.NewRewardAnalyzer(), blackjack.RewardComparator(path.Join(saveFile, "plots")))
	c.AddAnalysis("Coverage", types.NewCoverageAnalyzer(), types.CoverageComparator(path.Join(saveFile, "plots")))

	c.AddExperiment(types.NewExperiment(
		"Random",
		types.NewRandomPolicy(),
		newEnv(),
	))
	c.AddExperiment(types.NewExperiment(
		"SoftMax",
		types.NewSoftMaxPolicy(0.3, 0.9),
		newEnv(),
	))
	c.AddExperiment(types.NewExperiment(
		"EpsGreedy",
		policies.NewEpsilonGreedyPolicy(0.1, 0.95, 0.05),
		newEnv(),
	))

	c.Run(ctx)
}

func BlackjackCommand() *cobra.Command {
	var natural bool
	var sab bool

	cmd := &cobra.Command{
		Use: "blackjack",
		Run: func(cmd *cobra.Command, args []string) {
			compareBlackjack(saveFile, func() *blackjack.Env {
				return blackjack.NewEnv(blackjack.Config{Natural: natural, Sab: sab})
			}, context.Background())
		},
	}
	cmd.PersistentFlags().BoolVar(&natural, "natural", false, "Pay 1.5 on a natural blackjack win")
	cmd.PersistentFlags().BoolVar(&sab, "sab", false, "Sutton and Barto natural auto win, overrides --natural")
	return cmd
}

func BlackjackDoubleCommand() *cobra.Command {
	var natural bool
	var sab bool

	cmd := &cobra.Command{
		Use: "blackjack-double",
		Run: func(cmd *cobra.Command, args []string) {
			compareBlackjack(saveFile, func() *blackjack.Env {
				return blackjack.NewDoubleEnv(blackjack.Config{Natural: natural, Sab: sab})
			}, context.Background())
		},
	}
	cmd.PersistentFlags().BoolVar(&natural, "natural", false, "Pay 1.5 on a natural blackjack win")
	cmd.PersistentFlags().BoolVar(&sab, "sab", false, "Sutton and Barto natural auto win, overrides --natural")
	return cmd
}

func BlackjackCountingCommand() *cobra.Command {
	var natural bool
	var sab bool
	var numDecks int
	var reshuffleLimit int

	cmd := &cobra.Command{
		Use: "blackjack-counting",
		Run: func(cmd *cobra.Command, args []string) {
			compareBlackjack(saveFile, func() *blackjack.Env {
				return blackjack.NewCountingEnv(blackjack.Config{
					Natural:        natural,
					Sab:            sab,
					NumDecks:       numDecks,
					ReshuffleLimit: reshuffleLimit,
				})
			}, context.Background())
		},
	}
	cmd.PersistentFlags().BoolVar(&natural, "natural", false, "Pay 1.5 on a natural blackjack win")
	cmd.PersistentFlags().BoolVar(&sab, "sab", false, "Sutton and Barto natural auto win, overrides --natural")
	cmd.PersistentFlags().IntVar(&numDecks, "decks", 4, "Number of decks in the shoe")
	cmd.PersistentFlags().IntVar(&reshuffleLimit, "reshuffle-limit", 15, "Reshuffle the shoe below this size at reset")
	return cmd
}
