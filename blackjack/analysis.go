package blackjack

import (
	"os"
	"path"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/zeu5/blackjack-rl-test/types"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RewardAnalyzer collects the total reward of every episode
type RewardAnalyzer struct {
	rewards []float64
}

var _ types.Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer() *RewardAnalyzer {
	return &RewardAnalyzer{
		rewards: make([]float64, 0),
	}
}

func (r *RewardAnalyzer) Analyze(run, episode int, experiment string, trace *types.Trace) {
	r.rewards = append(r.rewards, trace.TotalReward())
}

func (r *RewardAnalyzer) DataSet() types.DataSet {
	result := make([]float64, len(r.rewards))
	copy(result, r.rewards)
	return result
}

func (r *RewardAnalyzer) Reset() {
	r.rewards = make([]float64, 0)
}

// rewardWindow is the number of episodes averaged per plotted point
const rewardWindow = 500

// RewardComparator plots the windowed mean episode reward of all the
// experiments of a run in a single figure
func RewardComparator(plotPath string) types.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, names []string, ds []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Mean episode reward"
		for i := 0; i < len(names); i++ {
			rewards := ds[i].([]float64)
			if len(rewards) == 0 {
				continue
			}
			points := make(plotter.XYs, 0)
			for from := 0; from < len(rewards); from += rewardWindow {
				to := from + rewardWindow
				if to > len(rewards) {
					to = len(rewards)
				}
				points = append(points, plotter.XY{
					X: float64(from),
					Y: stat.Mean(rewards[from:to], nil),
				})
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			log.Info("mean episode reward", "experiment", names[i], "mean", stat.Mean(rewards, nil))
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_rewards.png"))
	}
}
