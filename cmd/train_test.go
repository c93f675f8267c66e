package cmd

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Train", Label("train", "cmd"), func() {
	var dir string

	BeforeEach(func() {
		viper.Reset()
		rootCmd = NewRootCmd()
		_ = NewTrainCmd(rootCmd)
		var err error
		dir, err = os.MkdirTemp("", "slipworld")
		Expect(err).To(BeNil())
		DeferCleanup(os.RemoveAll, dir)
	})
	AfterEach(func() {
		viper.Reset()
	})

	It("Trains, evaluates and prints a summary", func() {
		_, output, err := executeCommandC(rootCmd, "train", "--quiet",
			"--episodes", "100", "--eval-episodes", "10", "--seed", "3")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("Training: 100 episodes"))
		Expect(output).To(ContainSubstring("Learned:"))
		Expect(output).To(ContainSubstring("Episodes: 10"))
	})

	It("Writes a YAML report", Label("report"), func() {
		report := filepath.Join(dir, "report.yaml")
		_, _, err := executeCommandC(rootCmd, "train", "--quiet",
			"--episodes", "60", "--eval-episodes", "5", "--seed", "4",
			"--report", report)
		Expect(err).To(BeNil())

		data, err := os.ReadFile(report)
		Expect(err).To(BeNil())

		var r RunReport
		Expect(yaml.Unmarshal(data, &r)).To(Succeed())
		Expect(r.Seed).To(Equal(uint64(4)))
		Expect(r.Config.Training.Episodes).To(Equal(60))
		Expect(r.Training.Returns).To(HaveLen(60))
		Expect(r.Training.MovingAverages).To(HaveLen(60))
		Expect(r.Training.EpisodeLengths).To(HaveLen(60))
		Expect(r.Training.Terminal + r.Training.Timeout).To(Equal(60))
		Expect(r.Evaluation.LearnedReturns).To(HaveLen(5))
		Expect(r.Evaluation.RandomReturns).To(HaveLen(5))

		// Every valid state of the default world has an action
		Expect(r.Policy).To(HaveLen(6))
		total := 0
		for _, n := range r.Policy {
			total += n
		}
		Expect(total).To(Equal(6*6*6 - 25))
	})

	It("Writes plots of a single layer", Label("plot"), func() {
		plots := filepath.Join(dir, "plots")
		_, _, err := executeCommandC(rootCmd, "train", "--quiet",
			"--episodes", "20", "--eval-episodes", "2", "--seed", "5",
			"--plot-dir", plots, "--z", "5")
		Expect(err).To(BeNil())

		for _, name := range []string{"rewards.png", "rewards.html",
			"values-z5.png"} {
			Expect(filepath.Join(plots, name)).To(BeARegularFile())
		}
		Expect(filepath.Join(plots, "values-z0.png")).NotTo(BeAnExistingFile())
	})

	It("Reads the config file", Label("config"), func() {
		cfg := filepath.Join(dir, "config.yaml")
		Expect(os.WriteFile(cfg, []byte("world:\n  width: 3\n  height: 3\n"+
			"  depth: 3\n  goal: \"2,2,2\"\n  pit: \"1,1,1\"\n"+
			"training:\n  episodes: 30\n"), 0o644)).To(Succeed())

		_, output, err := executeCommandC(rootCmd, "train", "--quiet",
			"--config", cfg, "--eval-episodes", "3", "--seed", "6")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("Bounds: (3, 3, 3)"))
		Expect(output).To(ContainSubstring("Training: 30 episodes"))
	})

	It("Rejects invalid settings", func() {
		_, _, err := executeCommandC(rootCmd, "train", "--quiet",
			"--slip", "1.5")
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("slip"))
	})
})

var _ = Describe("World", Label("world", "cmd"), func() {
	BeforeEach(func() {
		viper.Reset()
		rootCmd = NewRootCmd()
		_ = NewWorldCmd(rootCmd)
	})
	AfterEach(func() {
		viper.Reset()
	})

	It("Prints every layer of the default world", func() {
		_, output, err := executeCommandC(rootCmd, "world", "--no-color")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("Bounds: (6, 6, 6)"))
		for _, layer := range []string{"z = 0", "z = 5"} {
			Expect(output).To(ContainSubstring(layer))
		}
		Expect(output).To(ContainSubstring("S....."))
		Expect(output).NotTo(ContainSubstring("\x1b["))
	})

	It("Colours the output by default", func() {
		_, output, err := executeCommandC(rootCmd, "world")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("\x1b["))
	})
})
