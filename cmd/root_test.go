package cmd

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"
)

var _ = Describe("Root", Label("root", "cmd"), func() {
	BeforeEach(func() {
		viper.Reset()
	})
	AfterEach(func() {
		viper.Reset()
	})

	It("Logs errors", func() {
		var out bytes.Buffer
		logError(&out, errors.New("no such world"))
		Expect(out.String()).To(ContainSubstring("level=error"))
		Expect(out.String()).To(ContainSubstring("no such world"))
	})

	It("Logs errors when quiet", func() {
		viper.Set("quiet", true)
		var out bytes.Buffer
		logError(&out, errors.New("no such world"))
		Expect(out.String()).To(ContainSubstring("no such world"))
	})

	It("Returns command errors without printing them", func() {
		rootCmd = NewRootCmd()
		_ = NewTrainCmd(rootCmd)
		var out bytes.Buffer
		rootCmd.SetErr(&out)
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"train", "--quiet", "--slip", "2"})
		Expect(rootCmd.Execute()).NotTo(Succeed())
		Expect(out.String()).NotTo(ContainSubstring("Error:"))
	})
})
