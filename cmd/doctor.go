package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	common "github.com/sanix-darker/purr/internal/common"
	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/doctor"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/sanix-darker/purr/internal/vcs"
)

// NewDoctorCmd: add the doctor command
func NewDoctorCmd(conf config.Config) *cobra.Command {

	// doctorCmd represents the doctorCmd for the command
	doctorCmd := &cobra.Command{
		Use:     "doctor",
		Short:   "check that tokens, keys and connectivity are ready for reviews.",
		Example: "purr doctor",
		Run: func(cmd *cobra.Command, args []string) {
			applyFlags(cmd.Flags(), &conf)
			runDoctor(conf)
		},
	}

	return doctorCmd
}

func runDoctor(conf config.Config) {
	fmt.Println("Testing PR Review Tool Setup")
	fmt.Println()

	pcfg := provider.ResolveProvider(conf.Viper)

	suite := doctor.Suite{
		Out: os.Stdout,
		Checks: []doctor.Check{
			doctor.RegistryCheck(pcfg.Name),
			doctor.EnvCheck(),
			doctor.GitHubCheck(func() (vcs.VCSProvider, error) {
				token := githubToken(conf)
				if token == "" {
					return nil, errors.New("GITHUB_TOKEN not set")
				}
				return newVCSProvider(conf, token)
			}),
			doctor.CompletionCheck(func() (provider.AIProvider, error) {
				return resolveProvider(conf)
			}),
		},
	}

	passed, total := suite.Run(context.Background())
	if passed == total {
		common.LogInfo("All tests passed! The PR review tool is ready to use.")
		common.LogInfo("\nExample usage:")
		common.LogInfo("  purr review --repo owner/repo --pr 123")
		return
	}
	common.LogError("Some tests failed. Please fix the issues above before using the tool.", true)
}

func init() {
	conf := config.NewDefaultConfig()
	rootCmd.AddCommand(NewDoctorCmd(conf))
}
