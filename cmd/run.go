package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
)

const (
	PromptNewSession = "Start a new session"
	PromptQuit       = "Quit"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening chat in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("progress", "p", true, "show the collected-data table after each turn")
}

// run drives a single-candidate screening conversation on the terminal.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	orchestrator, err := newOrchestrator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the orchestrator", zap.Error(err))
	}

	showProgress := cmd.Flag("progress").Value.String() == "true"

	fmt.Println("Maya - Your TalentScout Assistant")
	fmt.Println("Say hello to begin, or 'exit' at any time to leave.")
	fmt.Println()

	session := interview.NewSession()
	for {
		input := promptui.Prompt{Label: "You"}

		text, err := input.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		reply, display := orchestrator.HandleTurn(ctx, session, text)

		fmt.Printf("\nMaya: %s\n\n", reply)

		if showProgress && len(display.Fields) > 0 {
			renderDisplay(display)
		}

		if !display.Phase.Terminal() {
			continue
		}

		restart := promptui.Select{
			Label: "The session has ended",
			Items: []string{PromptNewSession, PromptQuit},
		}

		_, action, err := restart.Run()
		if err != nil || action == PromptQuit {
			logger.Info("exiting", zap.String("session_id", session.ID))
			return
		}

		// A session is never resumed past a terminal phase, only replaced.
		session = interview.NewSession()
		fmt.Println("\nStarting fresh. Say hello to begin!")
		fmt.Println()
	}
}

// renderDisplay prints the candidate's progress the way the presentation
// layer would: masked values only.
func renderDisplay(display interview.DisplayState) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Field", "Value"})

	for _, f := range display.Fields {
		value := interview.Mask(f.Mask, f.Value)
		if f.Warning {
			value += " (unverified)"
		}
		t.AppendRow(table.Row{f.Label, value})
	}

	if display.Progress.Total > 0 {
		t.AppendFooter(table.Row{
			"Questions",
			fmt.Sprintf("%d/%d answered", display.Progress.Answered, display.Progress.Total),
		})
	}

	t.Render()
	fmt.Println()
}
