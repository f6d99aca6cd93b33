package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newbeginning12/flashcal/internal/llm"
	"github.com/newbeginning12/flashcal/internal/planner"
)

const maxRetries = 3

func (a *App) planCmd() *cobra.Command {
	var (
		modelFlag string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Plan intervals from natural language input",
		Long: `Use an LLM to turn a natural language description into calendar
intervals.

Examples:
  flashcal plan "an hour of writing tomorrow morning, gym at 6pm"
  flashcal plan "three review blocks spread over next week" --dry-run

Interactive mode:
  After the model proposes a schedule, you can:
  - [a]ccept: Save the intervals
  - [m]odify: Provide feedback to adjust the proposal
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			input := strings.Join(args, " ")

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			p := planner.New(client, a.config, a.repo)

			fmt.Println("Planning intervals...")
			result, err := p.PlanWithRetry(context.Background(), planner.PlanRequest{Input: input}, maxRetries)
			if err != nil {
				return fmt.Errorf("planning: %w", err)
			}

			reader := bufio.NewReader(os.Stdin)
			for {
				displayPlanResult(result)

				if dryRun {
					fmt.Println("\n(Dry run - intervals not saved)")
					return nil
				}

				fmt.Print("\n[a]ccept / [m]odify / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}

				switch strings.TrimSpace(strings.ToLower(choice)) {
				case "a", "accept":
					if result.HasValidationErrors() {
						fmt.Println("Cannot save: there are unresolved validation errors.")
						fmt.Println("Please [m]odify the plan or [c]ancel.")
						continue
					}
					if err := p.Save(context.Background(), result); err != nil {
						return fmt.Errorf("saving intervals: %w", err)
					}
					fmt.Printf("\n%d interval(s) saved\n", len(result.Intervals))
					return nil

				case "m", "modify":
					fmt.Print("What would you like to change? ")
					modification, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
					modification = strings.TrimSpace(modification)
					if modification == "" {
						fmt.Println("No modification provided, showing current plan...")
						continue
					}

					fmt.Println("\nReplanning...")
					result, err = p.ContinuePlanning(context.Background(), modification, maxRetries)
					if err != nil {
						return fmt.Errorf("replanning: %w", err)
					}

				case "c", "cancel":
					fmt.Println("Planning cancelled.")
					return nil

				default:
					fmt.Println("Invalid choice. Please enter 'a', 'm', or 'c'.")
				}
			}
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned intervals without saving")

	return cmd
}

// displayPlanResult shows the planning result to the user.
func displayPlanResult(result *planner.PlanResult) {
	fmt.Println()

	if result.HasValidationErrors() {
		fmt.Println(formatWarning("Validation errors (LLM retry limit reached):"))
		for _, ve := range result.ValidationErrors {
			fmt.Printf("  - %s\n", ve)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Println(formatWarning("Warnings:"))
		for _, w := range result.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  * %s\n", s)
		}
	}

	if len(result.Intervals) == 0 {
		fmt.Println("No intervals proposed.")
		return
	}

	fmt.Println(formatHeader("Proposed intervals:"))
	fmt.Println(strings.Repeat("-", 60))
	for _, iv := range result.Intervals {
		fmt.Println(formatInterval(iv, termWidth()))
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Total: %d interval(s)\n", len(result.Intervals))
}
