package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rowmut/rowmut/internal/adapter"
	"github.com/rowmut/rowmut/internal/controller"
	"github.com/rowmut/rowmut/internal/engine"
	"github.com/rowmut/rowmut/internal/mutagenerr"
	"github.com/rowmut/rowmut/internal/seedcodec"
)

var (
	inputFlag         string
	mutationsFlag     string
	outputFlag        string
	seedFlag          string
	readSeedFlag      string
	writeSeedFlag     string
	countFlag         int
	minCountFlag      int
	maxCountFlag      int
	forceFlag         bool
	stripCommentsFlag bool
	reportFlag        string
	// penetrationFlag is accepted and validated for CLI-contract parity with
	// the original tool but not yet consumed by the engine; nothing in the
	// text-level replacement pipeline defines what it would mean.
	penetrationFlag int
	tuiFlag         bool
)

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate",
		Short: "Apply a mutation spec to a source file",
		Long:  mutateLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMutate(cmd)
		},
	}

	configureMutateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}

func configureMutateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputFlag, inputFlagName, "i", "", "source file (default stdin)")
	cmd.Flags().StringVarP(&mutationsFlag, mutationsFlagName, "m", "", "mutation spec file (default stdin)")
	cmd.Flags().StringVarP(&outputFlag, outputFlagName, "o", "", "destination file (default stdout)")
	cmd.Flags().StringVarP(&seedFlag, seedFlagName, "s", "", "64 hex digit seed")
	cmd.Flags().StringVarP(&readSeedFlag, readSeedFlagName, "r", "", "read hex seed from the first line of a file")
	cmd.Flags().StringVarP(&writeSeedFlag, writeSeedFlagName, "w", "", "write the resolved seed to a file")
	cmd.Flags().IntVarP(&countFlag, countFlagName, "c", 0, "exact mutation count")
	cmd.Flags().IntVar(&minCountFlag, minCountFlagName, 0, "minimum bound for random count")
	cmd.Flags().IntVar(&maxCountFlag, maxCountFlagName, 0, "maximum bound for random count")
	cmd.Flags().BoolVarP(&forceFlag, forceFlagName, "F", false, "overwrite an existing output file")
	cmd.Flags().BoolVar(&stripCommentsFlag, stripCommentsFlagName, false, "strip same-line comments from the source before matching")
	cmd.Flags().StringVar(&reportFlag, reportFlagName, "", "write a YAML run manifest to this path")
	cmd.Flags().IntVarP(&penetrationFlag, "penetration", "p", 0, "reserved, not yet consumed by the engine")
	cmd.Flags().BoolVar(&tuiFlag, tuiFlagName, false, "force the interactive results browser even when stdout is not a terminal")
}

func runMutate(cmd *cobra.Command) error {
	if err := validateMutateFlags(cmd); err != nil {
		return err
	}

	seed, err := resolveSeed()
	if err != nil {
		return err
	}

	source, specText, err := sourceAdapter.ReadSourceAndSpec(inputFlag, mutationsFlag, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Seed:          seed,
		Verbose:       verboseFlag,
		StripComments: stripCommentsFlag,
	}

	if cmd.Flags().Changed(countFlagName) {
		cfg.Count = &countFlag
	}

	if cmd.Flags().Changed(minCountFlagName) {
		cfg.MinCount = &minCountFlag
	}

	if cmd.Flags().Changed(maxCountFlagName) {
		cfg.MaxCount = &maxCountFlag
	}

	if verboseFlag {
		configureLogger("", true)
	}

	result, err := mutateEngine.Run(cmd.Context(), source, specText, cfg)
	if err != nil {
		return err
	}

	if err := sourceAdapter.WriteOutput(outputFlag, result.Output, forceFlag); err != nil {
		return err
	}

	if writeSeedFlag != "" {
		if err := sourceAdapter.WriteSeedFile(writeSeedFlag, seed); err != nil {
			return err
		}
	}

	if reportFlag != "" {
		if err := writeMutateReport(seed, result); err != nil {
			return err
		}
	}

	activeReporter := reporter
	if tuiFlag {
		activeReporter = controller.NewTUIReporter(cmd.OutOrStdout())
	}

	if err := activeReporter.Start(cmd.Context()); err != nil {
		return err
	}

	defer activeReporter.Close(cmd.Context())

	if err := activeReporter.DisplaySelection(cmd.Context(), result.PossibleCount, result.Selected); err != nil {
		return err
	}

	activeReporter.DisplayWarnings(cmd.Context(), result.Warnings)
	activeReporter.DisplayResult(cmd.Context(), outputFlag, len(result.Output))

	return nil
}

func validateMutateFlags(cmd *cobra.Command) error {
	if seedFlag != "" && readSeedFlag != "" {
		return mutagenerr.New(mutagenerr.InvalidArgument, "--seed and --read-seed are mutually exclusive")
	}

	countChanged := cmd.Flags().Changed(countFlagName)
	boundChanged := cmd.Flags().Changed(minCountFlagName) || cmd.Flags().Changed(maxCountFlagName)

	if countChanged && boundChanged {
		return mutagenerr.New(mutagenerr.InvalidArgument, "--count and --min-count/--max-count are mutually exclusive")
	}

	if penetrationFlag < 0 {
		return mutagenerr.New(mutagenerr.InvalidArgument, "--penetration must not be negative")
	}

	return nil
}

func resolveSeed() ([seedcodec.Size]byte, error) {
	switch {
	case seedFlag != "":
		seed, err := seedcodec.Decode(seedFlag)
		if err == nil {
			slog.Info("using provided seed", "seed", seedcodec.Encode(seed))
		}

		return seed, err
	case readSeedFlag != "":
		seed, err := sourceAdapter.ReadSeedFile(readSeedFlag)
		if err == nil {
			slog.Info("using seed read from file", "seed", seedcodec.Encode(seed), "path", mutagenerr.Sanitize(readSeedFlag))
		}

		return seed, err
	default:
		seed, err := seedcodec.Generate()
		if err == nil {
			slog.Info("using generated seed", "seed", seedcodec.Encode(seed))
		}

		return seed, err
	}
}

func writeMutateReport(seed [seedcodec.Size]byte, result engine.Result) error {
	report := adapter.NewReport(
		seed,
		result.PossibleCount,
		len(result.Selected),
		result.Warnings.NoMatchLines(),
		result.Warnings.MultipleMatchLines(),
		result.Warnings.FreeTextNotices(),
	)

	return sourceAdapter.WriteReport(reportFlag, report)
}
