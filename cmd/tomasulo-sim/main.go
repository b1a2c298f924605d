package main

import (
	"fmt"
	"os"

	tomasulo "github.com/Doha-Deia/TomasuloAlgorithm-Simulator"
	"github.com/Doha-Deia/TomasuloAlgorithm-Simulator/internal/loader"
	"github.com/Doha-Deia/TomasuloAlgorithm-Simulator/internal/report"
	"github.com/Doha-Deia/TomasuloAlgorithm-Simulator/internal/telemetry"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tomasulo-sim",
		Short:         "Cycle-accurate Tomasulo out-of-order pipeline simulator",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	var (
		memPath   string
		maxCycles int
		format    string
		robSize   int
		loadRS    int
		storeRS   int
		brRS      int
		addsubRS  int
		nandRS    int
		mulRS     int
		callRS    int
		retRS     int
		verbose   bool
	)

	runCmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Simulate a program file and report per-instruction timing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loader.LoadProgram(args[0])
			if err != nil {
				return err
			}

			cfg := tomasulo.DefaultConfig()
			if robSize > 0 {
				cfg.ROBSize = robSize
			}
			if loadRS > 0 {
				cfg.RSCounts[tomasulo.FamilyLOAD] = loadRS
			}
			if storeRS > 0 {
				cfg.RSCounts[tomasulo.FamilySTORE] = storeRS
			}
			if brRS > 0 {
				cfg.RSCounts[tomasulo.FamilyBR] = brRS
			}
			if addsubRS > 0 {
				cfg.RSCounts[tomasulo.FamilyADDSUB] = addsubRS
			}
			if nandRS > 0 {
				cfg.RSCounts[tomasulo.FamilyNAND] = nandRS
			}
			if mulRS > 0 {
				cfg.RSCounts[tomasulo.FamilyMUL] = mulRS
			}
			if callRS > 0 {
				cfg.RSCounts[tomasulo.FamilyCALL] = callRS
			}
			if retRS > 0 {
				cfg.RSCounts[tomasulo.FamilyRET] = retRS
			}
			if maxCycles > 0 {
				cfg.MaxCycles = maxCycles
			}

			logLevel := telemetry.LevelInfo
			if verbose {
				logLevel = telemetry.LevelDebug
			}
			logger := telemetry.New(&telemetry.Config{Level: logLevel, Output: os.Stderr})

			engine, err := tomasulo.NewEngine(prog.Instructions, cfg, tomasulo.WithLogger(logger))
			if err != nil {
				return err
			}

			if memPath != "" {
				seed, err := loader.LoadMemory(memPath)
				if err != nil {
					return err
				}
				engine.SeedMemory(seed)
			}

			result, runErr := engine.Run()
			if werr := report.Write(os.Stdout, result, report.Format(format)); werr != nil {
				return werr
			}
			return runErr
		},
	}
	runCmd.Flags().StringVar(&memPath, "mem", "", "Optional memory seed file")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 0, "Override the runaway cycle limit (0 = default)")
	runCmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	runCmd.Flags().IntVar(&robSize, "rob-size", 0, "Override ROB size (0 = default)")
	runCmd.Flags().IntVar(&loadRS, "load-rs", 0, "Override LOAD reservation station count")
	runCmd.Flags().IntVar(&storeRS, "store-rs", 0, "Override STORE reservation station count")
	runCmd.Flags().IntVar(&brRS, "br-rs", 0, "Override BR reservation station count")
	runCmd.Flags().IntVar(&addsubRS, "addsub-rs", 0, "Override ADD/SUB reservation station count")
	runCmd.Flags().IntVar(&nandRS, "nand-rs", 0, "Override NAND reservation station count")
	runCmd.Flags().IntVar(&mulRS, "mul-rs", 0, "Override MUL reservation station count")
	runCmd.Flags().IntVar(&callRS, "call-rs", 0, "Override CALL reservation station count")
	runCmd.Flags().IntVar(&retRS, "ret-rs", 0, "Override RET reservation station count")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Emit per-cycle debug trace to stderr")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
