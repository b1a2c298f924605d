// ═══════════════════════════════════════════════════════════════════════════
// REPORT — renders a tomasulo.Result as text or JSON
// ═══════════════════════════════════════════════════════════════════════════
//
// Purely a presentation layer: everything here reads from the engine's
// public Result and Instruction fields, never from RS/ROB internals. The
// text table format follows the teacher's Stats()-style plain fmt.Fprintf
// reporting; JSON is a straight encoding of the same Result for scripted
// consumption (spec.md §6 / SPEC_FULL.md §4.11).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	tomasulo "github.com/Doha-Deia/TomasuloAlgorithm-Simulator"
)

// Format selects the reporter's output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Write renders result to w in the requested format.
func Write(w io.Writer, result tomasulo.Result, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

func writeJSON(w io.Writer, result tomasulo.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(w io.Writer, result tomasulo.Result) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\taddr\top\tissue\texec_start\texec_end\twrite\tcommit")
	for _, ins := range result.Instructions {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ins.ID, ins.Addr, ins.Opcode.Mnemonic(),
			cycleCell(ins.Issue), cycleCell(ins.ExecStart), cycleCell(ins.ExecEnd),
			cycleCell(ins.Write), cycleCell(ins.Commit))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "registers:")
	for i, v := range result.Registers {
		fmt.Fprintf(w, "  r%d = %d\n", i, v)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "memory (nonzero cells):")
	for addr, v := range result.Memory {
		if v != 0 {
			fmt.Fprintf(w, "  [%d] = %d\n", addr, v)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "cycles: %d\n", result.Cycles)
	fmt.Fprintf(w, "committed: %d\n", result.CommittedCount)
	fmt.Fprintf(w, "ipc: %.4f\n", result.IPC)
	fmt.Fprintf(w, "branches: %d\n", result.BranchCount)
	fmt.Fprintf(w, "mispredictions: %d\n", result.Mispredictions)
	return nil
}

func cycleCell(c tomasulo.Cycle) string {
	if !c.IsSet() {
		return "-"
	}
	return fmt.Sprintf("%d", int(c))
}
