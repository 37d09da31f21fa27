package analyzer

import (
	"fmt"
	"strings"
)

// instructionNotes constrains the agent to read-only tuning analysis. The
// traced application cannot be changed, so only file system knobs matter.
const instructionNotes = `Remember:
- The application code cannot be changed. Focus only on information that helps tune file system parameters to improve performance of the application as written.
- DO NOT run commands that change file system parameters; the user applies changes after reviewing your analysis.
- DO NOT suggest specific commands to run; the user is an expert in applying file system configuration changes.
- DO NOT create any plots or graphs.
- Keep these instructions as part of your plan so you do not forget them later in the analysis.`

func buildSystemPrompt(workDir string, modules []string) string {
	return fmt.Sprintf(`You are an HPC I/O performance expert helping tune file system parameters.

Your workspace contains a Darshan I/O profiling log converted to tabular form at %s:
- %s/header.txt — run metadata: executable, job ID, number of processes, total runtime
- %s/<MODULE>.csv — one table per Darshan module (one row per rank/record, one column per counter)
- %s/<MODULE>_description.txt — what each module's counters mean and how to interpret them
- %s/paths.txt — file path templates mined from the recorded accesses

The recorded Darshan modules are: %s.

Start by reading header.txt and every module's description file, then inspect the CSV tables.
Use the execute tool for aggregation (e.g. awk, sort, column sums) where reading alone is not enough.

%s`,
		workDir, workDir, workDir, workDir, workDir,
		strings.Join(modules, ", "),
		instructionNotes)
}

func buildAnalysisPrompt(modules []string, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `I traced my HPC application's I/O behavior with Darshan. The run recorded these modules: %s.

Your task:
1) Inspect the module tables and their description files to understand what the counters represent.
2) Find which unique directories the application accesses (paths.txt gives a head start).
3) Extract the most important information from the data that can guide file system parameter tuning to improve the application's performance.
`, strings.Join(modules, ", "))
	if question != "" {
		fmt.Fprintf(&b, "\nThe user also asks: %s\n", question)
	}
	return b.String()
}

func buildQAPrompt(question string) string {
	return fmt.Sprintf(`The workspace contains a Darshan I/O profiling log converted to per-module CSV tables with description files (see AGENTS.md for the layout).

Please answer the following question about the Darshan log data:

%s`, question)
}

func buildSummaryPrompt(transcriptJSON string) string {
	return fmt.Sprintf(`A user asked an assistant to analyze a Darshan log and extract knowledge useful for tuning file system parameters to improve the performance of the traced application.
The analysis consists of an initial task message, followed by messages where the assistant plans, runs analysis code against the workspace, and interprets the results.

Here is the full transcript of the analysis:
%s

Your task: review the analysis and write a detailed summary of everything the assistant discovered about the application's I/O behavior. Include the specific findings that can help tune file system parameters to improve the application's performance.`, transcriptJSON)
}
