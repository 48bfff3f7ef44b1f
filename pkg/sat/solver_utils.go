package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// ConfigPath points to the JSON file mapping solver names to executables.
var ConfigPath = "../../config.json"

func getExecutablePath(solver string) (string, error) {
	bytes, err := os.ReadFile(ConfigPath)
	if err != nil {
		return "", fmt.Errorf("cannot read config.json file: %v", err)
	}
	if !gjson.ValidBytes(bytes) {
		return "", fmt.Errorf("config.json is not valid JSON")
	}

	path := gjson.GetBytes(bytes, solver)
	if !path.Exists() || path.String() == "" {
		return "", fmt.Errorf("solver \"%v\" is not present in config", solver)
	}
	return path.String(), nil
}

// runOPBSolver feeds the instance to an external binary through a temporary file and reads its
// answer from the standard output.
func runOPBSolver(ctx context.Context, name string, args []string, pb PB) (outcome, []bool, error) {
	executable, err := getExecutablePath(name)
	if err != nil {
		return outcomeUnknown, nil, err
	}

	// Create a temporary file to hold the OPB content
	tmpFile, err := os.CreateTemp("", "instance-*.opb")
	if err != nil {
		return outcomeUnknown, nil, fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Ensure the file is removed after execution

	if _, err := tmpFile.WriteString(pb.ToOPB()); err != nil {
		return outcomeUnknown, nil, fmt.Errorf("failed to write OPB to temporary file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		return outcomeUnknown, nil, fmt.Errorf("failed to close temporary file: %v", err)
	}

	cmd := exec.CommandContext(ctx, executable, append(slices.Clone(args), tmpFile.Name())...)
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Exit-codes 10, 20 and 30 stand for satisfiable, unsatisfiable and optimum found
	err = cmd.Run()
	if ctx.Err() != nil {
		return outcomeUnknown, nil, ctx.Err()
	}
	var exitErr *exec.ExitError
	if err != nil && (!errors.As(err, &exitErr) || !slices.Contains([]int{10, 20, 30}, exitErr.ExitCode())) {
		return outcomeUnknown, nil, fmt.Errorf("an error occurred during %v execution: %v : %v", name, err.Error(), stderr.String())
	}

	return parseSolution(stdOut.String(), pb.Variables)
}

// parseSolution reads the "s" and "v" lines of the competition output format.
func parseSolution(solverOutput string, variables int) (outcome, []bool, error) {
	lines := strings.Split(solverOutput, "\n")

	statusLine, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "s ") })
	if !ok {
		return outcomeUnknown, nil, fmt.Errorf("no status line in solver output")
	}
	var result outcome
	switch strings.TrimSpace(statusLine[2:]) {
	case "OPTIMUM FOUND":
		result = outcomeOptimum
	case "SATISFIABLE":
		result = outcomeSatisfiable
	case "UNSATISFIABLE":
		return outcomeUnsatisfiable, nil, nil
	default:
		return outcomeUnknown, nil, nil
	}

	assignment := make([]bool, variables)
	values := lo.FlatMap(
		lo.Filter(lines, func(line string, _ int) bool { return strings.HasPrefix(line, "v ") }),
		func(line string, _ int) []string { return strings.Fields(line[2:]) },
	)
	for _, value := range values {
		positive := !strings.HasPrefix(value, "-") && !strings.HasPrefix(value, "~")
		variable, err := strconv.Atoi(strings.TrimLeft(value, "-~x"))
		if err != nil {
			return outcomeUnknown, nil, fmt.Errorf("invalid literal in solver output: %q", value)
		}
		if variable >= 1 && variable <= variables {
			assignment[variable-1] = positive
		}
	}
	return result, assignment, nil
}
