package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/limaJavier/floorplan/internal/export"
	"github.com/limaJavier/floorplan/internal/logging"
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/limaJavier/floorplan/pkg/model"
	"github.com/limaJavier/floorplan/pkg/sat"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	validFormats = []string{"text", "json"}
	validSolvers = []string{"gophersat", "roundingsat", "minisatp", "ortoolsat"}
	solvers      = map[string]func() sat.Solver{
		"gophersat":   sat.NewGophersatSolver,
		"roundingsat": sat.NewRoundingsatSolver,
		"minisatp":    sat.NewMinisatpSolver,
		"ortoolsat":   sat.NewOrtoolsatSolver,
	}
)

func main() {
	// Define arguments
	solverPtr := flag.String("solver", "gophersat", "Pseudo-boolean solver to use. Allowed values are: \"gophersat\" (in-process), \"roundingsat\", \"minisatp\", \"ortoolsat\", where \"gophersat\" is the default")
	filePathPtr := flag.String("file", "", "Path to the building file (.json, .yaml or .yml)")
	solutionsPtr := flag.Int("solutions", 10, "Maximum number of layouts to report, where 10 is the default")
	formatPtr := flag.String("format", "text", "Output format. Allowed values are: \"text\" and \"json\", where \"text\" is the default")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	xlsxFilePathPtr := flag.String("xlsx", "", "Path to an Excel workbook receiving one sheet per layout")
	timeoutPtr := flag.Duration("timeout", 0, "Abort the search after this long (e.g. 30s); 0 disables the limit")
	logLevelPtr := flag.String("log-level", "info", "Log level: \"debug\", \"info\", \"warn\" or \"error\"")
	logFormatPtr := flag.String("log-format", "console", "Log format: \"console\" or \"json\"")
	interactivePtr := flag.Bool("interactive", false, "Prompt for the number of apartments and the building dimensions, overriding the file")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	format := strings.ToLower(*formatPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *solutionsPtr < 1 {
		log.Fatalf("solutions must be positive: %v", *solutionsPtr)
	}

	if solverStr != "gophersat" {
		setConfigPath()
	}

	runId := uuid.NewString()
	logger, err := logging.NewLogger(*logLevelPtr, *logFormatPtr)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	logger = logger.With(zap.String("runId", runId))

	// Extract input
	building, err := model.InputFromFile(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if *interactivePtr {
		building, err = promptBuilding(os.Stdin, os.Stdout, building)
		if err != nil {
			log.Fatalf("cannot read building dimensions: %v", err)
		}
	}

	// Initialize engines
	planner := model.NewPlanner(solvers[solverStr](), logger)

	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if *timeoutPtr > 0 {
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
	}

	// Build layouts
	result, err := planner.Build(ctx, building, model.Options{MaxSolutions: *solutionsPtr})
	if err != nil {
		log.Fatalf("an error occurred during layout construction: %v", err)
	}

	// Verify layouts correctness
	for i, layout := range result.Layouts {
		if !planner.Verify(layout, building) {
			log.Fatalf("layout %d does not satisfy the building", i+1)
		}
	}

	// Render output
	var output bytes.Buffer
	if format == "json" {
		err = export.WriteJson(&output, runId, result)
	} else {
		err = export.WriteText(&output, result)
	}
	if err != nil {
		log.Fatalf("an error occurred while building output: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Print(output.String())
	} else if err := os.WriteFile(outFile, output.Bytes(), 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	if *xlsxFilePathPtr != "" {
		if err := writeWorkbook(*xlsxFilePathPtr, result); err != nil {
			log.Fatalf("an error occurred while writing the workbook: %v", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Variables: %v\n", result.Variables)
	fmt.Fprintf(os.Stderr, "Constraints: %v\n", result.Constraints)

	// os.Exit skips deferred calls
	cancel()
	_ = logger.Sync()
	os.Exit(exitCode(result.Status))
}

func writeWorkbook(filePath string, result model.Result) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := export.WriteXlsx(file, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func exitCode(status cp.Status) int {
	switch status {
	case cp.Optimal, cp.Feasible:
		return 10
	case cp.Infeasible:
		return 20
	default:
		return 30
	}
}

// promptBuilding asks for the apartment count (one hallway each) and the building dimensions.
func promptBuilding(in io.Reader, out io.Writer, building model.Building) (model.Building, error) {
	scanner := bufio.NewScanner(in)
	ask := func(question string) (int, error) {
		fmt.Fprint(out, question)
		if !scanner.Scan() {
			return 0, fmt.Errorf("no answer to %q", strings.TrimSpace(question))
		}
		return strconv.Atoi(strings.TrimSpace(scanner.Text()))
	}

	apartments, err := ask("Enter number of apartments: ")
	if err != nil {
		return building, err
	}
	width, err := ask("Enter width of building(rows): ")
	if err != nil {
		return building, err
	}
	length, err := ask("Enter height of building(cols): ")
	if err != nil {
		return building, err
	}

	building.Hallways = apartments
	building.Width = width
	building.Length = length
	return building, building.Validate()
}

func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	// Verify config.json exists
	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if !slices.Contains(fileNames, "config.json") {
		log.Fatalf("config.json file was not found: %v", fileNames)
	}

	sat.ConfigPath = execPath + "/config.json"
}
