package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/limaJavier/floorplan/pkg/model"
	"github.com/samber/lo"
)

const (
	executablePath            = "../../bin/floorplan"
	buildingDirectory         = "../../pkg/model/testdata/"
	MB                float32 = 1024 * 1024
)

type SolverType int

const (
	gophersat SolverType = iota
	roundingsat
	minisatp
	ortoolsat
)

type ResultType int

const (
	solved ResultType = iota
	infeasible
	timeout
)

var (
	solverTypes = map[SolverType]string{
		gophersat:   "gophersat",
		roundingsat: "roundingsat",
		minisatp:    "minisatp",
		ortoolsat:   "ortoolsat",
	}
	resultTypes = map[ResultType]string{
		solved:     "solved",
		infeasible: "infeasible",
		timeout:    "timeout",
	}
)

type TestMetadata struct {
	Name       string
	Rows       int
	Cols       int
	Apartments int
	Rooms      int
	Hallways   int
}

type BenchmarkResult struct {
	Solver        SolverType
	Solutions     int
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	tests := getTests()
	solvers := getSolvers()
	solutionCounts := []int{1, 10}
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers)*len(solutionCounts))

	for _, test := range tests {
		for _, solutions := range solutionCounts {
			for _, solver := range solvers {
				fmt.Printf("Benchmarking building \"%v\" with solver \"%v\" and %d solutions\n", test.Name, solverTypes[solver], solutions)

				duration, maxMemory, cpuPercentage, result := measure(solver, solutions, test.Name)

				results = append(results, BenchmarkResult{
					Solver:        solver,
					Solutions:     solutions,
					Test:          test,
					Duration:      duration,
					Memory:        maxMemory,
					CpuPercentage: cpuPercentage,
					Result:        result,
				})
			}
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	files, err := os.ReadDir(buildingDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(files))
	for _, file := range files {
		filename := buildingDirectory + file.Name()
		building, err := model.InputFromFile(filename)
		if err != nil {
			log.Fatalf("cannot parse building file: %v", err)
		}
		apartments, shared, err := building.Specs()
		if err != nil {
			log.Fatalf("cannot resolve building rooms: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:       filename,
			Rows:       building.Width,
			Cols:       building.Length,
			Apartments: len(apartments),
			Rooms:      len(lo.Flatten(apartments)),
			Hallways:   len(shared) - 2,
		})
	}

	return tests
}

func getSolvers() []SolverType {
	return []SolverType{gophersat, roundingsat, minisatp, ortoolsat}
}

func measure(solver SolverType, solutions int, testFile string) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-solver", solverTypes[solver], "-solutions", fmt.Sprint(solutions), "-file", testFile, "-log-level", "error")

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = solved
	case 20:
		result = infeasible
	case 30:
		result = timeout
	default:
		log.Fatalf("an error occurred during the execution of \"floorplan\" at building \"%v\" using solver \"%v\": %v\n", testFile, solverTypes[solver], stdErr.String())
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Solver", "Solutions", "Building", "Rows", "Cols", "Apartments", "Rooms", "Hallways", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			solverTypes[result.Solver],
			fmt.Sprintf("%d", result.Solutions),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Rows),
			fmt.Sprintf("%d", result.Test.Cols),
			fmt.Sprintf("%d", result.Test.Apartments),
			fmt.Sprintf("%d", result.Test.Rooms),
			fmt.Sprintf("%d", result.Test.Hallways),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// parseMemoryLine converts the kilobytes reported by time(1) into megabytes.
func parseMemoryLine(line string) float32 {
	memoryStr := strings.TrimSpace(strings.Split(line, ":")[1])
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) * 1024 / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.TrimSpace(strings.Split(line, ":")[1])
	percentageStr = strings.TrimSuffix(percentageStr, "%")
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
