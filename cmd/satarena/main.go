// Command satarena is the CLI front-end for the solver core (spec.md §6
// "CLI contract"). It is an external collaborator of the solver package,
// not part of the CDCL engine itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/elantha/satarena/internal/dimacs"
	"github.com/elantha/satarena/internal/sat"
)

// inputFiles collects repeated --input flags.
type inputFiles []string

func (f *inputFiles) String() string { return strings.Join(*f, ",") }

func (f *inputFiles) Set(v string) error {
	*f = append(*f, v)
	return nil
}

var flagInputs inputFiles

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

func init() {
	flag.Var(&flagInputs, "input", "DIMACS CNF file to solve (repeatable)")
}

// solveFile loads and solves one DIMACS instance, returning true for SAT.
func solveFile(filename string) (bool, error) {
	s := sat.NewDefaultSolver()

	loaded, err := dimacs.Load(filename, false, s)
	if err != nil {
		return false, err
	}
	if !loaded {
		return false, nil
	}

	status := s.Solve()
	fmt.Printf("c %s: conflicts %d restarts %d propagations %d avg learnt size %.2f\n",
		filename, s.Stats.TotalConflicts, s.Stats.TotalRestarts, s.Stats.TotalPropagations,
		s.Stats.LearntSize.Val())
	return status, nil
}

func run() bool {
	allOK := true
	for _, filename := range flagInputs {
		t := time.Now()
		isSAT, err := solveFile(filename)
		if err != nil {
			log.Printf("%s: %v", filename, err)
			allOK = false
			continue
		}
		elapsed := time.Since(t)

		status := "UNSAT"
		if isSAT {
			status = "SAT"
		}
		fmt.Printf("%s %s\n", filename, status)
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	}
	return allOK
}

func main() {
	flag.Parse()
	if len(flagInputs) == 0 {
		log.Fatal("missing --input file (repeatable)")
	}

	if *flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ok := run()

	if *flagMemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	if !ok {
		os.Exit(1)
	}
}
