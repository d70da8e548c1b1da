package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/vellum"
)

func main() {
	count := flag.Int("count", 1000, "Number of documents to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "vellum_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d documents in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Direct file writes are faster for setup and simulate a corpus that
	// already exists on disk.
	for i := 0; i < *count; i++ {
		content := fmt.Sprintf("title: Document %d\ndate: %s\ntags: benchmark, test\n\nBenchmark document %d.\n",
			i, time.Now().Format("2006-01-02"), i)
		filename := filepath.Join(benchDir, fmt.Sprintf("doc_%d.txt", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	b := vellum.NewBuilder()
	b.Text("title").Required()
	b.DateTime("date")
	b.Tags("tags")
	schema := b.Schema()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Gitless to measure pure parsing/io speed, not git overhead.
	st, err := vellum.NewStore(benchDir, schema,
		vellum.WithLogger(logger),
		vellum.WithVersioning(false),
	)
	if err != nil {
		panic(err)
	}

	// Run 1: List only (glob + sort)
	fmt.Println("Running List...")
	startList := time.Now()
	ids, err := st.List()
	if err != nil {
		panic(err)
	}
	durList := time.Since(startList)
	fmt.Printf("List Result: %v (Items: %d)\n", durList, len(ids))

	// Run 2: Load everything (header parsing, body stays on disk)
	fmt.Println("Running Load (headers only)...")
	startLoad := time.Now()
	for _, id := range ids {
		if _, err := st.Load(id); err != nil {
			panic(err)
		}
	}
	durLoad := time.Since(startLoad)
	fmt.Printf("Load Result: %v\n", durLoad)

	// Run 3: Load + Validate + Read (full document)
	fmt.Println("Running Load + Validate + Read...")
	startFull := time.Now()
	for _, id := range ids {
		doc, err := st.Load(id)
		if err != nil {
			panic(err)
		}
		if err := doc.Validate(); err != nil {
			panic(err)
		}
		if _, err := doc.Read(); err != nil {
			panic(err)
		}
	}
	durFull := time.Since(startFull)
	fmt.Printf("Full Result: %v\n", durFull)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d documents):\n", *count)
	fmt.Printf("  List:    %v\n", durList)
	fmt.Printf("  Headers: %v\n", durLoad)
	fmt.Printf("  Full:    %v\n", durFull)
	fmt.Printf("--------------------------------------------------\n")
}
