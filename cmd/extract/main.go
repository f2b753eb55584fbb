// Command extract converts a fixed-format .docx quiz document into the JSON
// dataset served by quizd. The transform is all-or-nothing: any structural
// problem in the document fails the run and no output file is written.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizforge/quizforge/internal/docx"
	"github.com/quizforge/quizforge/internal/quiz"
)

func main() {
	input := flag.String("input", "", "Path to the .docx file to parse")
	output := flag.String("output", "questions.json", "Path to the output JSON dataset")
	answers := flag.String("answers", "", "Optional JSON answer key file (question id -> correct label)")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		fmt.Fprintf(os.Stderr, "Usage: extract -input <docx-file> [-output <json-file>] [-answers <key-file>] [-verbose]\n")
		os.Exit(1)
	}
	if _, err := os.Stat(*input); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file: %v\n", err)
		os.Exit(1)
	}
	if filepath.Ext(*input) != ".docx" {
		fmt.Fprintf(os.Stderr, "Warning: %q does not have .docx extension\n", *input)
	}

	if *verbose {
		fmt.Printf("Parsing document: %s\n", *input)
	}

	data, err := run(*input, *answers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Serialize fully before touching the output path so a failure can never
	// leave a partial file behind.
	var buf bytes.Buffer
	if err := quiz.Encode(&buf, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding dataset: %v\n", err)
		os.Exit(1)
	}
	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully extracted %d questions\n", len(data.Questions))
	fmt.Printf("Output written to: %s\n", *output)
	if *verbose && data.ScoringEnabled() {
		fmt.Println("Answer key applied to all questions; scoring enabled")
	}
}

func run(input, answersPath string) (quiz.QuizData, error) {
	src, err := docx.Open(input)
	if err != nil {
		return quiz.QuizData{}, err
	}
	data, err := quiz.Extract(src)
	if err != nil {
		return quiz.QuizData{}, err
	}
	if answersPath != "" {
		key, err := loadAnswerKey(answersPath)
		if err != nil {
			return quiz.QuizData{}, err
		}
		if err := quiz.ApplyAnswerKey(&data, key); err != nil {
			return quiz.QuizData{}, err
		}
	}
	return data, nil
}

func loadAnswerKey(path string) (map[int]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answer key: %w", err)
	}
	var key map[int]string
	if err := json.Unmarshal(b, &key); err != nil {
		return nil, fmt.Errorf("answer key %q: %w", path, err)
	}
	return key, nil
}
