package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"testforge/internal/model"
	"testforge/internal/parser"
)

// scanCmd prints structural models without generating anything
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Print the structural model of Java sources as JSON",
	Long: `Parses a Java file or tree and prints the extracted class models
(role, fields, methods, dependencies) as JSON. A diagnostic aid for
inspecting what generate would see.

Example:
  testforge scan src/main/java/com/example/UserService.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	target := cfg.Source
	if len(args) > 0 {
		target = args[0]
	}

	ctx, cancel := signalContext()
	defer cancel()

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	files := []string{target}
	if info.IsDir() {
		files, err = javaSources(target)
		if err != nil {
			return err
		}
	}

	scanner := parser.NewScanner(parser.WithLogger(logger))
	classes := make([]*model.Class, 0, len(files))
	for _, path := range files {
		cls, scanErr := scanner.ScanFile(ctx, path)
		if scanErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", scanErr)
			continue
		}
		if cls == nil {
			continue
		}
		classes = append(classes, cls)
	}

	out, err := json.MarshalIndent(classes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// javaSources lists the .java files under root, skipping hidden
// directories and existing tests.
func javaSources(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		base := filepath.Base(path)
		if filepath.Ext(path) != ".java" ||
			strings.HasSuffix(base, "Test.java") || strings.HasSuffix(base, "Tests.java") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}
