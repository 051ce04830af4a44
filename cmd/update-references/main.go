package main

import (
	"fmt"
	"os"

	"cellgrid/pkg/visualtest"
)

// Simple tool to generate reference images for visual regression tests
func main() {
	dir := "pkg/visualtest/testdata"
	switch len(os.Args) {
	case 1:
	case 2:
		dir = os.Args[1]
	default:
		fmt.Println("Reference Image Generator for cellgrid")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/update-references [dir]")
		fmt.Println()
		fmt.Println("Or use the test-based approach:")
		fmt.Println("  UPDATE_REFS=1 go test -v ./pkg/visualtest -run TestReferenceImages")
		os.Exit(1)
	}

	refs, err := visualtest.References(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, ref := range refs {
		if err := visualtest.UpdateReferenceImage(ref.Config, ref.Image, ref.Width, ref.Height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to generate %s: %v\n", ref.Image, err)
			os.Exit(1)
		}
	}
	fmt.Printf("%d reference images generated in %s\n", len(refs), dir)
}
