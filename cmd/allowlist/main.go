// Command allowlist builds the stage2/stage3 Merkle allowlist artifacts from a
// newline-separated address file: the root to install on the ledger and the
// per-address inclusion proofs handed out to minters.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/genesis-ledger/internal/merkle"
)

var (
	inputFile  = flag.String("input", "", "Path to newline-separated address file")
	outputFile = flag.String("output", "", "Path to write the proofs JSON (default stdout)")
)

type allowlistArtifact struct {
	Root   string              `json:"root"`
	Proofs map[string][]string `json:"proofs"`
}

func main() {
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: allowlist -input addresses.txt [-output proofs.json]")
		os.Exit(2)
	}

	addrs, err := readAddresses(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read addresses: %v\n", err)
		os.Exit(1)
	}

	tree, err := merkle.NewTree(addrs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build allowlist tree: %v\n", err)
		os.Exit(1)
	}

	artifact := allowlistArtifact{
		Root:   tree.Root().Hex(),
		Proofs: make(map[string][]string, len(addrs)),
	}
	for _, addr := range addrs {
		proof, err := tree.Proof(addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build proof for %s: %v\n", addr.Hex(), err)
			os.Exit(1)
		}
		hexProof := make([]string, len(proof))
		for i, h := range proof {
			hexProof[i] = h.Hex()
		}
		artifact.Proofs[addr.Hex()] = hexProof
	}

	encoded, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode artifact: %v\n", err)
		os.Exit(1)
	}
	encoded = append(encoded, '\n')

	if *outputFile == "" {
		os.Stdout.Write(encoded)
		return
	}
	if err := os.WriteFile(*outputFile, encoded, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote root and %d proofs to %s\n", len(artifact.Proofs), *outputFile)
}

// readAddresses parses one hex address per line, skipping blanks and
// #-comments. Duplicates are rejected by the tree builder.
func readAddresses(path string) ([]common.Address, error) {
	f, err := os.Open(path) //nolint:gosec,G304 // operator-supplied file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var addrs []common.Address
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !common.IsHexAddress(text) {
			return nil, fmt.Errorf("line %d: invalid address %q", line, text)
		}
		addrs = append(addrs, common.HexToAddress(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no addresses found in %s", path)
	}
	return addrs, nil
}
