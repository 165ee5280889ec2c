package merkle

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LeafHash computes the allowlist leaf for an address: Keccak-256 of the raw
// 20-byte address.
func LeafHash(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// hashPair combines two nodes with the smaller value first, making proof
// verification independent of the leaf position in the tree.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) <= 0 {
		return crypto.Keccak256Hash(a.Bytes(), b.Bytes())
	}
	return crypto.Keccak256Hash(b.Bytes(), a.Bytes())
}

// Verify checks an allowlist membership proof for an address against a
// committed root. Pure function, no side effects.
func Verify(addr common.Address, proof []common.Hash, root common.Hash) bool {
	computed := LeafHash(addr)
	for _, node := range proof {
		computed = hashPair(computed, node)
	}
	return computed == root
}

// Tree is a sorted-pair Merkle tree over address leaves. It is used by the
// allowlist CLI to produce the committed root and per-address proofs, and by
// tests to exercise Verify.
type Tree struct {
	layers [][]common.Hash
	index  map[common.Hash]int
}

// NewTree builds a tree from the given addresses. An odd node on any layer is
// promoted to the next layer unchanged.
func NewTree(addrs []common.Address) (*Tree, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("merkle tree requires at least one address")
	}

	leaves := make([]common.Hash, len(addrs))
	index := make(map[common.Hash]int, len(addrs))
	for i, addr := range addrs {
		leaf := LeafHash(addr)
		if _, ok := index[leaf]; ok {
			return nil, fmt.Errorf("duplicate address %s", addr.Hex())
		}
		leaves[i] = leaf
		index[leaf] = i
	}

	layers := [][]common.Hash{leaves}
	for current := leaves; len(current) > 1; {
		next := make([]common.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, hashPair(current[i], current[i+1]))
			} else {
				next = append(next, current[i])
			}
		}
		layers = append(layers, next)
		current = next
	}

	return &Tree{layers: layers, index: index}, nil
}

// Root returns the committed root of the tree
func (t *Tree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// Proof returns the membership proof for an address, or an error if the
// address is not a leaf of the tree.
func (t *Tree) Proof(addr common.Address) ([]common.Hash, error) {
	i, ok := t.index[LeafHash(addr)]
	if !ok {
		return nil, fmt.Errorf("address %s not in tree", addr.Hex())
	}

	var proof []common.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := i ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		i /= 2
	}
	return proof, nil
}
