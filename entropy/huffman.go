// Package entropy provides the lossless coders used to compress polynomial
// coefficients in keys, signatures and ciphertexts: a static Huffman coder, a
// 64-bit binary arithmetic coder, and the dispatcher that routes coefficient
// streams through them over a shared bit packer.
package entropy

import (
	"fmt"
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// HuffmanCode is one encoder table entry, the codeword and its bit length.
type HuffmanCode struct {
	Code uint32
	Bits uint16
}

// HuffmanCode64 is the 64-bit codeword variant used when a distribution is
// too skewed for 32-bit codes.
type HuffmanCode64 struct {
	Code uint64
	Bits uint16
}

// HuffmanNode is one decoder tree entry. A leaf is marked by Left == -1, in
// which case Right holds the decoded symbol.
type HuffmanNode struct {
	Left  int16
	Right int16
}

// HuffmanTable combines the encoder LUT and the flat decoder tree for one
// symbol alphabet.
type HuffmanTable struct {
	Codes   []HuffmanCode
	Codes64 []HuffmanCode64
	Nodes   []HuffmanNode
	Depth   uint32
	MaxBits uint32
}

// treeNode is the temporary pointer-linked node used while building a tree;
// the finished tree is flattened into the HuffmanNode LUT.
type treeNode struct {
	value int16
	freq  uint64
	left  *treeNode
	right *treeNode
}

// priorityQueue is a min-heap of tree nodes ordered by frequency, 1-indexed
// as in the classic array heap.
type priorityQueue struct {
	q    []*treeNode
	qend int
}

func newPriorityQueue(capacity int) *priorityQueue {
	return &priorityQueue{q: make([]*treeNode, capacity+1), qend: 1}
}

func (pq *priorityQueue) insert(node *treeNode) {
	i := pq.qend
	pq.qend++
	for j := i / 2; j > 0; j = i / 2 {
		if pq.q[j].freq <= node.freq {
			break
		}
		pq.q[i] = pq.q[j]
		i = j
	}
	pq.q[i] = node
}

func (pq *priorityQueue) remove() *treeNode {
	if pq.qend < 2 {
		return nil
	}
	node := pq.q[1]
	pq.qend--
	i := 1
	for l := i * 2; l < pq.qend; l = i * 2 {
		if l+1 < pq.qend && pq.q[l+1].freq < pq.q[l].freq {
			l++
		}
		pq.q[i] = pq.q[l]
		i = l
	}
	pq.q[i] = pq.q[pq.qend]
	return node
}

func (pq *priorityQueue) size() int { return pq.qend - 1 }

// huffmanCodes walks the tree assigning 32-bit codewords; it fails when any
// code exceeds 32 bits.
func huffmanCodes(node *treeNode, codes []HuffmanCode, curCode uint32, length int) error {
	if length > 32 {
		return fmt.Errorf("huffman code length %d exceeds 32 bits", length)
	}

	if node.value >= 0 {
		codes[node.value].Code = curCode
		codes[node.value].Bits = uint16(length)
		return nil
	}

	length++
	if err := huffmanCodes(node.left, codes, curCode<<1, length); err != nil {
		return err
	}
	return huffmanCodes(node.right, codes, (curCode<<1)|1, length)
}

// huffmanCodes64 is the 64-bit fallback; it fails when any code exceeds 64
// bits, at which point table construction is abandoned.
func huffmanCodes64(node *treeNode, codes []HuffmanCode64, curCode uint64, length int) error {
	if length > 64 {
		return fmt.Errorf("huffman code length %d exceeds 64 bits", length)
	}

	if node.value >= 0 {
		codes[node.value].Code = curCode
		codes[node.value].Bits = uint16(length)
		return nil
	}

	length++
	if err := huffmanCodes64(node.left, codes, curCode<<1, length); err != nil {
		return err
	}
	return huffmanCodes64(node.right, codes, (curCode<<1)|1, length)
}

// huffmanTree flattens the pointer tree into the node LUT, returning the next
// free index.
func huffmanTree(node *treeNode, nodes []HuffmanNode, index int) int {
	idx := index
	if node.value >= 0 {
		nodes[idx].Left = -1
		nodes[idx].Right = node.value
		return idx + 1
	}

	index++
	nodes[idx].Left = int16(index)
	index = huffmanTree(node.left, nodes, index)
	nodes[idx].Right = int16(index)
	return huffmanTree(node.right, nodes, index)
}

func buildTree(p []uint64, n int) *treeNode {
	pq := newPriorityQueue(2*n - 1)

	for i := 0; i < n; i++ {
		if p[i] > 0 {
			pq.insert(&treeNode{value: int16(i), freq: p[i]})
		}
	}

	for pq.size() > 1 {
		a := pq.remove()
		b := pq.remove()
		pq.insert(&treeNode{value: -1, freq: a.freq + b.freq, left: a, right: b})
	}

	return pq.q[1]
}

func scale64(x float64) uint64 {
	if x <= 0 {
		return 0
	}
	f := x * 0x1p64
	if f >= 0x1p64 {
		return math.MaxUint64
	}
	return uint64(f)
}

// CreateHuffmanGaussian builds code and node LUTs for entropy coding symbols
// in [0, 2^bits) weighted by a half-Gaussian of the given standard deviation.
// If the tree produces a code longer than 32 bits the builder retries with
// 64-bit codes; beyond 64 bits it fails.
func CreateHuffmanGaussian(bitw int32, sigma float64) (*HuffmanTable, error) {
	n := 1 << uint(bitw)

	// Probability of each symbol under the target Gaussian, scaled to the
	// full range of a 64-bit word
	p := make([]uint64, n)
	d := 0.398942280401433 / sigma
	e := -1 / (2 * sigma * sigma)
	for i := 0; i < n; i++ {
		p[i] = scale64(d * math.Exp(e*float64(i*i)))
	}

	table := &HuffmanTable{
		Nodes: make([]HuffmanNode, 2*n-1),
		Codes: make([]HuffmanCode, n),
		Depth: uint32(n),
	}

	root := buildTree(p, n)

	if err := huffmanCodes(root, table.Codes, 0, 0); err != nil {
		table.Codes = nil
		table.Codes64 = make([]HuffmanCode64, n)
		if err := huffmanCodes64(root, table.Codes64, 0, 0); err != nil {
			return nil, err
		}
	}

	huffmanTree(root, table.Nodes, 0)

	maxBits := uint32(0)
	for _, c := range table.Codes {
		if uint32(c.Bits) > maxBits {
			maxBits = uint32(c.Bits)
		}
	}
	for _, c := range table.Codes64 {
		if uint32(c.Bits) > maxBits {
			maxBits = uint32(c.Bits)
		}
	}
	table.MaxBits = maxBits

	return table, nil
}

// CreateHuffmanGaussianSampler builds the sampling variant: only the node
// tree is produced, with leaf probabilities formed from the binary expansion
// of the Gaussian terms so that a walk from the root driven by uniform random
// bits yields the target distribution.
func CreateHuffmanGaussianSampler(bitw int32, sigma float64) *HuffmanTable {
	n := 1 << uint(bitw)

	p := make([]uint64, n)
	d := 0.7978845608028653 / sigma
	e := -0.5 / (sigma * sigma)
	for i := 0; i < n; i++ {
		p[i] = scmath.BinaryFraction64(d * math.Exp(e*float64(i*i)))
	}

	table := &HuffmanTable{
		Nodes: make([]HuffmanNode, 2*n-1),
		Depth: uint32(n),
	}

	root := buildTree(p, n)
	huffmanTree(root, table.Nodes, 0)

	return table
}

// EncodeHuffman writes the codeword for value to the packer.
func EncodeHuffman(pk *packer.Packer, table *HuffmanTable, value uint32) error {
	if pk == nil || table == nil {
		return fmt.Errorf("huffman encode with nil packer or table")
	}
	if value >= table.Depth {
		return fmt.Errorf("huffman symbol %d out of bounds for depth %d", value, table.Depth)
	}

	if table.Codes != nil {
		return pk.Write(table.Codes[value].Code, uint(table.Codes[value].Bits))
	}

	// 64-bit codes are emitted as two chunks as the packer accepts at most
	// 32 bits per write
	c := table.Codes64[value]
	if c.Bits > 32 {
		if err := pk.Write(uint32(c.Code>>32), uint(c.Bits)-32); err != nil {
			return err
		}
		return pk.Write(uint32(c.Code), 32)
	}
	return pk.Write(uint32(c.Code), uint(c.Bits))
}

// DecodeHuffman walks the decode tree one bit at a time until a leaf is
// reached and returns the decoded symbol.
func DecodeHuffman(pk *packer.Packer, table *HuffmanTable) (uint32, error) {
	node := &table.Nodes[0]
	for node.Left != -1 {
		bit, err := pk.Read(1)
		if err != nil {
			return 0, err
		}
		if bit != 0 {
			node = &table.Nodes[node.Right]
		} else {
			node = &table.Nodes[node.Left]
		}
	}
	return uint32(node.Right), nil
}

// SampleHuffman walks the tree using the bits of one PRNG word LSB-first; the
// bit left pending when a leaf is reached carries the sign.
func SampleHuffman(prng *csprng.Ctx, table *HuffmanTable) int32 {
	bits := prng.Uint32()

	node := &table.Nodes[0]
	for node.Left != -1 {
		bit := bits & 1
		bits >>= 1
		if bit != 0 {
			node = &table.Nodes[node.Right]
		} else {
			node = &table.Nodes[node.Left]
		}
	}

	if bits&1 != 0 {
		return -int32(node.Right)
	}
	return int32(node.Right)
}
