// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"fmt"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

// maxCodeLen is the longest code word of any Layer III table.
const maxCodeLen = 19

// huffTree is a binary decoding tree stored as pairs of child links. A
// non-negative link is the index of the next pair, a negative link -(s+1)
// a leaf for symbol s.
type huffTree []int16

func buildTree(c *huffCodes) huffTree {
	t := huffTree{0, 0}
	for sym, code := range c.codes {
		n := int(c.lens[sym])
		node := 0
		for i := n - 1; i >= 0; i-- {
			bit := int(code>>uint(i)) & 1
			if i == 0 {
				t[node+bit] = int16(-(sym + 1))
				break
			}
			if t[node+bit] == 0 {
				t[node+bit] = int16(len(t))
				t = append(t, 0, 0)
			}
			node = int(t[node+bit])
		}
	}

	return t
}

// decode reads one code word.
func (t huffTree) decode(r *bitstream.Reader) (int, error) {
	node := 0
	for range maxCodeLen {
		v := t[node+int(r.Bit())]
		if err := r.Err(); err != nil {
			return 0, err
		}
		if v < 0 {
			return int(-v - 1), nil
		}
		if v == 0 {
			break
		}
		node = int(v)
	}

	return 0, fmt.Errorf("%w: undecodable huffman code", ErrCorruptGranule)
}

// bigValueTable is one of the 32 table_select choices.
type bigValueTable struct {
	tree    huffTree
	size    int
	linbits int
}

var (
	bigValueTables [32]*bigValueTable
	count1TreeA    huffTree
	count1TreeB    huffTree
)

func init() {
	trees := map[int]huffTree{}
	for i, c := range bigValueCodes {
		if c != nil {
			trees[i] = buildTree(c)
		}
	}

	for i := 1; i < 16; i++ {
		if t, ok := trees[i]; ok {
			bigValueTables[i] = &bigValueTable{tree: t, size: bigValueCodes[i].size}
		}
	}

	linbits16 := [8]int{1, 2, 3, 4, 6, 8, 10, 13}
	linbits24 := [8]int{4, 5, 6, 7, 8, 9, 11, 13}
	for i := range 8 {
		bigValueTables[16+i] = &bigValueTable{tree: trees[16], size: 16, linbits: linbits16[i]}
		bigValueTables[24+i] = &bigValueTable{tree: trees[24], size: 16, linbits: linbits24[i]}
	}

	count1TreeA = buildTree(&count1CodesA)
	count1TreeB = buildTree(&count1CodesB)
}

// decodePair reads one big_values pair with its escapes and signs.
// Table 0 codes every pair as zero without reading bits.
func decodePair(r *bitstream.Reader, sel int) (x, y int, err error) {
	if sel == 0 {
		return 0, 0, nil
	}
	t := bigValueTables[sel]
	if t == nil {
		return 0, 0, fmt.Errorf("%w: table %d is not used", ErrCorruptGranule, sel)
	}

	sym, err := t.tree.decode(r)
	if err != nil {
		return 0, 0, err
	}
	x, y = sym/t.size, sym%t.size

	x = readEscape(r, x, t.linbits)
	y = readEscape(r, y, t.linbits)

	return x, y, r.Err()
}

func readEscape(r *bitstream.Reader, v, linbits int) int {
	if linbits > 0 && v == 15 {
		v += int(r.Bits(linbits))
	}
	if v != 0 && r.Bit() == 1 {
		v = -v
	}

	return v
}

// decodeQuad reads one count1 quadruple with its signs.
func decodeQuad(r *bitstream.Reader, tableB bool) (q [4]int, err error) {
	t := count1TreeA
	if tableB {
		t = count1TreeB
	}
	sym, err := t.decode(r)
	if err != nil {
		return q, err
	}

	for i := range q {
		if sym>>uint(3-i)&1 == 0 {
			continue
		}
		q[i] = 1
		if r.Bit() == 1 {
			q[i] = -1
		}
	}

	return q, r.Err()
}
