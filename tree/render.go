package tree

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Render writes one line per node, "id: n1 n2 n3", leaves first.
func (t *Tree) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var (
		buf        []byte
		base, size int
	)
	for n := 0; n < t.Nodes(); n++ {
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, ':')
		base, size = t.slots(n)
		for _, v := range t.adj[base : base+size] {
			buf = append(buf, ' ')
			if v == empty {
				buf = append(buf, '-')
				continue
			}
			buf = strconv.AppendUint(buf, uint64(v), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String returns the Render listing.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = t.Render(&sb) // strings.Builder never fails

	return sb.String()
}
