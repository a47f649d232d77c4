package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

// snapshot layout (bzip2 compressed text):
//
//	<numVertices> <numEdges> <precision>
//	<lon> <lat>            one line per vertex, in vertex id order
//	<u> <v> <weight>       one line per undirected edge, in insertion order

// header counts are only a size hint, a header larger than the payload fails on the missing lines.
const maxSnapshotPrealloc = 1 << 20

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return g.WriteGraphTo(f)
}

func (g *Graph) WriteGraphTo(out io.Writer) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d %d\n",
		len(g.vertices), len(g.edges), g.canonicalizer.GetPrecision())

	for _, v := range g.vertices {
		coord := v.Coordinate()
		lonF := strconv.FormatFloat(coord.Lon, 'f', -1, 64)
		latF := strconv.FormatFloat(coord.Lat, 'f', -1, 64)

		fmt.Fprintf(w, "%s %s\n", lonF, latF)
	}

	for _, e := range g.edges {
		weightF := strconv.FormatFloat(e.weight, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %s\n", e.u, e.v, weightF)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func fields(s string) []string {

	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u >= math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return ReadGraphFrom(f)
}

// ReadGraphFrom. read a snapshot written by WriteGraphTo, the returned graph is sealed.
func ReadGraphFrom(in io.Reader) (*Graph, error) {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("invalid graph header: %q", line)
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}

	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	precision, err := strconv.Atoi(tokens[2])
	if err != nil {
		return nil, err
	}

	g := NewGraphWithSize(NewCanonicalizer(precision), min(int(numVertices), maxSnapshotPrealloc),
		min(int(numEdges), maxSnapshotPrealloc))

	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		tokens = fields(vertexLine)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("invalid vertex line %d: %q", i, vertexLine)
		}

		lon, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, err
		}
		lat, err := strconv.ParseFloat(tokens[1], 64)
		if err != nil {
			return nil, err
		}

		id, err := g.AddNode(g.Canonicalize(NewCoordinate(lon, lat)))
		if err != nil {
			return nil, err
		}
		if id != Index(i) {
			return nil, fmt.Errorf("duplicate vertex on line %d: %q", i, vertexLine)
		}
	}

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		tokens = fields(edgeLine)
		if len(tokens) != 3 {
			return nil, fmt.Errorf("invalid edge line %d: %q", i, edgeLine)
		}

		u, err := ParseIndex(tokens[0])
		if err != nil {
			return nil, err
		}
		v, err := ParseIndex(tokens[1])
		if err != nil {
			return nil, err
		}
		if u >= numVertices || v >= numVertices {
			return nil, fmt.Errorf("edge %d references unknown vertex: %q", i, edgeLine)
		}
		weight, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return nil, err
		}

		if err := g.AddEdge(g.GetNode(u), g.GetNode(v), weight); err != nil {
			return nil, err
		}
	}

	g.Seal()
	return g, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
