package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadOBJMesh reads a Wavefront .obj file as one indexed position + uv mesh.
func LoadOBJMesh(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads OBJ text. Only v, vt, f and o statements are used;
// normals, groups and materials are skipped. Polygons are split into a
// triangle fan around their first corner, and each distinct
// position/uv pair becomes one vertex.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	b := objBuilder{name: "obj", seen: make(map[objCorner]uint32)}

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := b.statement(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(b.indices) == 0 {
		return nil, errors.New("no faces")
	}

	m := &Mesh{Name: b.name, Vertices: b.vertices, Indices: b.indices, Layout: PositionUV}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// objCorner is a face corner: 0-based position and uv indices, -1 if absent.
type objCorner struct{ pos, uv int }

type objBuilder struct {
	name      string
	positions [][3]float32
	uvs       [][2]float32

	seen     map[objCorner]uint32
	vertices []float32
	indices  []uint32
}

func (b *objBuilder) statement(fields []string) error {
	switch fields[0] {
	case "v":
		p, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		b.positions = append(b.positions, [3]float32{p[0], p[1], p[2]})
	case "vt":
		t, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		b.uvs = append(b.uvs, [2]float32{t[0], t[1]})
	case "o":
		if len(fields) > 1 && len(b.indices) == 0 {
			b.name = fields[1]
		}
	case "f":
		if len(fields) < 4 {
			return fmt.Errorf("face with %d corners", len(fields)-1)
		}
		corners := make([]uint32, len(fields)-1)
		for i, tok := range fields[1:] {
			c, err := b.corner(tok)
			if err != nil {
				return err
			}
			corners[i] = b.vertex(c)
		}
		for i := 1; i+1 < len(corners); i++ {
			b.indices = append(b.indices, corners[0], corners[i], corners[i+1])
		}
	}
	return nil
}

// parseFloats reads the first n values of fields; extra values (w, or a
// third texture coordinate) are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// corner resolves a "p", "p/t", "p//n" or "p/t/n" token against the pools
// read so far. OBJ indices are 1-based; negative ones count back from the
// most recent entry.
func (b *objBuilder) corner(tok string) (objCorner, error) {
	posTok, rest, _ := strings.Cut(tok, "/")
	uvTok, _, _ := strings.Cut(rest, "/")

	pos, err := resolveIndex(posTok, len(b.positions))
	if err != nil || pos < 0 {
		return objCorner{}, fmt.Errorf("face corner %q: bad position index", tok)
	}
	uv := -1
	if uvTok != "" {
		if uv, err = resolveIndex(uvTok, len(b.uvs)); err != nil || uv < 0 {
			return objCorner{}, fmt.Errorf("face corner %q: bad texcoord index", tok)
		}
	}
	return objCorner{pos: pos, uv: uv}, nil
}

func resolveIndex(s string, pool int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = pool + n
	default:
		return -1, errors.New("zero index")
	}
	if idx < 0 || idx >= pool {
		return -1, fmt.Errorf("index %d out of range", n)
	}
	return idx, nil
}

// vertex returns the index of c's vertex, appending it on first use.
func (b *objBuilder) vertex(c objCorner) uint32 {
	if idx, ok := b.seen[c]; ok {
		return idx
	}
	p := b.positions[c.pos]
	var uv [2]float32
	if c.uv >= 0 {
		uv = b.uvs[c.uv]
	}
	idx := uint32(len(b.vertices) / 5)
	b.vertices = append(b.vertices, p[0], p[1], p[2], uv[0], uv[1])
	b.seen[c] = idx
	return idx
}
