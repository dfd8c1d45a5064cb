package raster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// defaultNodata is the conventional Esri ASCII sentinel, used when the
// header omits nodata_value.
const defaultNodata = -9999.0

// ReadASCII reads an Esri ASCII Grid (.asc) file.
//
// Accepted header keys (case-insensitive): ncols, nrows, xllcorner or
// xllcenter, yllcorner or yllcenter, cellsize, nodata_value. The header is
// followed by nrows lines of ncols whitespace-separated values, top row
// first. Trailing lines beginning with '#' are read back as provenance
// metadata entries.
func ReadASCII(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	g, err := decodeASCII(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("parse raster %s: %w", path, err)
	}
	return g, nil
}

func decodeASCII(sc *bufio.Scanner) (*Grid, error) {
	var (
		rows, cols = -1, -1
		xll, yll   float64
		cellSize   = 1.0
		nodata     = defaultNodata
		dataFields []string
	)

	// Header: lines whose first field is a keyword. The first line that
	// starts with a number begins the data block.
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		if key[0] == '-' || (key[0] >= '0' && key[0] <= '9') || key[0] == '.' {
			dataFields = fields
			break
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		switch key {
		case "ncols":
			v, err := strconv.Atoi(fields[1])
			if err != nil || v < 1 {
				return nil, fmt.Errorf("invalid ncols %q", fields[1])
			}
			cols = v
		case "nrows":
			v, err := strconv.Atoi(fields[1])
			if err != nil || v < 1 {
				return nil, fmt.Errorf("invalid nrows %q", fields[1])
			}
			rows = v
		case "xllcorner", "xllcenter":
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", key, fields[1])
			}
			xll = v
		case "yllcorner", "yllcenter":
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", key, fields[1])
			}
			yll = v
		case "cellsize":
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("invalid cellsize %q", fields[1])
			}
			cellSize = v
		case "nodata_value":
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid nodata_value %q", fields[1])
			}
			nodata = v
		default:
			return nil, fmt.Errorf("unknown header key %q", fields[0])
		}
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("header missing ncols/nrows")
	}

	g := NewGrid(rows, cols, nodata)
	g.XLLCorner = xll
	g.YLLCorner = yll
	g.CellSize = cellSize

	want := rows * cols
	have := 0
	consume := func(fields []string) error {
		for _, fld := range fields {
			if have >= want {
				return fmt.Errorf("unexpected extra value %q after %d cells", fld, want)
			}
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return fmt.Errorf("invalid cell value %q", fld)
			}
			g.Data[have] = v
			have++
		}
		return nil
	}
	if err := consume(dataFields); err != nil {
		return nil, err
	}
	for have < want && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := consume(strings.Fields(line)); err != nil {
			return nil, err
		}
	}
	if have < want {
		return nil, fmt.Errorf("short data block: got %d of %d cells", have, want)
	}

	// Trailing metadata comment lines.
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return nil, fmt.Errorf("unexpected trailing line %q", line)
		}
		g.AddMetadataEntry(strings.TrimSpace(strings.TrimPrefix(line, "#")))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteASCII writes the grid as an Esri ASCII Grid file, with provenance
// metadata entries appended as '#' comment lines.
func (g *Grid) WriteASCII(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := g.encodeASCII(w); err != nil {
		f.Close()
		return fmt.Errorf("write raster %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write raster %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write raster %s: %w", path, err)
	}
	return nil
}

func (g *Grid) encodeASCII(w *bufio.Writer) error {
	fmt.Fprintf(w, "ncols %d\n", g.Cols)
	fmt.Fprintf(w, "nrows %d\n", g.Rows)
	fmt.Fprintf(w, "xllcorner %s\n", formatCell(g.XLLCorner))
	fmt.Fprintf(w, "yllcorner %s\n", formatCell(g.YLLCorner))
	fmt.Fprintf(w, "cellsize %s\n", formatCell(g.CellSize))
	fmt.Fprintf(w, "nodata_value %s\n", formatCell(g.Nodata))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if col > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(formatCell(g.Data[row*g.Cols+col])); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	for _, entry := range g.metadata {
		if _, err := fmt.Fprintf(w, "# %s\n", entry); err != nil {
			return err
		}
	}
	return nil
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
