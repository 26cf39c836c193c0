package ingest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
)

// Legacy binary workbooks (Excel 97-2003) are an OLE2 compound file holding a
// BIFF8 record stream. mscfb opens the container; the record scan below covers
// the cell record set those files carry.
const (
	biffBOF        = 0x0809
	biffEOF        = 0x000A
	biffContinue   = 0x003C
	biffBoundSheet = 0x0085
	biffMulRK      = 0x00BD
	biffSST        = 0x00FC
	biffLabelSST   = 0x00FD
	biffNumber     = 0x0203
	biffLabel      = 0x0204
	biffBoolErr    = 0x0205
	biffRK         = 0x027E
)

func parseLegacySheet(data []byte) ([]Record, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}
	var stream []byte
	for entry, nerr := doc.Next(); nerr == nil; entry, nerr = doc.Next() {
		if entry.Name != "Workbook" && entry.Name != "Book" {
			continue
		}
		stream = make([]byte, entry.Size)
		if _, err := io.ReadFull(entry, stream); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
		}
		break
	}
	if stream == nil {
		return nil, fmt.Errorf("%w: no workbook stream", apperrors.ErrFileRead)
	}
	rows, err := legacyRows(stream)
	if err != nil {
		return nil, err
	}
	return sheetRecords(rows), nil
}

// legacyRows walks the workbook globals substream for the shared string table
// and the first sheet's stream offset, then collects that sheet's cells.
// Later sheets are never read.
func legacyRows(stream []byte) ([][]string, error) {
	var (
		sst       []string
		sheetPos  int
		haveSheet bool
	)
	pos := 0
	for pos+4 <= len(stream) {
		id := binary.LittleEndian.Uint16(stream[pos:])
		size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
		body := pos + 4
		if body+size > len(stream) {
			return nil, fmt.Errorf("%w: truncated workbook record", apperrors.ErrFileRead)
		}
		rec := stream[body : body+size]
		next := body + size

		switch id {
		case biffSST:
			chunks := [][]byte{rec}
			for next+4 <= len(stream) && binary.LittleEndian.Uint16(stream[next:]) == biffContinue {
				csize := int(binary.LittleEndian.Uint16(stream[next+2:]))
				if next+4+csize > len(stream) {
					return nil, fmt.Errorf("%w: truncated shared string table", apperrors.ErrFileRead)
				}
				chunks = append(chunks, stream[next+4:next+4+csize])
				next += 4 + csize
			}
			var err error
			sst, err = parseSharedStrings(chunks)
			if err != nil {
				return nil, err
			}
		case biffBoundSheet:
			if !haveSheet {
				if len(rec) < 4 {
					return nil, fmt.Errorf("%w: malformed sheet entry", apperrors.ErrFileRead)
				}
				sheetPos = int(binary.LittleEndian.Uint32(rec))
				haveSheet = true
			}
		}
		pos = next
		if id == biffEOF {
			break
		}
	}
	if !haveSheet {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrFileRead)
	}
	return legacySheetCells(stream, sheetPos, sst)
}

func legacySheetCells(stream []byte, start int, sst []string) ([][]string, error) {
	if start < 0 || start+4 > len(stream) {
		return nil, fmt.Errorf("%w: sheet offset out of range", apperrors.ErrFileRead)
	}
	cells := make(map[int]map[int]string)
	maxRow, maxCol := -1, -1
	put := func(r, c int, v string) {
		if v == "" {
			return
		}
		row, ok := cells[r]
		if !ok {
			row = make(map[int]string)
			cells[r] = row
		}
		row[c] = v
		if r > maxRow {
			maxRow = r
		}
		if c > maxCol {
			maxCol = c
		}
	}

	pos := start
	first := true
	depth := 0
	for pos+4 <= len(stream) {
		id := binary.LittleEndian.Uint16(stream[pos:])
		size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
		body := pos + 4
		if body+size > len(stream) {
			return nil, fmt.Errorf("%w: truncated sheet record", apperrors.ErrFileRead)
		}
		rec := stream[body : body+size]
		pos = body + size

		if first {
			if id != biffBOF {
				return nil, fmt.Errorf("%w: sheet stream does not start with BOF", apperrors.ErrFileRead)
			}
			first = false
			continue
		}
		// embedded objects (charts) open nested BOF/EOF substreams
		if id == biffBOF {
			depth++
			continue
		}
		if id == biffEOF {
			if depth == 0 {
				break
			}
			depth--
			continue
		}
		if depth > 0 || len(rec) < 6 {
			continue
		}
		r := int(binary.LittleEndian.Uint16(rec))
		c := int(binary.LittleEndian.Uint16(rec[2:]))

		switch id {
		case biffLabelSST:
			if len(rec) < 10 {
				continue
			}
			isst := int(binary.LittleEndian.Uint32(rec[6:]))
			if isst >= 0 && isst < len(sst) {
				put(r, c, sst[isst])
			}
		case biffLabel:
			if len(rec) < 9 {
				continue
			}
			s, err := decodeInlineString(rec[6:])
			if err != nil {
				return nil, err
			}
			put(r, c, s)
		case biffNumber:
			if len(rec) < 14 {
				continue
			}
			put(r, c, formatLegacyNumber(math.Float64frombits(binary.LittleEndian.Uint64(rec[6:]))))
		case biffRK:
			if len(rec) < 10 {
				continue
			}
			put(r, c, formatLegacyNumber(decodeRK(binary.LittleEndian.Uint32(rec[6:]))))
		case biffMulRK:
			n := (len(rec) - 6) / 6
			for i := 0; i < n; i++ {
				rk := binary.LittleEndian.Uint32(rec[4+i*6+2:])
				put(r, c+i, formatLegacyNumber(decodeRK(rk)))
			}
		case biffBoolErr:
			if len(rec) < 8 || rec[7] != 0 {
				continue
			}
			if rec[6] != 0 {
				put(r, c, "TRUE")
			} else {
				put(r, c, "FALSE")
			}
		}
	}

	if maxRow < 0 {
		return [][]string{}, nil
	}
	rows := make([][]string, maxRow+1)
	for i := range rows {
		rows[i] = make([]string, maxCol+1)
		for c, v := range cells[i] {
			rows[i][c] = v
		}
	}
	return rows, nil
}

// decodeRK unpacks the packed 30-bit RK number encoding: two low flag bits,
// then either a truncated IEEE double or a signed integer, optionally scaled
// down by 100.
func decodeRK(raw uint32) float64 {
	var v float64
	if raw&0x2 != 0 {
		v = float64(int32(raw) >> 2)
	} else {
		v = math.Float64frombits(uint64(raw&0xFFFFFFFC) << 32)
	}
	if raw&0x1 != 0 {
		v /= 100
	}
	return v
}

func formatLegacyNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decodeInlineString reads the 16-bit-length unicode string carried inline by
// LABEL records: cch, a flags byte, then either one byte per character or
// UTF-16LE code units.
func decodeInlineString(b []byte) (string, error) {
	if len(b) < 3 {
		return "", fmt.Errorf("%w: truncated cell string", apperrors.ErrFileRead)
	}
	cch := int(binary.LittleEndian.Uint16(b))
	grbit := b[2]
	data := b[3:]
	if grbit&0x01 == 0 {
		if len(data) < cch {
			return "", fmt.Errorf("%w: truncated cell string", apperrors.ErrFileRead)
		}
		runes := make([]rune, cch)
		for i := 0; i < cch; i++ {
			runes[i] = rune(data[i])
		}
		return string(runes), nil
	}
	if len(data) < 2*cch {
		return "", fmt.Errorf("%w: truncated cell string", apperrors.ErrFileRead)
	}
	units := make([]uint16, cch)
	for i := 0; i < cch; i++ {
		units[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return string(utf16.Decode(units)), nil
}

// sstCursor reads the shared string table across the SST record and its
// CONTINUE records. Character data resuming in a CONTINUE record restates its
// flags byte; the scalar fields and skip runs do not.
type sstCursor struct {
	chunks [][]byte
	ci     int
	off    int
}

func (c *sstCursor) avail() int {
	if c.ci >= len(c.chunks) {
		return 0
	}
	return len(c.chunks[c.ci]) - c.off
}

func (c *sstCursor) nextChunk() bool {
	for c.ci < len(c.chunks) {
		if c.off < len(c.chunks[c.ci]) {
			return true
		}
		c.ci++
		c.off = 0
	}
	return false
}

func (c *sstCursor) u8() (byte, error) {
	if !c.nextChunk() {
		return 0, fmt.Errorf("%w: truncated shared string table", apperrors.ErrFileRead)
	}
	b := c.chunks[c.ci][c.off]
	c.off++
	return b, nil
}

func (c *sstCursor) u16() (uint16, error) {
	lo, err := c.u8()
	if err != nil {
		return 0, err
	}
	hi, err := c.u8()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (c *sstCursor) u32() (uint32, error) {
	lo, err := c.u16()
	if err != nil {
		return 0, err
	}
	hi, err := c.u16()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

func (c *sstCursor) skip(n int) error {
	for n > 0 {
		if !c.nextChunk() {
			return fmt.Errorf("%w: truncated shared string table", apperrors.ErrFileRead)
		}
		take := c.avail()
		if take > n {
			take = n
		}
		c.off += take
		n -= take
	}
	return nil
}

func (c *sstCursor) readString() (string, error) {
	cch, err := c.u16()
	if err != nil {
		return "", err
	}
	grbit, err := c.u8()
	if err != nil {
		return "", err
	}
	var runs, ext int
	if grbit&0x08 != 0 {
		n, err := c.u16()
		if err != nil {
			return "", err
		}
		runs = int(n)
	}
	if grbit&0x04 != 0 {
		n, err := c.u32()
		if err != nil {
			return "", err
		}
		ext = int(n)
	}
	wide := grbit&0x01 != 0
	units := make([]uint16, 0, cch)
	for remaining := int(cch); remaining > 0; remaining-- {
		if c.avail() == 0 {
			if !c.nextChunk() {
				return "", fmt.Errorf("%w: truncated shared string table", apperrors.ErrFileRead)
			}
			flag, err := c.u8()
			if err != nil {
				return "", err
			}
			wide = flag&0x01 != 0
		}
		if wide {
			u, err := c.u16()
			if err != nil {
				return "", err
			}
			units = append(units, u)
		} else {
			b, err := c.u8()
			if err != nil {
				return "", err
			}
			units = append(units, uint16(b))
		}
	}
	if err := c.skip(4*runs + ext); err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

func parseSharedStrings(chunks [][]byte) ([]string, error) {
	c := &sstCursor{chunks: chunks}
	if _, err := c.u32(); err != nil { // total reference count
		return nil, err
	}
	unique, err := c.u32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, unique)
	for i := uint32(0); i < unique; i++ {
		s, err := c.readString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
