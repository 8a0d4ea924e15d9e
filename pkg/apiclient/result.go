package apiclient

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
)

type Series struct {
	Tags    map[string]string
	Columns []map[string]string
}

type QueryResult struct {
	Series []Series
	r      *bufio.Reader
	body   io.Closer
}

// QueryChunk holds a block of points of one series, Values is indexed by column
type QueryChunk struct {
	Index  int
	Times  []int64
	Values [][]float64
}

type chunkDescription struct {
	SeriesIndex int
	NumValues   int
	NumPoints   int
}

func (r *QueryResult) readDescription() (chunkDescription, error) {
	buf, err := r.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(buf) > 0 {
			return chunkDescription{}, io.ErrUnexpectedEOF
		}
		return chunkDescription{}, err
	}
	var desc chunkDescription
	err = json.Unmarshal(buf, &desc)
	return desc, err
}

// ReadChunk returns the next chunk, io.EOF after the last one
func (r *QueryResult) ReadChunk() (QueryChunk, error) {
	desc, err := r.readDescription()
	if err != nil {
		return QueryChunk{}, err
	}
	if desc.SeriesIndex < 0 || desc.SeriesIndex >= len(r.Series) {
		return QueryChunk{}, errors.New("series index out of range")
	}
	if desc.NumValues != len(r.Series[desc.SeriesIndex].Columns) {
		return QueryChunk{}, errors.New("wrong number of columns")
	}
	c := QueryChunk{
		Index:  desc.SeriesIndex,
		Times:  make([]int64, desc.NumPoints),
		Values: make([][]float64, desc.NumValues),
	}
	err = binary.Read(r.r, binary.LittleEndian, c.Times)
	if err != nil {
		return QueryChunk{}, err
	}
	for i := range c.Values {
		c.Values[i] = make([]float64, desc.NumPoints)
		err = binary.Read(r.r, binary.LittleEndian, c.Values[i])
		if err != nil {
			return QueryChunk{}, err
		}
	}
	return c, nil
}

func (r *QueryResult) Close() error {
	return r.body.Close()
}
