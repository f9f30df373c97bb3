package util

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rotisserie/eris"
)

//*******************************************
// output streams
//*******************************************

type _OutputStream struct {
	*bufio.Writer
	closers []io.Closer
}

func (self *_OutputStream) Close() error {
	err := self.Writer.Flush()
	for _, c := range self.closers {
		if c_err := c.Close(); c_err != nil && err == nil {
			err = c_err
		}
	}
	return err
}

// CreateOutput creates a buffered file writer. Files ending in ".zst" or
// ".lz4" are compressed transparently.
func CreateOutput(file string) (io.WriteCloser, error) {
	f, err := os.Create(file)
	if err != nil {
		return nil, eris.Wrapf(err, "create %s", file)
	}
	switch {
	case strings.HasSuffix(file, ".zst"):
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "zstd writer for %s", file)
		}
		return &_OutputStream{bufio.NewWriter(enc), []io.Closer{enc, f}}, nil
	case strings.HasSuffix(file, ".lz4"):
		enc := lz4.NewWriter(f)
		return &_OutputStream{bufio.NewWriter(enc), []io.Closer{enc, f}}, nil
	default:
		return &_OutputStream{bufio.NewWriter(f), []io.Closer{f}}, nil
	}
}

type _InputStream struct {
	io.Reader
	close func() error
}

func (self *_InputStream) Close() error {
	return self.close()
}

// OpenInput is the counterpart of CreateOutput.
func OpenInput(file string) (io.ReadCloser, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", file)
	}
	switch {
	case strings.HasSuffix(file, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "zstd reader for %s", file)
		}
		return &_InputStream{dec, func() error {
			dec.Close()
			return f.Close()
		}}, nil
	case strings.HasSuffix(file, ".lz4"):
		return &_InputStream{lz4.NewReader(f), f.Close}, nil
	default:
		return &_InputStream{bufio.NewReader(f), f.Close}, nil
	}
}

//*******************************************
// vectors
//*******************************************

// WriteVector writes the raw little-endian elements without a length prefix.
func WriteVector[T any](writer io.Writer, value Array[T]) error {
	return binary.Write(writer, binary.LittleEndian, []T(value))
}

func WriteVectorToFile[T any](value Array[T], file string) error {
	out, err := CreateOutput(file)
	if err != nil {
		return err
	}
	if err := WriteVector(out, value); err != nil {
		out.Close()
		return eris.Wrapf(err, "write %s", file)
	}
	return out.Close()
}

// ReadVector reads elements until EOF.
func ReadVector[T any](reader io.Reader) (Array[T], error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	var elem T
	size := binary.Size(elem)
	if size <= 0 {
		return nil, eris.Errorf("type %T has no fixed size", elem)
	}
	if len(data)%size != 0 {
		return nil, eris.Errorf("vector of %d bytes is not a multiple of %d", len(data), size)
	}
	value := NewArray[T](len(data) / size)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, []T(value)); err != nil {
		return nil, err
	}
	return value, nil
}

func ReadVectorFromFile[T any](file string) (Array[T], error) {
	in, err := OpenInput(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	value, err := ReadVector[T](in)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", file)
	}
	return value, nil
}

//*******************************************
// csv
//*******************************************

type _CSVField struct {
	index  int
	column int
	parse  func(field reflect.Value, value string) error
}

func _CSVParser(kind reflect.Kind) func(field reflect.Value, value string) error {
	switch kind {
	case reflect.String:
		return func(field reflect.Value, value string) error {
			field.SetString(value)
			return nil
		}
	case reflect.Bool:
		return func(field reflect.Value, value string) error {
			b, err := strconv.ParseBool(value)
			field.SetBool(b)
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string) error {
			num, err := strconv.ParseInt(value, 10, field.Type().Bits())
			field.SetInt(num)
			return err
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, value string) error {
			num, err := strconv.ParseUint(value, 10, field.Type().Bits())
			field.SetUint(num)
			return err
		}
	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string) error {
			num, err := strconv.ParseFloat(value, field.Type().Bits())
			field.SetFloat(num)
			return err
		}
	default:
		return nil
	}
}

// ReadCSV decodes a headed csv into the `csv` tagged fields of T, matching
// columns by name. Empty values keep the zero value. Malformed rows and rows
// with unparsable values are skipped, any other read error ends the sequence.
func ReadCSV[T any](reader io.Reader, delimiter rune) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		r := csv.NewReader(reader)
		r.Comma = delimiter
		r.LazyQuotes = true
		r.ReuseRecord = true

		header, err := r.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			yield(zero, err)
			return
		}
		columns := NewDict[string, int](len(header))
		for i, name := range header {
			columns[name] = i
		}

		typ := reflect.TypeOf(zero)
		fields := NewList[_CSVField](typ.NumField())
		for i := 0; i < typ.NumField(); i++ {
			name := typ.Field(i).Tag.Get("csv")
			if name == "" || !columns.ContainsKey(name) {
				continue
			}
			parse := _CSVParser(typ.Field(i).Type.Kind())
			if parse == nil {
				continue
			}
			fields.Add(_CSVField{index: i, column: columns[name], parse: parse})
		}

		var parse_err *csv.ParseError
	rows:
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if errors.As(err, &parse_err) {
				continue
			}
			if err != nil {
				yield(zero, err)
				return
			}
			row := reflect.New(typ).Elem()
			for _, field := range fields {
				value := record[field.column]
				if value == "" {
					continue
				}
				if field.parse(row.Field(field.index), value) != nil {
					continue rows
				}
			}
			if !yield(row.Interface().(T), nil) {
				return
			}
		}
	}
}
