package codec

import (
	"errors"
	"testing"

	"github.com/luca-patrignani/collective/displacement"
)

type sample struct {
	Name  string
	Cells []int
}

func TestEncodeBatchFraming(t *testing.T) {
	values := []sample{
		{Name: "a"},
		{Name: "bb", Cells: []int{1, 2, 3}},
		{},
		{Name: "dddd", Cells: []int{40}},
	}
	c := JSON[sample]{}
	buf, lengths, err := EncodeBatch[sample](c, values)
	if err != nil {
		t.Fatal(err)
	}
	if len(lengths) != len(values) {
		t.Fatalf("expected %d lengths, actual %d", len(values), len(lengths))
	}
	sum := 0
	for _, l := range lengths {
		sum += l
	}
	if sum != len(buf) {
		t.Fatalf("expected buffer of %d bytes, actual %d", sum, len(buf))
	}
	pos := 0
	for i, l := range lengths {
		single, err := c.Encode(values[i])
		if err != nil {
			t.Fatal(err)
		}
		if string(single) != string(buf[pos:pos+l]) {
			t.Fatalf("slot %d: expected %q, actual %q", i, single, buf[pos:pos+l])
		}
		pos += l
	}
}

func TestEncodeBatchEmpty(t *testing.T) {
	buf, lengths, err := EncodeBatch[int](JSON[int]{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 0 || len(lengths) != 0 {
		t.Fatalf("expected empty batch, actual %v %v", buf, lengths)
	}
}

func TestEncodeBatchError(t *testing.T) {
	values := []any{1, make(chan int), 3}
	_, _, err := EncodeBatch[any](JSON[any]{}, values)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("expected ErrSerialization, actual %v", err)
	}
	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SerializationError, actual %T", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := JSON[sample]{}
	v := sample{Name: "cell", Cells: []int{3, 1, 4}}
	b, err := c.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	actual, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if actual.Name != v.Name || len(actual.Cells) != 3 || actual.Cells[2] != 4 {
		t.Fatalf("expected %v, actual %v", v, actual)
	}
}

func TestJSONTruncated(t *testing.T) {
	c := JSON[sample]{}
	b, err := c.Encode(sample{Name: "truncated", Cells: []int{10, 20}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Decode(b[:len(b)-3])
	if !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
	var derr *DeserializationError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeserializationError, actual %T", err)
	}
	if derr.Len != len(b)-3 {
		t.Fatalf("expected length %d, actual %d", len(b)-3, derr.Len)
	}
}

func TestJSONTrailingAndEmpty(t *testing.T) {
	c := JSON[int]{}
	if _, err := c.Decode([]byte("12 13")); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
	if _, err := c.Decode(nil); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, actual %v", err)
	}
}

func TestGobRoundTrip(t *testing.T) {
	c := Gob[sample]{}
	v := sample{Name: "gob", Cells: []int{7}}
	b, err := c.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	actual, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if actual.Name != v.Name || len(actual.Cells) != 1 || actual.Cells[0] != 7 {
		t.Fatalf("expected %v, actual %v", v, actual)
	}
}

func TestGobTruncated(t *testing.T) {
	c := Gob[sample]{}
	b, err := c.Encode(sample{Name: "gob", Cells: []int{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode(b[:len(b)/2]); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
}

func TestGobTrailing(t *testing.T) {
	c := Gob[int]{}
	buf, _, err := EncodeBatch[int](c, []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode(buf); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, actual %v", err)
	}
}

func TestGobUnsupported(t *testing.T) {
	if _, err := (Gob[func()]{}).Encode(func() {}); !errors.Is(err, ErrSerialization) {
		t.Fatalf("expected ErrSerialization, actual %v", err)
	}
}

func TestDecodeSlots(t *testing.T) {
	c := JSON[string]{}
	buf, lengths, err := EncodeBatch[string](c, []string{"x", "yy", "zzz"})
	if err != nil {
		t.Fatal(err)
	}
	displs := displacement.Compute(lengths)
	actual, err := DecodeSlots[string](c, buf, lengths, displs, 1)
	if err != nil {
		t.Fatal(err)
	}
	if actual[0] != "x" || actual[1] != "" || actual[2] != "zzz" {
		t.Fatalf("expected [x  zzz], actual %q", actual)
	}
	all, err := DecodeSlots[string](c, buf, lengths, displs, -1)
	if err != nil {
		t.Fatal(err)
	}
	if all[1] != "yy" {
		t.Fatalf("expected yy, actual %q", all[1])
	}
}

func TestDecodeSlotsTruncated(t *testing.T) {
	c := JSON[string]{}
	buf, lengths, err := EncodeBatch[string](c, []string{"x", "yy"})
	if err != nil {
		t.Fatal(err)
	}
	lengths[1]--
	actual, err := DecodeSlots[string](c, buf[:len(buf)-1], lengths, displacement.Compute(lengths), -1)
	if !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
	if actual != nil {
		t.Fatalf("expected no partial result, actual %q", actual)
	}
	if _, err := DecodeSlots[string](c, buf, lengths, []int{0}, -1); !errors.Is(err, displacement.ErrShape) {
		t.Fatalf("expected ErrShape, actual %v", err)
	}
}

func TestJSONNull(t *testing.T) {
	if _, err := (JSON[int]{}).Decode([]byte("null")); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
	if _, err := (JSON[sample]{}).Decode([]byte(" null ")); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, actual %v", err)
	}
	cells, err := JSON[[]int]{}.Decode([]byte("null"))
	if err != nil {
		t.Fatal(err)
	}
	if cells != nil {
		t.Fatalf("expected nil slice, actual %v", cells)
	}
	p, err := JSON[*sample]{}.Decode([]byte("null"))
	if err != nil || p != nil {
		t.Fatalf("expected nil pointer, actual %v, %v", p, err)
	}
}
