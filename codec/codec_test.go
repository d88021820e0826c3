package codec

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dba-c24/extern/metrics"
	"github.com/dba-c24/extern/wire"
)

type greeting struct {
	Message string `wire:"5"`
}

func TestEncode_StringGoldenBytes(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	require.NoError(t, c.Encode(&buf, &greeting{Message: "hi"}))

	want := []byte{0x01, 0x05, 0x08, 0x01, 0x00, 0x02, 'h', 'i'}
	assert.Equal(t, want, buf.Bytes())
}

type primInt struct {
	P int32 `wire:"0"`
}

func TestEncode_PrimitiveInt32GoldenBytes(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	require.NoError(t, c.Encode(&buf, &primInt{P: -1}))

	want := []byte{0x01, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.Equal(t, want, buf.Bytes())
}

type color int32

const (
	colorRed color = iota
	colorGreen
)

type swatch struct {
	Col color `wire:"3"`
}

func TestEncode_EnumGoldenBytes(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	require.NoError(t, c.Encode(&buf, &swatch{Col: colorGreen}))

	want := []byte{0x01, 0x03, 0x26, 0x01, 0x00, 0x00, 0x00, 0x01}
	assert.Equal(t, want, buf.Bytes())
}

type widget struct {
	Name    string    `wire:"0"`
	Count   int32     `wire:"1"`
	Ready   bool      `wire:"2"`
	Weight  float32   `wire:"3"`
	Created time.Time `wire:"4"`
	Tags    []string  `wire:"5"`
}

func TestRoundTrip_AllScalarAndArrayFields(t *testing.T) {
	c := New()
	in := widget{
		Name:    "sprocket",
		Count:   42,
		Ready:   true,
		Weight:  1.5,
		Created: time.UnixMilli(1700000000000).UTC(),
		Tags:    []string{"a", "b", "c"},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out widget
	require.NoError(t, c.Decode(&buf, &out))

	assert.Equal(t, in, out)
}

type nilableWidget struct {
	Nickname *string  `wire:"0"`
	Tags     []string `wire:"1"`
}

func TestRoundTrip_NilFieldsStayNil(t *testing.T) {
	c := New()
	in := nilableWidget{}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))
	assert.Equal(t, []byte{0x02, 0x00, 0x08, 0x00, 0x01, 0x13, 0x00}, buf.Bytes())

	var out nilableWidget
	require.NoError(t, c.Decode(&buf, &out))
	assert.Nil(t, out.Nickname)
	assert.Nil(t, out.Tags)
}

type wideRecord struct {
	A string `wire:"0"`
	B int32  `wire:"1"`
	C string `wire:"2"`
}

type narrowRecord struct {
	A string `wire:"0"`
	C string `wire:"2"`
}

func TestDecode_SkipsUnknownFieldInMiddle(t *testing.T) {
	c := New()
	in := wideRecord{A: "first", B: 99, C: "last"}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out narrowRecord
	require.NoError(t, c.Decode(&buf, &out))

	assert.Equal(t, "first", out.A)
	assert.Equal(t, "last", out.C)
}

func TestDecode_FieldOrderOnWireDoesNotMatterToReader(t *testing.T) {
	// narrowRecord's descriptor is sorted by index regardless of struct
	// declaration order; decoding wideRecord's output (also index-sorted)
	// into it must work whether or not the two structs declare fields in
	// the same order.
	c := New()
	in := wideRecord{A: "x", B: 1, C: "y"}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out narrowRecord
	require.NoError(t, c.Decode(&buf, &out))
	assert.Equal(t, narrowRecord{A: "x", C: "y"}, out)
}

type point struct {
	X int32 `wire:"0"`
	Y int32 `wire:"1"`
}

type shape struct {
	Name   string   `wire:"0"`
	Origin *point   `wire:"1"`
	Extra  []*point `wire:"2"`
}

func TestRoundTrip_ExternalizableScalarAndArray(t *testing.T) {
	c := New()
	require.NoError(t, c.Registry().Register("codec.point", &point{}))

	in := shape{
		Name:   "box",
		Origin: &point{X: 1, Y: 2},
		Extra:  []*point{{X: 3, Y: 4}, {X: 5, Y: 6}},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out shape
	require.NoError(t, c.Decode(&buf, &out))

	assert.Equal(t, in, out)
}

type taggedList struct {
	Points []*point `wire:"0,list"`
}

func TestRoundTrip_ListOfExternalizables(t *testing.T) {
	c := New()
	require.NoError(t, c.Registry().Register("codec.point", &point{}))

	in := taggedList{Points: []*point{{X: 1, Y: 1}, {X: 2, Y: 2}}}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out taggedList
	require.NoError(t, c.Decode(&buf, &out))

	assert.Equal(t, in, out)
}

func TestMetrics_CountEncodeDecodeAndSkippedFields(t *testing.T) {
	m := metrics.New("test")
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)

	c := New(WithMetrics(m))

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &wideRecord{A: "x", B: 1, C: "y"}))

	var out narrowRecord
	require.NoError(t, c.Decode(&buf, &out))

	wideName := "github.com/dba-c24/extern/codec.wideRecord"
	narrowName := "github.com/dba-c24/extern/codec.narrowRecord"
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EncodeTotal.WithLabelValues(wideName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DecodeTotal.WithLabelValues(narrowName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SkippedFields))
}

// A *point value in a *point field is written with isDefault set and no
// class name, so the reader builds its own declared type without
// consulting the registry.
func TestDecode_DefaultClassExternalizableNeedsNoRegistration(t *testing.T) {
	c1 := New()
	require.NoError(t, c1.Registry().Register("codec.point", &point{}))

	in := shape{Name: "box", Origin: &point{X: 1, Y: 2}}

	var buf bytes.Buffer
	require.NoError(t, c1.Encode(&buf, &in))

	c2 := New() // fresh registry, "codec.point" never registered
	var out shape
	require.NoError(t, c2.Decode(&buf, &out))

	assert.Equal(t, "box", out.Name)
	assert.Equal(t, &point{X: 1, Y: 2}, out.Origin)
}

type permissions uint64

type access struct {
	Granted permissions `wire:"2"`
}

func TestEncode_EnumSetGoldenBytes(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	require.NoError(t, c.Encode(&buf, &access{Granted: 0b1001})) // ordinals {0,3}

	want := []byte{0x01, 0x02, 0x27, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09}
	assert.Equal(t, want, buf.Bytes())
}

func TestRoundTrip_EnumSet(t *testing.T) {
	c := New()
	in := access{Granted: 0b101010}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))

	var out access
	require.NoError(t, c.Decode(&buf, &out))
	assert.Equal(t, in, out)
}

type arrayHolder struct {
	Pts []*point `wire:"0"`
}

func TestEncode_ExternalizableArray_DefaultElementsOmitClassName(t *testing.T) {
	c := New()
	require.NoError(t, c.Registry().Register("codec.point", &point{}))

	in := arrayHolder{Pts: []*point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, &in))
	raw := buf.Bytes()

	require.Equal(t, byte(1), raw[0], "record field count")
	require.Equal(t, byte(0), raw[1], "field index")
	require.Equal(t, byte(wire.ExternalizableArray), raw[2], "field tag")
	require.Equal(t, byte(1), raw[3], "field not-null flag")

	length := binary.BigEndian.Uint32(raw[4:8])
	body := raw[8:]
	assert.Len(t, body, int(length), "length prefix equals exact payload bytes")
	assert.NotContains(t, string(body), c.Registry().NameFor(reflect.TypeOf(point{})),
		"class name appears zero times for an array of all-default-type elements")

	size := binary.BigEndian.Uint32(body[:4])
	assert.EqualValues(t, 3, size)

	var nested bytes.Buffer
	require.NoError(t, c.writeRecordFields(&nested, reflect.ValueOf(point{X: 1, Y: 1})))
	nestedLen := nested.Len()

	for i := 0; i < 3; i++ {
		off := 4 + i*(2+nestedLen)
		assert.Equal(t, []byte{0x01, 0x01}, body[off:off+2], "element %d: not-null, isDefault", i)
	}

	var out arrayHolder
	require.NoError(t, c.Decode(&buf, &out))
	assert.Equal(t, in, out)
}

type point2 struct {
	X int32 `wire:"0"`
	Y int32 `wire:"1"`
}

// TestClassedElement_AmortizesRepeatedNonDefaultClassName exercises
// testable property #6 (ExternalizableArray class-name amortization)
// directly against writeClassedElement/readClassedElementName: a run of
// elements of the same non-default subclass must emit the class name
// exactly once. The public Encode/Decode can't construct this scenario —
// a Go []*T field can only ever hold *T values — so this drives the
// lower-level helpers with reflect.Values of two distinct registered
// types, the way a foreign Externalizable array or ListOfExternalizables
// producer could (see DESIGN.md).
func TestClassedElement_AmortizesRepeatedNonDefaultClassName(t *testing.T) {
	c := New()
	require.NoError(t, c.Registry().Register("codec.point", &point{}))
	require.NoError(t, c.Registry().Register("codec.point2", &point2{}))

	defaultType := reflect.TypeOf(point{})
	elems := []reflect.Value{
		reflect.ValueOf(point2{X: 1, Y: 1}),
		reflect.ValueOf(point2{X: 2, Y: 2}),
		reflect.ValueOf(point2{X: 3, Y: 3}),
		reflect.ValueOf(point{X: 9, Y: 9}),
	}

	var buf bytes.Buffer
	lastNonDefault := ""
	for _, elem := range elems {
		require.NoError(t, c.writeClassedElement(&buf, elem, defaultType, &lastNonDefault))
	}

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("codec.point2")),
		"class name for the repeated non-default subclass is written exactly once")

	r := bytes.NewReader(buf.Bytes())
	scratch := make([]byte, 8)
	lastNonDefault = ""
	var got []string
	for range elems {
		name, err := c.readClassedElementName(r, scratch, defaultType, &lastNonDefault)
		require.NoError(t, err)
		got = append(got, name)
	}

	assert.Equal(t, []string{"codec.point2", "codec.point2", "codec.point2", "codec.point"}, got)
}
