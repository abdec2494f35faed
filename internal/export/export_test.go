package export

import (
	"bytes"
	"io"
	"testing"

	"bookcatalog/internal/book"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func rating(v float64) *float64 { return &v }

func sampleBooks() []book.Book {
	return []book.Book{
		{ID: "a1", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Year: "1965", Tags: []string{"sci-fi", "classic"}, Category: "Fiction", Rating: rating(4.5)},
		{ID: "b2", Title: "Cosmos", Author: "Carl Sagan", ISBN: "9780345539434", Year: "1980", Category: "Science"},
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "JSON", " yaml ", "yml", "parquet"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleBooks()))

	var got []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(toRecords(sampleBooks()), got); diff != "" {
		t.Fatalf("json export mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, buf.String(), `"rating": null`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleBooks()))

	var got []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(toRecords(sampleBooks()), got); diff != "" {
		t.Fatalf("yaml export mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Parquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatParquet, sampleBooks()))

	r := bytes.NewReader(buf.Bytes())
	pf, err := parquet.OpenFile(r, int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pf.NumRows())

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	rows := make([]Record, 2)
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)

	assert.Equal(t, "Dune", rows[0].Title)
	assert.Equal(t, []string{"sci-fi", "classic"}, rows[0].Tags)
	require.NotNil(t, rows[0].Rating)
	assert.Equal(t, 4.5, *rows[0].Rating)
	assert.Nil(t, rows[1].Rating)
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(io.Discard, Format("xml"), sampleBooks()))
}
