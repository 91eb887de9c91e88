package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/cwygoda/rentscan/internal/domain"
)

func testAggregator() *domain.Aggregator {
	return domain.NewAggregator([]domain.Listing{
		{Name: "Б", PriceDisplay: "3 500 ₽ за ночь", PriceValue: 3500, Address: "Арбат, 1", URL: "https://sutochno.ru/1"},
		{Name: "А", PriceDisplay: "1.000 - 3.000 ₽", PriceValue: 2000, Address: "Москва", URL: "https://tvil.ru/city/moscow/hotels/1/?a=1&b=2"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", TSV, false},
		{"tsv", TSV, false},
		{"TXT", TSV, false},
		{"json", JSON, false},
		{" yaml ", YAML, false},
		{"yml", YAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_TSV(t *testing.T) {
	agg := testAggregator()
	agg.SortByName(true)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, TSV, agg))

	want := "Name\tPrice\tAddress\tURL\n" +
		"А\t1.000 - 3.000 ₽\tМосква\thttps://tvil.ru/city/moscow/hotels/1/?a=1&b=2\n" +
		"Б\t3 500 ₽ за ночь\tАрбат, 1\thttps://sutochno.ru/1\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_TSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, TSV, domain.NewAggregator(nil)))
	assert.Equal(t, domain.ReportHeader, buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, testAggregator()))

	assert.Contains(t, buf.String(), "?a=1&b=2", "ampersands are not escaped")

	var got []record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Б", got[0].Name)
	assert.Equal(t, "3 500 ₽ за ночь", got[0].Price)
	assert.Equal(t, int64(3500), got[0].PriceValue)
}

func TestWrite_JSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, domain.NewAggregator(nil)))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	agg := testAggregator()
	agg.SortByPrice(true)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, agg))

	var got []record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "А", got[0].Name)
	assert.Equal(t, "Москва", got[0].Address)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("xml"), testAggregator()))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the report"), 0o644))

	require.NoError(t, WriteFile(path, TSV, testAggregator()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testAggregator().Render(), string(got))
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "results.txt")
	assert.Error(t, WriteFile(path, TSV, testAggregator()))
}
