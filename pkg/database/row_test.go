package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRow_Accessors(t *testing.T) {
	row := Row{
		"id":        int64(5),
		"nome":      "Ana",
		"bytes":     []byte("texto"),
		"flag_int":  int64(1),
		"flag_str":  "0",
		"flag_bool": true,
		"data":      "2024-05-10",
		"quando":    "2024-05-10 08:15:00",
		"ts":        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"nulo":      nil,
		"num_str":   "17",
	}

	assert.Equal(t, uint64(5), row.Uint64("id"))
	assert.Equal(t, "Ana", row.String("nome"))
	assert.Equal(t, "texto", row.String("bytes"))
	assert.True(t, row.Bool("flag_int"))
	assert.False(t, row.Bool("flag_str"))
	assert.True(t, row.Bool("flag_bool"))
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), row.Time("data"))
	assert.Equal(t, 8, row.Time("quando").Hour())
	assert.Equal(t, 2024, row.Time("ts").Year())
	assert.Equal(t, int64(17), row.Int64("num_str"))

	assert.True(t, row.IsNull("nulo"))
	assert.False(t, row.NullString("nulo").Valid)
	assert.False(t, row.NullTime("nulo").Valid)
	assert.False(t, row.NullUint64("nulo").Valid)
	assert.True(t, row.NullString("nome").Valid)
	assert.False(t, row.Has("inexistente"))
}
