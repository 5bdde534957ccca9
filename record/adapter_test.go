package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		tests := []struct {
			name     string
			input    any
			expected Value
		}{
			{"nil", nil, Null()},
			{"Value", Int(1), Int(1)},
			{"bool true", true, Bool(true)},
			{"bool false", false, Bool(false)},
			{"string", "hello", String("hello")},
			{"float64", 3.14, Float(3.14)},
			{"float32", float32(1.5), Float(1.5)},
			{"int", int(1), Int(1)},
			{"int8", int8(1), Int(1)},
			{"int16", int16(1), Int(1)},
			{"int32", int32(1), Int(1)},
			{"int64", int64(1), Int(1)},
			{"uint", uint(1), Int(1)},
			{"uint8", uint8(1), Int(1)},
			{"uint16", uint16(1), Int(1)},
			{"uint32", uint32(1), Int(1)},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				v, err := FromAny(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, v)
			})
		}
	})

	t.Run("JSONNumber", func(t *testing.T) {
		v, err := FromAny(json.Number("2500"))
		require.NoError(t, err)
		assert.Equal(t, Int(2500), v)

		v, err = FromAny(json.Number("2.5"))
		require.NoError(t, err)
		assert.Equal(t, Float(2.5), v)

		_, err = FromAny(json.Number("not-a-number"))
		assert.Error(t, err)
	})

	t.Run("Uint64Range", func(t *testing.T) {
		v, err := FromAny(uint64(math.MaxInt64))
		assert.NoError(t, err)
		i64, _ := v.AsInt64()
		assert.Equal(t, int64(math.MaxInt64), i64)

		_, err = FromAny(uint64(math.MaxInt64) + 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("Maps", func(t *testing.T) {
		v, err := FromAny(map[string]any{"tag": "#ABC", "level": 10})
		require.NoError(t, err)
		rec, ok := v.AsRecord()
		require.True(t, ok)
		assert.Equal(t, String("#ABC"), rec["tag"])
		assert.Equal(t, Int(10), rec["level"])
	})

	t.Run("Slices", func(t *testing.T) {
		t.Run("[]Value", func(t *testing.T) {
			input := []Value{Int(1), String("s")}
			v, err := FromAny(input)
			assert.NoError(t, err)
			arr, _ := v.AsArray()
			assert.Equal(t, input, arr)
		})

		t.Run("[]any", func(t *testing.T) {
			v, err := FromAny([]any{1, "s", true})
			assert.NoError(t, err)
			arr, _ := v.AsArray()
			require.Len(t, arr, 3)
			assert.Equal(t, Int(1), arr[0])
			assert.Equal(t, String("s"), arr[1])
			assert.Equal(t, Bool(true), arr[2])
		})

		t.Run("[]any error", func(t *testing.T) {
			_, err := FromAny([]any{make(chan int)})
			assert.Error(t, err)
		})

		t.Run("[]string", func(t *testing.T) {
			v, err := FromAny([]string{"a", "b"})
			assert.NoError(t, err)
			arr, _ := v.AsArray()
			require.Len(t, arr, 2)
			assert.Equal(t, String("a"), arr[0])
		})

		t.Run("[]map", func(t *testing.T) {
			v, err := FromAny([]map[string]any{{"id": 1}, {"id": 2}})
			assert.NoError(t, err)
			arr, _ := v.AsArray()
			require.Len(t, arr, 2)
			rec, _ := arr[1].AsRecord()
			assert.Equal(t, Int(2), rec["id"])
		})
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := FromAny(make(chan int))
		assert.Error(t, err)
	})
}

func TestFromMap(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rec, err := FromMap(map[string]any{
			"i": 123,
			"s": "foo",
		})
		require.NoError(t, err)
		assert.Equal(t, Int(123), rec["i"])
		assert.Equal(t, String("foo"), rec["s"])
	})

	t.Run("Error", func(t *testing.T) {
		_, err := FromMap(map[string]any{
			"bad": make(chan int),
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `"bad"`)
	})
}

func TestDecode(t *testing.T) {
	t.Run("ClanPayload", func(t *testing.T) {
		data := []byte(`{
			"tag": "#2PP",
			"name": "Reddit",
			"clanPoints": 48910,
			"isWarLogPublic": true,
			"location": {"id": 32000006, "name": "International", "isCountry": false},
			"memberList": [{"tag": "#AA", "name": "one"}, {"tag": "#BB", "name": "two"}]
		}`)

		rec, err := Decode(data)
		require.NoError(t, err)

		tag, ok := rec.GetString("tag")
		assert.True(t, ok)
		assert.Equal(t, "#2PP", tag)

		// Integers stay exact, never float64.
		points, ok := rec.GetInt("clanPoints")
		assert.True(t, ok)
		assert.Equal(t, 48910, points)

		public, ok := rec.GetBool("isWarLogPublic")
		assert.True(t, ok)
		assert.True(t, public)

		loc := rec.GetRecord("location")
		require.NotNil(t, loc)
		id, ok := loc.GetInt("id")
		assert.True(t, ok)
		assert.Equal(t, 32000006, id)

		members := rec.GetArray("memberList")
		require.Len(t, members, 2)
		m0, ok := members[0].AsRecord()
		require.True(t, ok)
		name, _ := m0.GetString("name")
		assert.Equal(t, "one", name)
	})

	t.Run("LargeInteger", func(t *testing.T) {
		rec, err := Decode([]byte(`{"big": 9007199254740993}`))
		require.NoError(t, err)

		v, ok := rec.Get("big")
		require.True(t, ok)
		i64, ok := v.AsInt64()
		assert.True(t, ok)
		// 2^53+1 is not representable as float64; UseNumber keeps it exact.
		assert.Equal(t, int64(9007199254740993), i64)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := Decode([]byte(`not json`))
		assert.Error(t, err)

		_, err = Decode([]byte(`[1,2,3]`))
		assert.Error(t, err)
	})
}
